package crossway

import "fmt"

// A MoveKind discriminates the move variants. Placements claim a cell;
// the other kinds are board-independent actions.
type MoveKind uint8

const (
	// MovePlacement claims one empty cell for the moving player.
	MovePlacement MoveKind = iota
	// MoveSwap lets the responding player take over the opening stone
	// instead of placing their own. Legal only directly after the
	// opening placement.
	MoveSwap
	// MoveResign ends the game immediately for the moving player.
	MoveResign
	// MoveSkip passes the turn without placing a stone. Recorded when a
	// forfeit policy skips a bot's turn, so that transcripts replay.
	MoveSkip
)

// String implements the fmt.Stringer interface.
func (k MoveKind) String() string {
	switch k {
	case MovePlacement:
		return "placement"
	case MoveSwap:
		return "swap"
	case MoveResign:
		return "resign"
	case MoveSkip:
		return "skip"
	default:
		return "unknown"
	}
}

// A Move is one entry in a match's history. Coord is meaningful only
// for placements.
type Move struct {
	Player PlayerID
	Kind   MoveKind
	Coord  Coord
}

// Placement returns a placement move claiming coord for player.
func Placement(player PlayerID, coord Coord) Move {
	return Move{Player: player, Kind: MovePlacement, Coord: coord}
}

// Swap returns a swap action for player.
func Swap(player PlayerID) Move {
	return Move{Player: player, Kind: MoveSwap}
}

// Resign returns a resign action for player.
func Resign(player PlayerID) Move {
	return Move{Player: player, Kind: MoveResign}
}

// Skip returns a skip action for player, passing the turn.
func Skip(player PlayerID) Move {
	return Move{Player: player, Kind: MoveSkip}
}

// String implements the fmt.Stringer interface and returns the move in
// transcript notation, e.g. "P0 3,3" or "P1 swap".
func (m Move) String() string {
	switch m.Kind {
	case MovePlacement:
		return fmt.Sprintf("P%d %d,%d", m.Player, m.Coord.Row, m.Coord.Col)
	case MoveSwap:
		return fmt.Sprintf("P%d swap", m.Player)
	case MoveResign:
		return fmt.Sprintf("P%d resign", m.Player)
	case MoveSkip:
		return fmt.Sprintf("P%d skip", m.Player)
	default:
		return fmt.Sprintf("P%d ?", m.Player)
	}
}
