package crossway

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
)

const (
	// MaxBoardSize bounds the side length a Config or a decoded
	// position may declare. It keeps adversarial notation input from
	// forcing huge allocations.
	MaxBoardSize = 255
	// MaxPlayers bounds the player count. Position notation encodes an
	// owner as a single digit, which caps the roster at ten.
	MaxPlayers = 10
)

// A PlayerID identifies one player, in [0, Config.Players).
type PlayerID uint8

// A Variant selects the rule family. Unknown tags always fail; they are
// never silently mapped to a default.
type Variant string

// VariantStandard is the base rule set: six-neighbour adjacency on a
// square grid, even players connect top to bottom, odd players connect
// left to right.
const VariantStandard Variant = "standard"

// ParseVariant maps a transcript tag to a Variant. The second return
// value reports whether the tag is recognized.
func ParseVariant(tag string) (Variant, bool) {
	switch Variant(tag) {
	case VariantStandard:
		return VariantStandard, true
	default:
		return "", false
	}
}

// neighborOffsets returns the adjacency rule as (row, col) deltas.
// Standard uses the hex embedding of the square grid, which guarantees
// that a full board has a winner.
func (v Variant) neighborOffsets() [][2]int {
	return [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}, {-1, 1}, {1, -1}}
}

// edgeAxis returns which pair of opposite edges player must connect:
// 0 for top/bottom, 1 for left/right.
//
// For more than two players the pairing below is a placeholder: players
// alternate between the two axes by parity. A variant with per-player
// edges of its own would override this.
func (v Variant) edgeAxis(player PlayerID) int {
	return int(player) % 2
}

// A Config describes one match's fixed parameters.
type Config struct {
	Size    int
	Players int
	Variant Variant
}

// DefaultConfig returns the standard two-player 7x7 configuration.
func DefaultConfig() Config {
	return Config{Size: 7, Players: 2, Variant: VariantStandard}
}

// Validate checks the configuration bounds. It is called by NewGame and
// StartingPosition; decoded notation performs the same checks with
// typed ParseErrors instead.
func (c Config) Validate() error {
	if c.Size < 1 || c.Size > MaxBoardSize {
		return fmt.Errorf("crossway: board size %d out of range [1, %d]", c.Size, MaxBoardSize)
	}
	if c.Players < 2 || c.Players > MaxPlayers {
		return fmt.Errorf("crossway: player count %d out of range [2, %d]", c.Players, MaxPlayers)
	}
	if _, ok := ParseVariant(string(c.Variant)); !ok {
		return fmt.Errorf("crossway: unsupported variant %q", c.Variant)
	}
	return nil
}

// A Coord addresses one cell, rows and columns both in [0, size).
type Coord struct {
	Row, Col int
}

// String implements the fmt.Stringer interface.
func (c Coord) String() string {
	return fmt.Sprintf("%d,%d", c.Row, c.Col)
}

// A StatusKind discriminates the match status variants.
type StatusKind uint8

const (
	// InProgress indicates the match is still being played.
	InProgress StatusKind = iota
	// Won indicates the match ended with a winning connection.
	Won
	// Resigned indicates the match ended by resignation.
	Resigned
)

// A Status is the match result. Player is the winner for Won and the
// resigning player for Resigned; it is meaningless for InProgress.
// Status only ever transitions InProgress -> {Won, Resigned}.
type Status struct {
	Kind   StatusKind
	Player PlayerID
}

// String implements the fmt.Stringer interface and returns the status
// in position notation, e.g. "InProgress" or "Won:1".
func (s Status) String() string {
	switch s.Kind {
	case InProgress:
		return "InProgress"
	case Won:
		return fmt.Sprintf("Won:%d", s.Player)
	case Resigned:
		return fmt.Sprintf("Resigned:%d", s.Player)
	default:
		return "Unknown"
	}
}

// A Position is the authoritative state of one match: the sparse cell
// ownership map, whose turn it is, and the status. Positions are
// immutable through the public API; Apply returns a fresh position and
// leaves the receiver untouched.
type Position struct {
	config    Config
	cells     map[Coord]PlayerID
	available []Coord
	moveCount int
	turn      PlayerID
	status    Status
	conn      *connectivity
}

// StartingPosition returns the empty position for the given
// configuration, with player 0 to move.
func StartingPosition(config Config) (*Position, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	available := make([]Coord, 0, config.Size*config.Size)
	for row := 0; row < config.Size; row++ {
		for col := 0; col < config.Size; col++ {
			available = append(available, Coord{Row: row, Col: col})
		}
	}
	return &Position{
		config:    config,
		cells:     make(map[Coord]PlayerID),
		available: available,
		conn:      newConnectivity(config.Size, config.Players),
	}, nil
}

// Config returns the match configuration.
func (p *Position) Config() Config { return p.config }

// Size returns the board side length.
func (p *Position) Size() int { return p.config.Size }

// Turn returns the player expected to move next. Its value is not
// meaningful once the game has ended.
func (p *Position) Turn() PlayerID { return p.turn }

// Status returns the match status.
func (p *Position) Status() Status { return p.status }

// MoveCount returns the number of moves applied so far.
func (p *Position) MoveCount() int { return p.moveCount }

// Cell returns the owner of coord and whether it is occupied.
func (p *Position) Cell(coord Coord) (PlayerID, bool) {
	owner, ok := p.cells[coord]
	return owner, ok
}

// AvailableCells returns a copy of the currently empty cells.
func (p *Position) AvailableCells() []Coord {
	return slices.Clone(p.available)
}

// InBounds reports whether coord lies on the board.
func (p *Position) InBounds(coord Coord) bool {
	return coord.Row >= 0 && coord.Row < p.config.Size &&
		coord.Col >= 0 && coord.Col < p.config.Size
}

// Equal reports whether two positions describe the same snapshot: same
// board size, cell ownership, turn and status. The move count is
// transcript-level data and does not participate (a decoded snapshot
// cannot distinguish a swap from a plain opening).
func (p *Position) Equal(o *Position) bool {
	if o == nil {
		return false
	}
	return p.config.Size == o.config.Size &&
		p.turn == o.turn &&
		p.status == o.status &&
		maps.Equal(p.cells, o.cells)
}

func (p *Position) copy() *Position {
	return &Position{
		config:    p.config,
		cells:     maps.Clone(p.cells),
		available: slices.Clone(p.available),
		moveCount: p.moveCount,
		turn:      p.turn,
		status:    p.status,
		conn:      p.conn.clone(),
	}
}

// Apply validates move against the position and returns the successor
// position. On failure it returns a *RuleViolation and the receiver is
// guaranteed untouched. Validation order: game over, turn, then the
// per-kind checks.
func (p *Position) Apply(move Move) (*Position, error) {
	if err := p.validate(move); err != nil {
		return nil, err
	}

	next := p.copy()
	switch move.Kind {
	case MovePlacement:
		next.place(move.Player, move.Coord)
	case MoveSwap:
		next.swapOpening(move.Player)
	case MoveResign:
		next.status = Status{Kind: Resigned, Player: move.Player}
		logrus.Debugf("player %d resigns", move.Player)
	case MoveSkip:
		next.turn = next.nextPlayer(move.Player)
	}
	next.moveCount++
	return next, nil
}

func (p *Position) validate(move Move) error {
	if p.status.Kind != InProgress {
		return &RuleViolation{Kind: GameAlreadyOver, Move: move}
	}
	if move.Player != p.turn {
		return &RuleViolation{Kind: OutOfTurn, Move: move}
	}
	switch move.Kind {
	case MovePlacement:
		if !p.InBounds(move.Coord) {
			return &RuleViolation{Kind: OutOfBounds, Move: move}
		}
		if _, occupied := p.cells[move.Coord]; occupied {
			return &RuleViolation{Kind: CellOccupied, Move: move}
		}
	case MoveSwap:
		if p.moveCount != 1 {
			return &RuleViolation{Kind: SwapNotAvailable, Move: move}
		}
	case MoveResign, MoveSkip:
		// Always legal while in progress.
	}
	return nil
}

// place records the stone, merges it into the player's connected
// components and settles the status. Mutates the receiver; callers go
// through Apply.
func (p *Position) place(player PlayerID, coord Coord) {
	won := p.registerStone(player, coord)
	if won {
		logrus.Debugf("player %d connects their edges at %s", player, coord)
		p.status = Status{Kind: Won, Player: player}
	}
	p.turn = p.nextPlayer(player)
}

// swapOpening transfers the single opening stone to player. The board
// geometry is unchanged; only ownership moves, so the connectivity
// arena is rebuilt for the new owner.
func (p *Position) swapOpening(player PlayerID) {
	for coord := range p.cells {
		delete(p.cells, coord)
		p.available = append(p.available, coord)
		p.conn.reset()
		p.registerStone(player, coord)
		break
	}
	p.turn = p.nextPlayer(player)
}

// registerStone inserts a stone and performs the incremental
// connectivity update: union with same-owner neighbours and with the
// virtual edge nodes the cell touches. Returns whether the owner's two
// edges are now connected.
func (p *Position) registerStone(player PlayerID, coord Coord) bool {
	p.cells[coord] = player
	if i := slices.Index(p.available, coord); i >= 0 {
		p.available = slices.Delete(p.available, i, i+1)
	}

	node := p.conn.cell(coord)
	edgeA, edgeB := p.conn.edges(player)
	last := p.config.Size - 1
	if p.config.Variant.edgeAxis(player) == 0 {
		if coord.Row == 0 {
			p.conn.union(node, edgeA)
		}
		if coord.Row == last {
			p.conn.union(node, edgeB)
		}
	} else {
		if coord.Col == 0 {
			p.conn.union(node, edgeA)
		}
		if coord.Col == last {
			p.conn.union(node, edgeB)
		}
	}

	for _, d := range p.config.Variant.neighborOffsets() {
		neighbor := Coord{Row: coord.Row + d[0], Col: coord.Col + d[1]}
		if !p.InBounds(neighbor) {
			continue
		}
		if owner, ok := p.cells[neighbor]; ok && owner == player {
			p.conn.union(node, p.conn.cell(neighbor))
		}
	}
	return p.conn.connected(player)
}

func (p *Position) nextPlayer(player PlayerID) PlayerID {
	return PlayerID((int(player) + 1) % p.config.Players)
}
