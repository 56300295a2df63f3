package crossway

import (
	"fmt"
	"strconv"
	"strings"
)

// Position notation is the canonical snapshot format:
//
//	size=<N>
//	grid=<N lines of N characters; '.' empty, digit = owning player>
//	turn=<player>
//	status=<InProgress|Won:<player>|Resigned:<player>>
//
// The first grid row shares the "grid=" line; the remaining rows follow
// bare, one per line. EncodePosition and DecodePosition round-trip
// every reachable position (compared with Position.Equal).

// EncodePosition returns the position notation for p.
func EncodePosition(p *Position) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "size=%d\n", p.config.Size)
	for row := 0; row < p.config.Size; row++ {
		if row == 0 {
			sb.WriteString("grid=")
		}
		for col := 0; col < p.config.Size; col++ {
			if owner, ok := p.cells[Coord{Row: row, Col: col}]; ok {
				sb.WriteByte(byte('0') + byte(owner))
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "turn=%d\n", p.turn)
	fmt.Fprintf(&sb, "status=%s\n", p.status)
	return sb.String()
}

// DecodePosition parses position notation. Arbitrary input is safe: the
// decoder never panics or reads beyond declared bounds, and every
// malformed input yields a *ParseError.
//
// The snapshot format does not carry the player count; it is inferred
// as the smallest roster covering every digit on the grid, the turn
// field and the status field, with a minimum of two. The variant is
// assumed standard, and the move count is reconstructed as the stone
// count: the snapshot cannot distinguish a swapped opening from a plain
// one, so a one-stone snapshot always decodes with the swap still
// available.
func DecodePosition(input string) (*Position, error) {
	lines := splitNotationLines(input)
	if len(lines) == 0 {
		return nil, &ParseError{Kind: UnexpectedToken, Msg: "empty input"}
	}

	size, err := parseIntField(lines[0], "size=", 1)
	if err != nil {
		return nil, err
	}
	if size < 1 || size > MaxBoardSize {
		return nil, &ParseError{Kind: OutOfRange, Line: 1,
			Msg: fmt.Sprintf("size %d out of range [1, %d]", size, MaxBoardSize)}
	}
	if len(lines) != size+3 {
		return nil, &ParseError{Kind: UnexpectedToken, Line: len(lines),
			Msg: fmt.Sprintf("expected %d lines for size %d, found %d", size+3, size, len(lines))}
	}

	type stone struct {
		coord Coord
		owner PlayerID
	}
	var stones []stone
	players := 2

	for row := 0; row < size; row++ {
		lineNo := row + 2
		line := lines[row+1]
		if row == 0 {
			rest, ok := strings.CutPrefix(line, "grid=")
			if !ok {
				return nil, &ParseError{Kind: UnexpectedToken, Line: lineNo, Msg: `expected "grid=" prefix`}
			}
			line = rest
		}
		if len(line) != size {
			return nil, &ParseError{Kind: UnexpectedToken, Line: lineNo,
				Msg: fmt.Sprintf("expected %d cells, found %d", size, len(line))}
		}
		for col := 0; col < size; col++ {
			switch ch := line[col]; {
			case ch == '.':
			case ch >= '0' && ch <= '9':
				owner := PlayerID(ch - '0')
				if int(owner)+1 > players {
					players = int(owner) + 1
				}
				stones = append(stones, stone{coord: Coord{Row: row, Col: col}, owner: owner})
			default:
				return nil, &ParseError{Kind: UnexpectedToken, Line: lineNo,
					Msg: fmt.Sprintf("invalid cell character %q at column %d", ch, col)}
			}
		}
	}

	turn, err := parseIntField(lines[size+1], "turn=", size+2)
	if err != nil {
		return nil, err
	}
	if turn < 0 || turn >= MaxPlayers {
		return nil, &ParseError{Kind: OutOfRange, Line: size + 2,
			Msg: fmt.Sprintf("turn %d out of range [0, %d)", turn, MaxPlayers)}
	}
	if turn+1 > players {
		players = turn + 1
	}

	status, statusPlayer, err := parseStatusLine(lines[size+2], size+3)
	if err != nil {
		return nil, err
	}
	if statusPlayer+1 > players {
		players = statusPlayer + 1
	}

	pos, cfgErr := StartingPosition(Config{Size: size, Players: players, Variant: VariantStandard})
	if cfgErr != nil {
		return nil, &ParseError{Kind: OutOfRange, Msg: cfgErr.Error(), Err: cfgErr}
	}
	for _, s := range stones {
		pos.registerStone(s.owner, s.coord)
	}
	pos.moveCount = len(stones)
	pos.turn = PlayerID(turn)
	pos.status = status

	if err := checkStatusConsistency(pos); err != nil {
		return nil, err
	}
	return pos, nil
}

// checkStatusConsistency rejects snapshots whose declared status
// contradicts the board: a winner must actually connect their edges,
// and a game still in progress (or ended by resignation) must not
// contain a winning connection.
func checkStatusConsistency(pos *Position) error {
	for player := 0; player < pos.config.Players; player++ {
		connected := pos.conn.connected(PlayerID(player))
		wins := pos.status.Kind == Won && pos.status.Player == PlayerID(player)
		if connected && !wins {
			return &ParseError{Kind: InconsistentStatus,
				Msg: fmt.Sprintf("player %d connects their edges but status is %s", player, pos.status)}
		}
		if wins && !connected {
			return &ParseError{Kind: InconsistentStatus,
				Msg: fmt.Sprintf("status is %s but player %d does not connect their edges", pos.status, player)}
		}
	}
	return nil
}

// splitNotationLines splits on newlines, tolerates CRLF and drops
// trailing blank lines only.
func splitNotationLines(input string) []string {
	lines := strings.Split(input, "\n")
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func parseIntField(line, prefix string, lineNo int) (int, error) {
	rest, ok := strings.CutPrefix(line, prefix)
	if !ok {
		return 0, &ParseError{Kind: UnexpectedToken, Line: lineNo,
			Msg: fmt.Sprintf("expected %q prefix, found %q", prefix, line)}
	}
	v, err := strconv.Atoi(rest)
	if err != nil {
		return 0, &ParseError{Kind: UnexpectedToken, Line: lineNo,
			Msg: fmt.Sprintf("invalid %s value %q", strings.TrimSuffix(prefix, "="), rest), Err: err}
	}
	return v, nil
}

func parseStatusLine(line string, lineNo int) (Status, int, error) {
	rest, ok := strings.CutPrefix(line, "status=")
	if !ok {
		return Status{}, 0, &ParseError{Kind: UnexpectedToken, Line: lineNo,
			Msg: fmt.Sprintf(`expected "status=" prefix, found %q`, line)}
	}
	if rest == "InProgress" {
		return Status{Kind: InProgress}, 0, nil
	}

	kind, playerStr, found := strings.Cut(rest, ":")
	if !found {
		return Status{}, 0, &ParseError{Kind: UnexpectedToken, Line: lineNo,
			Msg: fmt.Sprintf("invalid status %q", rest)}
	}
	player, err := strconv.Atoi(playerStr)
	if err != nil {
		return Status{}, 0, &ParseError{Kind: UnexpectedToken, Line: lineNo,
			Msg: fmt.Sprintf("invalid status player %q", playerStr), Err: err}
	}
	if player < 0 || player >= MaxPlayers {
		return Status{}, 0, &ParseError{Kind: OutOfRange, Line: lineNo,
			Msg: fmt.Sprintf("status player %d out of range [0, %d)", player, MaxPlayers)}
	}

	switch kind {
	case "Won":
		return Status{Kind: Won, Player: PlayerID(player)}, player, nil
	case "Resigned":
		return Status{Kind: Resigned, Player: PlayerID(player)}, player, nil
	default:
		return Status{}, 0, &ParseError{Kind: UnexpectedToken, Line: lineNo,
			Msg: fmt.Sprintf("invalid status %q", rest)}
	}
}
