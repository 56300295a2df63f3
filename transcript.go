package crossway

import (
	"fmt"
	"strconv"
	"strings"
)

// Transcript notation is the canonical match record:
//
//	config: size=<N> players=<N> variant=<tag>
//	moves:
//	P<player> <row>,<col>
//	P<player> swap
//	P<player> resign
//	P<player> skip
//
// Decoding replays every move through the rule engine, so an untrusted
// transcript is accepted only if each move was legal at the time it was
// recorded.

// A Transcript is a decoded match record: the configuration, the
// ordered move history, and the terminal position the history replays
// to. The transcript is derived data; replaying Moves from an empty
// position always reproduces Final.
type Transcript struct {
	Config Config
	Moves  []Move
	Final  *Position
}

// EncodeTranscript returns transcript notation for the given
// configuration and move history.
func EncodeTranscript(config Config, moves []Move) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "config: size=%d players=%d variant=%s\n",
		config.Size, config.Players, config.Variant)
	sb.WriteString("moves:\n")
	for _, move := range moves {
		sb.WriteString(move.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// DecodeTranscript parses transcript notation and replays it. Arbitrary
// input is safe: every malformed token, out-of-range field, unknown
// variant tag or illegal move yields a *ParseError (with the underlying
// *RuleViolation in the error chain for replay failures) and no partial
// result is returned.
func DecodeTranscript(input string) (*Transcript, error) {
	lines := splitNotationLines(input)
	if len(lines) < 2 {
		return nil, &ParseError{Kind: UnexpectedToken, Msg: "expected config and moves sections"}
	}

	config, err := parseTranscriptHeader(lines[0])
	if err != nil {
		return nil, err
	}
	if lines[1] != "moves:" {
		return nil, &ParseError{Kind: UnexpectedToken, Line: 2,
			Msg: fmt.Sprintf(`expected "moves:", found %q`, lines[1])}
	}

	pos, cfgErr := StartingPosition(config)
	if cfgErr != nil {
		// Range checks in parseTranscriptHeader keep this unreachable,
		// but decoding must never trust that.
		return nil, &ParseError{Kind: OutOfRange, Line: 1, Msg: cfgErr.Error(), Err: cfgErr}
	}

	var moves []Move
	for i, line := range lines[2:] {
		lineNo := i + 3
		move, err := parseMoveLine(line, config, lineNo)
		if err != nil {
			return nil, err
		}
		next, err := pos.Apply(move)
		if err != nil {
			return nil, replayError(err, lineNo)
		}
		pos = next
		moves = append(moves, move)
	}

	return &Transcript{Config: config, Moves: moves, Final: pos}, nil
}

func parseTranscriptHeader(line string) (Config, error) {
	rest, ok := strings.CutPrefix(line, "config: ")
	if !ok {
		return Config{}, &ParseError{Kind: UnexpectedToken, Line: 1,
			Msg: fmt.Sprintf(`expected "config: " prefix, found %q`, line)}
	}
	fields := strings.Fields(rest)
	if len(fields) != 3 {
		return Config{}, &ParseError{Kind: UnexpectedToken, Line: 1,
			Msg: fmt.Sprintf("expected size, players and variant fields, found %d fields", len(fields))}
	}

	size, err := parseHeaderField(fields[0], "size=")
	if err != nil {
		return Config{}, err
	}
	if size < 1 || size > MaxBoardSize {
		return Config{}, &ParseError{Kind: OutOfRange, Line: 1,
			Msg: fmt.Sprintf("size %d out of range [1, %d]", size, MaxBoardSize)}
	}

	players, err := parseHeaderField(fields[1], "players=")
	if err != nil {
		return Config{}, err
	}
	if players < 2 || players > MaxPlayers {
		return Config{}, &ParseError{Kind: OutOfRange, Line: 1,
			Msg: fmt.Sprintf("players %d out of range [2, %d]", players, MaxPlayers)}
	}

	tag, ok := strings.CutPrefix(fields[2], "variant=")
	if !ok {
		return Config{}, &ParseError{Kind: UnexpectedToken, Line: 1,
			Msg: fmt.Sprintf(`expected "variant=" field, found %q`, fields[2])}
	}
	variant, ok := ParseVariant(tag)
	if !ok {
		return Config{}, &ParseError{Kind: UnsupportedVariant, Line: 1,
			Msg: fmt.Sprintf("unknown variant tag %q", tag)}
	}

	return Config{Size: size, Players: players, Variant: variant}, nil
}

func parseHeaderField(field, prefix string) (int, error) {
	rest, ok := strings.CutPrefix(field, prefix)
	if !ok {
		return 0, &ParseError{Kind: UnexpectedToken, Line: 1,
			Msg: fmt.Sprintf("expected %q field, found %q", prefix, field)}
	}
	v, err := strconv.Atoi(rest)
	if err != nil {
		return 0, &ParseError{Kind: UnexpectedToken, Line: 1,
			Msg: fmt.Sprintf("invalid %s value %q", strings.TrimSuffix(prefix, "="), rest), Err: err}
	}
	return v, nil
}

func parseMoveLine(line string, config Config, lineNo int) (Move, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return Move{}, &ParseError{Kind: UnexpectedToken, Line: lineNo,
			Msg: fmt.Sprintf("expected player and action, found %q", line)}
	}

	playerStr, ok := strings.CutPrefix(fields[0], "P")
	if !ok {
		return Move{}, &ParseError{Kind: UnexpectedToken, Line: lineNo,
			Msg: fmt.Sprintf("expected player token, found %q", fields[0])}
	}
	player, err := strconv.Atoi(playerStr)
	if err != nil {
		return Move{}, &ParseError{Kind: UnexpectedToken, Line: lineNo,
			Msg: fmt.Sprintf("invalid player %q", playerStr), Err: err}
	}
	if player < 0 || player >= config.Players {
		return Move{}, &ParseError{Kind: OutOfRange, Line: lineNo,
			Msg: fmt.Sprintf("player %d out of range [0, %d)", player, config.Players)}
	}

	switch fields[1] {
	case "swap":
		return Swap(PlayerID(player)), nil
	case "resign":
		return Resign(PlayerID(player)), nil
	case "skip":
		return Skip(PlayerID(player)), nil
	}

	rowStr, colStr, found := strings.Cut(fields[1], ",")
	if !found {
		return Move{}, &ParseError{Kind: UnexpectedToken, Line: lineNo,
			Msg: fmt.Sprintf("invalid action %q", fields[1])}
	}
	row, err := strconv.Atoi(rowStr)
	if err != nil {
		return Move{}, &ParseError{Kind: UnexpectedToken, Line: lineNo,
			Msg: fmt.Sprintf("invalid row %q", rowStr), Err: err}
	}
	col, err := strconv.Atoi(colStr)
	if err != nil {
		return Move{}, &ParseError{Kind: UnexpectedToken, Line: lineNo,
			Msg: fmt.Sprintf("invalid column %q", colStr), Err: err}
	}
	return Placement(PlayerID(player), Coord{Row: row, Col: col}), nil
}

// replayError wraps a rule violation raised while replaying an
// untrusted transcript: an internally inconsistent record is a parse
// failure, with the violation kept in the chain for errors.As.
func replayError(err error, lineNo int) error {
	kind := InconsistentStatus
	if rv, ok := err.(*RuleViolation); ok {
		switch rv.Kind {
		case CellOccupied:
			kind = DuplicateCell
		case OutOfBounds:
			kind = OutOfRange
		}
	}
	return &ParseError{Kind: kind, Line: lineNo, Msg: err.Error(), Err: err}
}
