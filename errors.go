package crossway

import "fmt"

// A ParseErrorKind classifies a notation decoding failure.
type ParseErrorKind uint8

const (
	// UnexpectedToken indicates malformed input that does not match the
	// notation grammar.
	UnexpectedToken ParseErrorKind = iota
	// OutOfRange indicates a numeric field outside its valid range.
	OutOfRange
	// DuplicateCell indicates that a cell was recorded as occupied twice.
	DuplicateCell
	// InconsistentStatus indicates that the recorded status or move
	// sequence contradicts the board it describes.
	InconsistentStatus
	// UnsupportedVariant indicates an unrecognized variant tag.
	UnsupportedVariant
)

// String implements the fmt.Stringer interface.
func (k ParseErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "UnexpectedToken"
	case OutOfRange:
		return "OutOfRange"
	case DuplicateCell:
		return "DuplicateCell"
	case InconsistentStatus:
		return "InconsistentStatus"
	case UnsupportedVariant:
		return "UnsupportedVariant"
	default:
		return "UnknownParseErrorKind"
	}
}

// A ParseError reports a failure while decoding position or transcript
// notation. Decoding never panics on malformed input; every failure
// surfaces as a value of this type.
type ParseError struct {
	Kind ParseErrorKind
	Line int    // 1-based input line, 0 if not line-specific
	Msg  string // human readable detail
	Err  error  // wrapped cause, if any
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error (%s) at line %d: %s", e.Kind, e.Line, e.Msg)
	}
	return fmt.Sprintf("parse error (%s): %s", e.Kind, e.Msg)
}

// Unwrap returns the wrapped cause, if any.
func (e *ParseError) Unwrap() error { return e.Err }

// A RuleViolationKind classifies why a move was rejected.
type RuleViolationKind uint8

const (
	// OutOfTurn indicates a move by a player other than the current one.
	OutOfTurn RuleViolationKind = iota
	// OutOfBounds indicates a placement outside the board.
	OutOfBounds
	// CellOccupied indicates a placement on a non-empty cell.
	CellOccupied
	// SwapNotAvailable indicates a swap attempted at any point other
	// than directly after the opening placement.
	SwapNotAvailable
	// GameAlreadyOver indicates a move submitted after the game ended.
	GameAlreadyOver
)

// String implements the fmt.Stringer interface.
func (k RuleViolationKind) String() string {
	switch k {
	case OutOfTurn:
		return "OutOfTurn"
	case OutOfBounds:
		return "OutOfBounds"
	case CellOccupied:
		return "CellOccupied"
	case SwapNotAvailable:
		return "SwapNotAvailable"
	case GameAlreadyOver:
		return "GameAlreadyOver"
	default:
		return "UnknownRuleViolationKind"
	}
}

// A RuleViolation reports a move rejected by the rule engine. The state
// the move was applied to is left untouched; violations are meant to be
// reported back to the move's originator for retry or forfeit.
type RuleViolation struct {
	Kind RuleViolationKind
	Move Move
}

// Error implements the error interface.
func (e *RuleViolation) Error() string {
	return fmt.Sprintf("illegal move %s: %s", e.Move, e.Kind)
}

// A BotErrorKind classifies a bot related failure.
type BotErrorKind uint8

const (
	// BotNotFound indicates a registry lookup miss. This is a setup
	// error and surfaces before a match starts.
	BotNotFound BotErrorKind = iota
	// BotTimeout indicates the bot exceeded its move time budget.
	BotTimeout
	// BotIllegalMove indicates the bot produced a move the rule engine
	// rejected, or failed to produce a move at all.
	BotIllegalMove
)

// String implements the fmt.Stringer interface.
func (k BotErrorKind) String() string {
	switch k {
	case BotNotFound:
		return "NotFound"
	case BotTimeout:
		return "Timeout"
	case BotIllegalMove:
		return "IllegalMove"
	default:
		return "UnknownBotErrorKind"
	}
}

// A BotError reports a bot failure. Timeouts and illegal moves during
// play forfeit the bot's turn; they never abort the match.
type BotError struct {
	Kind BotErrorKind
	Bot  string
	Err  error
}

// Error implements the error interface.
func (e *BotError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("bot %q: %s: %v", e.Bot, e.Kind, e.Err)
	}
	return fmt.Sprintf("bot %q: %s", e.Bot, e.Kind)
}

// Unwrap returns the wrapped cause, if any.
func (e *BotError) Unwrap() error { return e.Err }
