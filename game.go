/*
Package crossway provides a complete connection-game engine with support
for move validation, win detection, and the two standard text formats
(position notation for a single snapshot, transcript notation for a full
match record).

The package manages complete matches including the one-time swap
balancing rule, resignations, and bot seats with move time budgets.
Example usage:

	// Create new game
	game, _ := crossway.NewGame(crossway.DefaultConfig())

	// Make moves
	game.Submit(crossway.Placement(0, crossway.Coord{Row: 3, Col: 3}))
	game.Submit(crossway.Swap(1))

	// Check game status
	if game.Finished() {
		fmt.Printf("Game ended: %s\n", game.Status())
	}
*/
package crossway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/sirupsen/logrus"
)

// A ForfeitPolicy decides what happens when a bot times out or produces
// an illegal move.
type ForfeitPolicy uint8

const (
	// ForfeitLoss resigns the match on the offending bot's behalf.
	ForfeitLoss ForfeitPolicy = iota
	// ForfeitSkip passes the turn to the next player and lets the
	// match continue. The skip is recorded as a move so the transcript
	// replays.
	ForfeitSkip
)

// DefaultBotBudget is the move time budget applied when no
// WithBotBudget option is given.
const DefaultBotBudget = 5 * time.Second

// A Game orchestrates a single match: it owns the authoritative
// position, requests moves from humans or seated bots, applies them
// through the rule engine and records the history. One Game mutates one
// position, and moves are applied strictly sequentially; independent
// matches share nothing but the bot registry.
type Game struct {
	config    Config
	pos       *Position
	history   []Move
	seats     map[PlayerID]Bot
	botBudget time.Duration
	forfeit   ForfeitPolicy
}

// BotSeat returns a game option seating the named bot from registry at
// the given player. The lookup happens immediately, so a missing bot
// surfaces as a *BotError at setup rather than mid-match.
func BotSeat(player PlayerID, name string, registry *Registry) (func(*Game), error) {
	bot, err := registry.Find(name)
	if err != nil {
		return nil, err
	}
	return WithBot(player, bot), nil
}

// WithBot returns a game option seating bot at the given player.
func WithBot(player PlayerID, bot Bot) func(*Game) {
	return func(g *Game) {
		g.seats[player] = bot
	}
}

// WithBotBudget returns a game option setting the per-move time budget
// for bot turns.
func WithBotBudget(budget time.Duration) func(*Game) {
	return func(g *Game) {
		g.botBudget = budget
	}
}

// WithForfeitPolicy returns a game option selecting how bot timeouts
// and illegal bot moves are punished.
func WithForfeitPolicy(policy ForfeitPolicy) func(*Game) {
	return func(g *Game) {
		g.forfeit = policy
	}
}

// NewGame returns a new match for the given configuration with an empty
// board and player 0 to move. Optional functions configure seats,
// budgets and forfeit handling.
//
// Example:
//
//	// Human vs human
//	game, err := crossway.NewGame(crossway.DefaultConfig())
//
//	// Human vs bot
//	seat, err := crossway.BotSeat(1, "random", registry)
//	game, err := crossway.NewGame(crossway.DefaultConfig(), seat)
func NewGame(config Config, options ...func(*Game)) (*Game, error) {
	pos, err := StartingPosition(config)
	if err != nil {
		return nil, err
	}
	game := &Game{
		config:    config,
		pos:       pos,
		seats:     make(map[PlayerID]Bot),
		botBudget: DefaultBotBudget,
	}
	for _, f := range options {
		if f != nil {
			f(game)
		}
	}
	return game, nil
}

// GameFromTranscript reads transcript notation from r, validates it by
// replay and returns the reconstructed match. The returned game carries
// the recorded history and terminal position; seats are not part of the
// transcript and start out human.
func GameFromTranscript(r io.Reader) (*Game, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	transcript, err := DecodeTranscript(string(raw))
	if err != nil {
		return nil, err
	}
	game, err := NewGame(transcript.Config)
	if err != nil {
		return nil, err
	}
	game.pos = transcript.Final
	game.history = transcript.Moves
	return game, nil
}

// Config returns the match configuration.
func (g *Game) Config() Config { return g.config }

// Position returns the current position.
func (g *Game) Position() *Position { return g.pos }

// Status returns the current match status.
func (g *Game) Status() Status { return g.pos.Status() }

// Turn returns the player expected to move next.
func (g *Game) Turn() PlayerID { return g.pos.Turn() }

// Finished reports whether the match has ended. A finished game can
// still export its transcript and position.
func (g *Game) Finished() bool { return g.pos.Status().Kind != InProgress }

// Moves returns a copy of the move history.
func (g *Game) Moves() []Move { return slices.Clone(g.history) }

// Seat returns the bot seated at player, or nil for a human seat.
func (g *Game) Seat(player PlayerID) Bot { return g.seats[player] }

// Submit applies a move to the match. A *RuleViolation is returned to
// the caller for retry and leaves the match untouched.
func (g *Game) Submit(move Move) error {
	next, err := g.pos.Apply(move)
	if err != nil {
		return err
	}
	g.pos = next
	g.history = append(g.history, move)
	return nil
}

// BotTurn asks the bot seated at the current player for a move and
// applies it. The bot runs under the game's time budget; a timeout or
// an illegal move forfeits the turn per the forfeit policy and is
// reported as a *BotError, never as a fatal engine error. The position
// is only ever updated with a complete, validated move, so an aborted
// bot leaves no partial state behind.
func (g *Game) BotTurn(ctx context.Context) error {
	if g.Finished() {
		return &RuleViolation{Kind: GameAlreadyOver}
	}
	player := g.pos.Turn()
	bot := g.seats[player]
	if bot == nil {
		return fmt.Errorf("crossway: no bot seated for player %d", player)
	}

	ctx, cancel := context.WithTimeout(ctx, g.botBudget)
	defer cancel()

	// The goroutine gets its own snapshot of the position: a forfeit
	// may replace g.pos while an abandoned bot is still reading.
	pos := g.pos
	type reply struct {
		move Move
		err  error
	}
	replies := make(chan reply, 1)
	go func() {
		move, err := bot.ChooseMove(ctx, pos)
		replies <- reply{move: move, err: err}
	}()

	select {
	case <-ctx.Done():
		return g.forfeitTurn(player, &BotError{Kind: BotTimeout, Bot: bot.Name(), Err: ctx.Err()})
	case r := <-replies:
		if r.err != nil {
			return g.forfeitTurn(player, &BotError{Kind: BotIllegalMove, Bot: bot.Name(), Err: r.err})
		}
		if err := g.Submit(r.move); err != nil {
			var violation *RuleViolation
			if errors.As(err, &violation) {
				return g.forfeitTurn(player, &BotError{Kind: BotIllegalMove, Bot: bot.Name(), Err: err})
			}
			return err
		}
		return nil
	}
}

// forfeitTurn punishes a failed bot turn per the configured policy and
// returns botErr so the caller learns what happened. The match itself
// continues (or ends by the forced resignation) normally. Both policies
// go through Submit, so the forfeit is part of the recorded history and
// the exported transcript stays replayable.
func (g *Game) forfeitTurn(player PlayerID, botErr *BotError) error {
	switch g.forfeit {
	case ForfeitSkip:
		logrus.Debugf("player %d forfeits the turn: %v", player, botErr)
		if err := g.Submit(Skip(player)); err != nil {
			return errors.Join(botErr, err)
		}
	default:
		logrus.Debugf("player %d forfeits the match: %v", player, botErr)
		if err := g.Submit(Resign(player)); err != nil {
			return errors.Join(botErr, err)
		}
	}
	return botErr
}

// Transcript returns the match record in transcript notation.
func (g *Game) Transcript() string {
	return EncodeTranscript(g.config, g.history)
}

// ExportPosition returns the current position in position notation.
func (g *Game) ExportPosition() string {
	return EncodePosition(g.pos)
}

// MarshalText implements the encoding.TextMarshaler interface and
// encodes the game's transcript.
func (g *Game) MarshalText() ([]byte, error) {
	return []byte(g.Transcript()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface and
// assumes the data is in transcript notation.
func (g *Game) UnmarshalText(text []byte) error {
	transcript, err := DecodeTranscript(string(text))
	if err != nil {
		return err
	}
	g.config = transcript.Config
	g.pos = transcript.Final
	g.history = transcript.Moves
	if g.seats == nil {
		g.seats = make(map[PlayerID]Bot)
	}
	if g.botBudget == 0 {
		g.botBudget = DefaultBotBudget
	}
	return nil
}
