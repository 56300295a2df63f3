package crossway

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"sync"

	"golang.org/x/exp/maps"
)

// A Bot chooses moves for a seat in a match. Implementations may be
// local heuristics or front a remote process; the engine only sees this
// capability. ChooseMove must honor ctx cancellation: the controller
// abandons bots that outlive their time budget.
type Bot interface {
	// Name returns the registry name of the bot.
	Name() string

	// ChooseMove returns the bot's move for the given position. The
	// position is read-only shared state; bots must not retain it past
	// the call.
	ChooseMove(ctx context.Context, pos *Position) (Move, error)
}

// A Registry maps bot names to implementations. Registration is
// expected to finish before any match starts; afterwards the registry
// is read-mostly and safe for concurrent lookups from many matches.
type Registry struct {
	mu   sync.RWMutex
	bots map[string]Bot
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{bots: make(map[string]Bot)}
}

// WithBot registers bot under its name and returns the registry for
// chaining.
//
// Example:
//
//	registry := crossway.NewRegistry().
//		WithBot(crossway.NewRandomBot())
func (r *Registry) WithBot(bot Bot) *Registry {
	r.Register(bot)
	return r
}

// Register adds bot under its name, replacing any previous entry.
func (r *Registry) Register(bot Bot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bots[bot.Name()] = bot
}

// Find returns the bot registered under name. A miss is a
// *BotError with kind BotNotFound, surfaced at match setup.
func (r *Registry) Find(name string) (Bot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	bot, ok := r.bots[name]
	if !ok {
		return nil, &BotError{Kind: BotNotFound, Bot: name}
	}
	return bot, nil
}

// Names returns the registered bot names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := maps.Keys(r.bots)
	sort.Strings(names)
	return names
}

// RandomBot picks uniformly among the empty cells. Not strategic, but a
// useful baseline opponent and testing tool.
type RandomBot struct {
	rng *rand.Rand
}

// NewRandomBot returns a RandomBot backed by the shared global source.
func NewRandomBot() *RandomBot {
	return &RandomBot{}
}

// NewSeededRandomBot returns a RandomBot with its own deterministic
// source, for reproducible matches.
func NewSeededRandomBot(seed int64) *RandomBot {
	return &RandomBot{rng: rand.New(rand.NewSource(seed))}
}

// Name implements the Bot interface.
func (b *RandomBot) Name() string { return "random" }

// ChooseMove implements the Bot interface.
func (b *RandomBot) ChooseMove(_ context.Context, pos *Position) (Move, error) {
	cells := pos.AvailableCells()
	if len(cells) == 0 {
		return Move{}, errors.New("crossway: no empty cells left")
	}
	var i int
	if b.rng != nil {
		i = b.rng.Intn(len(cells))
	} else {
		i = rand.Intn(len(cells))
	}
	return Placement(pos.Turn(), cells[i]), nil
}
