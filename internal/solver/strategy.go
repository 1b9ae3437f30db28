package solver

import (
	"math/rand/v2"
	"sync"

	"github.com/robalobadob/wordle/apps/solver/internal/table"
)

// Strategy picks the next guess when more than one candidate remains.
// round is 0 for the opening guess; rng is owned by the calling session.
type Strategy interface {
	Name() string
	Choose(t *table.Table, round int, rng *rand.Rand) string
}

// MaxEntropy picks the guess with maximum expected information.
// Every game starts from the same table, so the opening guess is computed
// once and reused until a game starts from a different table. Only the
// latest table is remembered. Safe for concurrent use.
type MaxEntropy struct {
	mu     sync.Mutex
	base   *table.Table
	opener string
}

// NewEntropy returns the entropy-maximising strategy.
func NewEntropy() *MaxEntropy { return &MaxEntropy{} }

func (e *MaxEntropy) Name() string { return "entropy" }

func (e *MaxEntropy) Choose(t *table.Table, round int, _ *rand.Rand) string {
	if round > 0 {
		return BestGuess(t).Guess
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.base != t {
		e.base, e.opener = t, BestGuess(t).Guess
	}
	return e.opener
}

// Random guesses uniformly among all allowed guesses. It is the baseline
// the entropy strategy is compared against.
type Random struct{}

func (Random) Name() string { return "random" }

func (Random) Choose(t *table.Table, _ int, rng *rand.Rand) string {
	return t.Guesses()[rng.IntN(t.NumGuesses())]
}

// StrategyByName resolves "entropy" or "random".
func StrategyByName(name string) (Strategy, bool) {
	switch name {
	case "entropy", "":
		return NewEntropy(), true
	case "random", "naive":
		return Random{}, true
	}
	return nil, false
}
