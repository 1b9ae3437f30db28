package solver

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/solver/internal/table"
)

// CompareOptions configures Compare.
type CompareOptions struct {
	Games   int    // games per strategy (default 20)
	Seed    uint64 // drives secret selection and randomised strategies
	Workers int    // parallel games (default GOMAXPROCS)
}

// GameResult is the outcome of one simulated game.
type GameResult struct {
	Strategy string `json:"strategy" db:"strategy"`
	Secret   string `json:"secret" db:"secret"`
	Guesses  int    `json:"guesses" db:"guesses"`
	Solved   bool   `json:"solved" db:"solved"`
}

// Summary aggregates the games of one strategy.
type Summary struct {
	Strategy  string       `json:"strategy"`
	Games     int          `json:"games"`
	Solved    int          `json:"solved"`
	Mean      float64      `json:"mean"`
	Median    float64      `json:"median"`
	StdDev    float64      `json:"stdDev"`
	Max       int          `json:"max"`
	Histogram map[int]int  `json:"histogram"`
	Results   []GameResult `json:"results"`
}

// Compare plays the same seeded secrets with every strategy and summarises
// the guess counts. newGame must return a fresh, unstarted game each call.
// Games run in parallel; each owns its session and game, and t is only read.
func Compare(ctx context.Context, t *table.Table, newGame func() Game, strategies []Strategy, opts CompareOptions) ([]Summary, error) {
	if opts.Games <= 0 {
		opts.Games = 20
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if t.NumSecrets() == 0 {
		return nil, fmt.Errorf("compare: table has no secrets")
	}

	pick := rand.New(rand.NewPCG(opts.Seed, 0))
	secrets := make([]string, opts.Games)
	for i := range secrets {
		secrets[i] = t.Secrets()[pick.IntN(t.NumSecrets())]
	}

	out := make([]Summary, 0, len(strategies))
	for si, strat := range strategies {
		start := time.Now()
		results := make([]GameResult, opts.Games)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(opts.Workers)
		for i, secret := range secrets {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				rng := rand.New(rand.NewPCG(opts.Seed^uint64(si+1), uint64(i)))
				sess := NewSession(t, strat, rng)
				n, err := Play(newGame(), sess, secret, false)
				if err != nil {
					return fmt.Errorf("%s game %d (%s): %w", strat.Name(), i, secret, err)
				}
				results[i] = GameResult{Strategy: strat.Name(), Secret: secret, Guesses: n, Solved: sess.Solved()}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		sum, err := summarise(strat.Name(), results)
		if err != nil {
			return nil, err
		}
		log.Info().
			Str("strategy", sum.Strategy).
			Int("games", sum.Games).
			Int("solved", sum.Solved).
			Float64("mean", sum.Mean).
			Dur("took", time.Since(start)).
			Msg("strategy compared")
		out = append(out, sum)
	}
	return out, nil
}

func summarise(name string, results []GameResult) (Summary, error) {
	s := Summary{Strategy: name, Games: len(results), Histogram: map[int]int{}, Results: results}
	counts := make([]int, len(results))
	for i, r := range results {
		counts[i] = r.Guesses
		s.Histogram[r.Guesses]++
		if r.Solved {
			s.Solved++
		}
		if r.Guesses > s.Max {
			s.Max = r.Guesses
		}
	}
	data := stats.LoadRawData(counts)
	var err error
	if s.Mean, err = stats.Mean(data); err != nil {
		return s, err
	}
	if s.Median, err = stats.Median(data); err != nil {
		return s, err
	}
	if s.StdDev, err = stats.StandardDeviation(data); err != nil {
		return s, err
	}
	return s, nil
}
