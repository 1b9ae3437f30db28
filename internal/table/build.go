package table

import (
	"context"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
)

// Build evaluates every guess against every secret.
//
// All words are validated up front. Rows are then filled by up to workers
// goroutines (GOMAXPROCS when workers <= 0); each row is written by a single
// goroutine so no locking is needed. Cancelling ctx aborts the build.
func Build(ctx context.Context, guesses, secrets []string, workers int) (*Table, error) {
	for _, list := range [][]string{guesses, secrets} {
		for _, w := range list {
			if err := game.ValidateWord(w); err != nil {
				return nil, err
			}
		}
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	guesses = append([]string(nil), guesses...)
	secrets = append([]string(nil), secrets...)
	n := len(secrets)
	cells := make([]game.Code, len(guesses)*n)
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range guesses {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row := cells[i*n : (i+1)*n]
			guess := guesses[i]
			for j, secret := range secrets {
				row[j] = game.Outcome(guess, secret)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Debug().
		Int("guesses", len(guesses)).
		Int("secrets", n).
		Int("workers", workers).
		Dur("took", time.Since(start)).
		Msg("outcome table built")
	return newTable(guesses, secrets, cells), nil
}
