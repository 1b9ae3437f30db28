package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/table"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

func loadLists() (*words.Lists, error) {
	lists, err := words.Load(cfg.AllowedFile, cfg.SecretsFile)
	if err != nil {
		return nil, fmt.Errorf("load word lists: %w", err)
	}
	a, s := len(lists.Allowed), len(lists.Secrets)
	log.Info().Int("allowed", a).Int("secrets", s).Msg("word lists ready")
	return lists, nil
}

// loadTable opens the precomputed artifact at cfg.TablePath. Its secrets
// must be exactly the loaded secret list; its guesses may be any subset
// (see precompute --secrets-only and --common). Without an artifact the
// full table is built in memory.
func loadTable(ctx context.Context, lists *words.Lists) (*table.Table, error) {
	t, err := table.Open(cfg.TablePath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Warn().Str("path", cfg.TablePath).Msg("no precomputed table, building in memory")
		start := time.Now()
		t, err = table.Build(ctx, lists.Allowed, lists.Secrets, cfg.Workers)
		if err != nil {
			return nil, err
		}
		log.Info().Dur("took", time.Since(start)).Msg("table built")
		return t, nil
	case err != nil:
		return nil, err
	}

	if !slices.Equal(t.Secrets(), lists.Secrets) {
		return nil, fmt.Errorf("%s: %w (%d secrets, lists have %d); run precompute again",
			cfg.TablePath, table.ErrTableMismatch, t.NumSecrets(), len(lists.Secrets))
	}
	for _, g := range t.Guesses() {
		if !lists.IsAllowed(g) {
			return nil, fmt.Errorf("%s: %w: guess %q is not allowed", cfg.TablePath, table.ErrTableMismatch, g)
		}
	}
	log.Info().Str("path", cfg.TablePath).Int("guesses", t.NumGuesses()).Int("secrets", t.NumSecrets()).Msg("table loaded")
	return t, nil
}

func newGameFactory(lists *words.Lists) func() solver.Game {
	allowed := lists.AllowedSet()
	return func() solver.Game {
		return game.New(game.Options{Secrets: lists.Secrets, Allowed: allowed, Rows: cfg.MaxGuesses})
	}
}

func strategyFlag(name string) (solver.Strategy, error) {
	s, ok := solver.StrategyByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (want entropy or random)", name)
	}
	return s, nil
}
