package main

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/table"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

var precomputeFlags struct {
	out         string
	secretsOnly bool
	common      int
	freq        string
	workers     int
}

var precomputeCmd = &cobra.Command{
	Use:   "precompute",
	Short: "Build the outcome table and write it to disk",
	Long: `Evaluates every allowed guess against every secret and stores the packed
feedback codes, so later runs start instantly.

  solver precompute                          # all allowed guesses
  solver precompute --secrets-only           # guesses restricted to the secrets
  solver precompute --common 4500 --freq f.json   # the 4500 most frequent allowed words`,
	Args: cobra.NoArgs,
	RunE: runPrecompute,
}

func init() {
	f := precomputeCmd.Flags()
	f.StringVarP(&precomputeFlags.out, "out", "o", "", "Output path (default: $TABLE_PATH or data/outcomes.bin)")
	f.BoolVar(&precomputeFlags.secretsOnly, "secrets-only", false, "Only guess words that can be the secret")
	f.IntVar(&precomputeFlags.common, "common", 0, "Restrict guesses to the N most frequent allowed words")
	f.StringVar(&precomputeFlags.freq, "freq", "", "Word frequency JSON for --common (default: $WORDS_FREQ_FILE)")
	f.IntVar(&precomputeFlags.workers, "workers", 0, "Parallel row builders (default: $BUILD_WORKERS or GOMAXPROCS)")
}

func runPrecompute(cmd *cobra.Command, _ []string) error {
	if precomputeFlags.out != "" {
		cfg.TablePath = precomputeFlags.out
	}
	if precomputeFlags.workers > 0 {
		cfg.Workers = precomputeFlags.workers
	}
	if precomputeFlags.secretsOnly && precomputeFlags.common > 0 {
		return fmt.Errorf("--secrets-only and --common are mutually exclusive")
	}

	lists, err := loadLists()
	if err != nil {
		return err
	}

	guesses := lists.Allowed
	switch {
	case precomputeFlags.secretsOnly:
		guesses = lists.Secrets
	case precomputeFlags.common > 0:
		if guesses, err = commonGuesses(lists, precomputeFlags.common); err != nil {
			return err
		}
	}

	start := time.Now()
	t, err := table.Build(cmd.Context(), guesses, lists.Secrets, cfg.Workers)
	if err != nil {
		return err
	}
	if err := table.Save(cfg.TablePath, t); err != nil {
		return err
	}
	log.Info().
		Str("path", cfg.TablePath).
		Int("guesses", t.NumGuesses()).
		Int("secrets", t.NumSecrets()).
		Dur("took", time.Since(start)).
		Msg("outcome table written")
	return nil
}

// commonGuesses returns the n most frequent words that are also allowed
// guesses, most frequent first.
func commonGuesses(lists *words.Lists, n int) ([]string, error) {
	path := precomputeFlags.freq
	if path == "" {
		path = cfg.FreqFile
	}
	if path == "" {
		return nil, fmt.Errorf("--common needs a frequency file (--freq or WORDS_FREQ_FILE)")
	}
	freq, err := words.ReadFrequencies(path)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, w := range words.MostCommon(freq, 0) {
		if len(out) == n {
			break
		}
		if lists.IsAllowed(w) {
			out = append(out, w)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: %w", path, words.ErrEmpty)
	}
	return out, nil
}
