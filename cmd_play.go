package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

var playFlags struct {
	secret   string
	strategy string
	games    int
	seed     uint64
	quiet    bool
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Let the solver play games against the built-in game",
	Args:  cobra.NoArgs,
	RunE:  runPlay,
}

func init() {
	f := playCmd.Flags()
	f.StringVar(&playFlags.secret, "secret", "", "Secret word (default: random secret)")
	f.StringVar(&playFlags.strategy, "strategy", "entropy", "entropy|random")
	f.IntVarP(&playFlags.games, "games", "n", 1, "Games to play")
	f.Uint64Var(&playFlags.seed, "seed", 0, "Random seed (default: $SEED, 0 = unseeded)")
	f.BoolVarP(&playFlags.quiet, "quiet", "q", false, "Do not print the board")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	strat, err := strategyFlag(playFlags.strategy)
	if err != nil {
		return err
	}
	if playFlags.seed != 0 {
		cfg.Seed = playFlags.seed
	}
	lists, err := loadLists()
	if err != nil {
		return err
	}
	t, err := loadTable(cmd.Context(), lists)
	if err != nil {
		return err
	}

	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	} else {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	out := cmd.OutOrStdout()
	g := game.New(game.Options{
		Secrets: lists.Secrets,
		Allowed: lists.AllowedSet(),
		Rows:    cfg.MaxGuesses,
		Rand:    rng,
		Out:     out,
	})
	sess := solver.NewSession(t, strat, rng)

	total, solved := 0, 0
	for i := 0; i < playFlags.games; i++ {
		if err := cmd.Context().Err(); err != nil {
			return err
		}
		n, err := solver.Play(g, sess, playFlags.secret, !playFlags.quiet)
		if err != nil {
			return fmt.Errorf("game %d (%s): %w", i+1, g.Answer, err)
		}
		total += n
		if g.Won {
			solved++
			fmt.Fprintf(out, "%s solved in %d\n", g.Answer, n)
		} else {
			fmt.Fprintf(out, "%s not solved in %d\n", g.Answer, n)
		}
	}
	if playFlags.games > 1 {
		fmt.Fprintf(out, "\n%d/%d solved, %.3f guesses on average\n",
			solved, playFlags.games, float64(total)/float64(playFlags.games))
	}
	return nil
}
