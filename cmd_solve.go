package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/companion"
)

var solveFlags struct {
	strategy     string
	alternatives int
}

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Help with a real game: suggest guesses and read back the colours",
	Long: `Prints a suggested guess, then reads the feedback the game showed:

  0 1 0 2 0  or  01020  or  bybgb   (0/b = grey, 1/y = yellow, 2/g = green)
  slate 0 1 0 2 0                   (you played slate instead)
  y                                 (solved)
  p                                 (list the remaining candidates)`,
	Args: cobra.NoArgs,
	RunE: runSolve,
}

func init() {
	f := solveCmd.Flags()
	f.StringVar(&solveFlags.strategy, "strategy", "entropy", "entropy|random")
	f.IntVar(&solveFlags.alternatives, "alternatives", 3, "Runner-up guesses to show (-1 for none)")
}

func runSolve(cmd *cobra.Command, _ []string) error {
	strat, err := strategyFlag(solveFlags.strategy)
	if err != nil {
		return err
	}
	lists, err := loadLists()
	if err != nil {
		return err
	}
	t, err := loadTable(cmd.Context(), lists)
	if err != nil {
		return err
	}

	res, err := companion.Run(cmd.Context(), os.Stdin, cmd.OutOrStdout(), t, companion.Options{
		Rounds:       cfg.MaxGuesses,
		Alternatives: solveFlags.alternatives,
		Strategy:     strat,
	})
	if errors.Is(err, companion.ErrInputClosed) {
		return nil
	}
	if err != nil {
		return err
	}
	if res.Solved {
		fmt.Fprintf(cmd.OutOrStdout(), "Solved %s in %d.\n", res.Answer, res.Guesses)
	}
	return nil
}
