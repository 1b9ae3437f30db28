package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/results"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs [run-id]",
	Short: "List stored comparison runs, or the games of one run",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "Runs to list")
}

func runRuns(cmd *cobra.Command, args []string) error {
	db, err := results.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := results.Migrate(db); err != nil {
		return err
	}
	repo := results.NewRepository(db)
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	defer tw.Flush()

	if len(args) == 1 {
		games, err := repo.RunGames(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(games) == 0 {
			return fmt.Errorf("run %s not found", args[0])
		}
		fmt.Fprintln(tw, "#\tSECRET\tGUESSES\tSOLVED")
		for i, g := range games {
			fmt.Fprintf(tw, "%d\t%s\t%d\t%t\n", i+1, g.Secret, g.Guesses, g.Solved)
		}
		return nil
	}

	runs, err := repo.Runs(cmd.Context(), runsLimit)
	if err != nil {
		return err
	}
	fmt.Fprintln(tw, "ID\tCREATED\tSTRATEGY\tSEED\tGAMES\tSOLVED\tMEAN\tMAX")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%.3f\t%d\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Strategy, r.Seed, r.Games, r.Solved, r.Mean, r.MaxGuesses)
	}
	return nil
}
