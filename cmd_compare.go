package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/report"
	"github.com/robalobadob/wordle/apps/solver/internal/results"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

var compareFlags struct {
	games      int
	seed       uint64
	workers    int
	strategies []string
	report     string
	save       bool
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Play the same random secrets with each strategy and compare guess counts",
	Long: `Plays --games seeded secrets with every strategy, in parallel, and prints
mean/median/stddev/max guess counts and a histogram per strategy.

  solver compare --games 500 --seed 7 --report compare.xlsx --save`,
	Args: cobra.NoArgs,
	RunE: runCompare,
}

func init() {
	f := compareCmd.Flags()
	f.IntVarP(&compareFlags.games, "games", "n", 100, "Games per strategy")
	f.Uint64Var(&compareFlags.seed, "seed", 0, "Seed for secrets and random strategies (default: $SEED)")
	f.IntVar(&compareFlags.workers, "workers", 0, "Parallel games (default: GOMAXPROCS)")
	f.StringSliceVar(&compareFlags.strategies, "strategies", []string{"entropy", "random"}, "Strategies to compare")
	f.StringVar(&compareFlags.report, "report", "", "Write an .xlsx report to this path")
	f.BoolVar(&compareFlags.save, "save", false, "Store the run in the results database ($DB_PATH)")
}

func runCompare(cmd *cobra.Command, _ []string) error {
	if compareFlags.seed != 0 {
		cfg.Seed = compareFlags.seed
	}
	var strategies []solver.Strategy
	for _, name := range compareFlags.strategies {
		s, err := strategyFlag(strings.TrimSpace(name))
		if err != nil {
			return err
		}
		strategies = append(strategies, s)
	}

	lists, err := loadLists()
	if err != nil {
		return err
	}
	t, err := loadTable(cmd.Context(), lists)
	if err != nil {
		return err
	}

	sums, err := solver.Compare(cmd.Context(), t, newGameFactory(lists), strategies, solver.CompareOptions{
		Games:   compareFlags.games,
		Seed:    cfg.Seed,
		Workers: compareFlags.workers,
	})
	if err != nil {
		return err
	}
	printSummaries(cmd.OutOrStdout(), sums)

	if compareFlags.report != "" {
		if err := report.WriteXLSX(compareFlags.report, sums); err != nil {
			return err
		}
		log.Info().Str("path", compareFlags.report).Msg("report written")
	}
	if compareFlags.save {
		db, err := results.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := results.Migrate(db); err != nil {
			return err
		}
		repo := results.NewRepository(db)
		for _, s := range sums {
			run, err := repo.SaveRun(cmd.Context(), cfg.Seed, s)
			if err != nil {
				return err
			}
			log.Info().Str("run", run.ID).Str("strategy", run.Strategy).Msg("run saved")
		}
	}
	return nil
}

func printSummaries(w io.Writer, sums []solver.Summary) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STRATEGY\tGAMES\tSOLVED\tMEAN\tMEDIAN\tSTDDEV\tMAX")
	for _, s := range sums {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.3f\t%.1f\t%.3f\t%d\n",
			s.Strategy, s.Games, s.Solved, s.Mean, s.Median, s.StdDev, s.Max)
	}
	tw.Flush()

	for _, s := range sums {
		fmt.Fprintf(w, "\n%s\n", s.Strategy)
		for n := 1; n <= s.Max; n++ {
			c := s.Histogram[n]
			fmt.Fprintf(w, "%3d | %-40s %d\n", n, strings.Repeat("#", bar(c, s.Games, 40)), c)
		}
	}
}

func bar(count, total, width int) int {
	if total == 0 {
		return 0
	}
	return count * width / total
}
