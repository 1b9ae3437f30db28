// Command solver is the entropy-maximising wordle solver: it precomputes the
// outcome table, plays games against itself, helps with a real game over
// stdin and serves the same engine over HTTP.
//
// Usage:
//
//	solver precompute [--out data/outcomes.bin] [--secrets-only] [--common N --freq words.json]
//	solver solve [--strategy entropy|random]
//	solver play [--secret boxed] [--games N]
//	solver compare [--games 100] [--seed 1] [--report out.xlsx] [--save]
//	solver serve [--port 5175]
//	solver words common --top 4500 --out filtered_words.txt
//	solver runs [id]
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/config"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	cfg        config.Config
	configPath string
	logLevel   string
	logJSON    bool
)

var rootCmd = &cobra.Command{
	Use:   "solver",
	Short: "Entropy-maximising solver for the five-letter word game",
	Long: `solver picks the guess whose feedback tells it the most about the secret,
narrows the candidates with the feedback it gets back, and repeats.

Settings come from the environment (and .env), an optional YAML file given by
--config or SOLVER_CONFIG, and finally the command's flags.`,
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		setupLogging(cfg.LogLevel, logJSON)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML config file (default: $SOLVER_CONFIG)")
	pf.StringVar(&logLevel, "log-level", "", "trace|debug|info|warn|error (default: $LOG_LEVEL or info)")
	pf.BoolVar(&logJSON, "log-json", false, "Log JSON lines instead of console output")

	rootCmd.AddCommand(precomputeCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.Version = version
}

func setupLogging(level string, asJSON bool) {
	if lvl, err := zerolog.ParseLevel(level); err == nil && level != "" {
		zerolog.SetGlobalLevel(lvl)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	if !asJSON {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
