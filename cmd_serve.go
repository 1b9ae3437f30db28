package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/internal/httpserver"
	"github.com/robalobadob/wordle/apps/solver/internal/table"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve solver sessions and the playable game over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Listen port (default: $PORT or 5175)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	if servePort != "" {
		cfg.Port = servePort
	}
	lists, err := loadLists()
	if err != nil {
		return err
	}
	t, err := loadTable(cmd.Context(), lists)
	if err != nil {
		return err
	}
	if cfg.AdminKeyHash == "" {
		log.Warn().Msg("ADMIN_KEY_HASH not set, /admin/reload disabled")
	}

	srv := httpserver.New(httpserver.Options{
		Table:        t,
		Lists:        lists,
		JWTSecret:    cfg.JWTSecret,
		AdminKeyHash: cfg.AdminKeyHash,
		ClientOrigin: cfg.ClientOrigin,
		DailySalt:    cfg.DailySalt,
		MaxGuesses:   cfg.MaxGuesses,
		SessionTTL:   cfg.SessionTTL,
		// the game keeps its word lists; only tables over the same secrets load
		Reload: func(ctx context.Context) (*table.Table, error) {
			return loadTable(ctx, lists)
		},
		Now: func() time.Time { return time.Now().UTC() },
	})

	log.Info().Str("port", cfg.Port).Msg("starting solver server")
	return srv.Run(cmd.Context(), ":"+cfg.Port)
}
