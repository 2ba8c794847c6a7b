package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/talgya/statecraft/internal/api"
	"github.com/talgya/statecraft/internal/engine"
	"github.com/talgya/statecraft/internal/game"
	"github.com/talgya/statecraft/internal/llm"
	"github.com/talgya/statecraft/internal/persistence"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the game API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if dir := filepath.Dir(cfg.DBPath); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("create data dir: %w", err)
				}
			}
			db, err := persistence.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()
			slog.Info("database opened", "path", cfg.DBPath)

			var author engine.NarrativeAuthor
			if cfg.TextGeneration && cfg.AnthropicAPIKey != "" {
				a, err := llm.NewAuthor(llm.NewClient(cfg.AnthropicAPIKey))
				if err != nil {
					return err
				}
				author = a
				slog.Info("text generation enabled")
			} else {
				slog.Info("text generation disabled, deterministic briefings only")
			}

			srv := &api.Server{
				Svc:  game.NewService(db, author),
				Port: cfg.Port,
			}
			return srv.ListenAndServe()
		},
	}
}
