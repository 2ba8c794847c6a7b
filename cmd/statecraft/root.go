package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/talgya/statecraft/internal/config"
)

var configPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "statecraft",
		Short:         "Turn-based geopolitical survival simulation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "statecraft.yaml", "path to config file")

	root.AddCommand(newServeCmd())
	root.AddCommand(newGameCmd())
	root.AddCommand(newTurnCmd())
	root.AddCommand(newSimulateCmd())
	return root
}

// loadConfig reads config and wires the default logger.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}

	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return cfg, nil
}
