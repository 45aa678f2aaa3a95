package main

import (
	"log/slog"
	"os"
	_ "time/tzdata"

	"github.com/spf13/cobra"
)

func main() {
	var configPath string

	root := &cobra.Command{
		Use:           "aggregator",
		Short:         "NextPicker news aggregator",
		Long:          "Collects US and KR news feeds into one deduplicated, classified article store and serves it over HTTP.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to config file")

	root.AddCommand(
		serveCmd(&configPath),
		refreshCmd(&configPath),
		purgeCmd(&configPath),
		migrateCmd(&configPath),
	)

	if err := root.Execute(); err != nil {
		setupLogger("info").Error("command failed", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
