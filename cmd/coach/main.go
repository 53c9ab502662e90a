// coach is the terminal client for the coachflow gateway: a chat REPL with
// local conversation history, streak tracking, and level progress.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/avelis/coachflow/internal/config"
	"github.com/avelis/coachflow/internal/store"
	"github.com/joho/godotenv"
)

func main() {
	// Logs go to stderr so the conversation owns stdout.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err == nil {
		slog.Debug("Loaded .env file")
	}

	cfg := config.LoadClient()

	snapshots, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to open snapshot store", "error", err, "path", cfg.DBPath)
		os.Exit(1)
	}
	defer func() {
		if closeErr := snapshots.Close(); closeErr != nil {
			slog.Warn("Failed to close snapshot store", "error", closeErr)
		}
	}()

	app := NewApp(cfg, snapshots)
	if err := app.Run(context.Background()); err != nil {
		slog.Error("Session ended with error", "error", err)
		os.Exit(1)
	}
}
