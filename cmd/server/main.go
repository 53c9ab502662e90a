// coachflow gateway: bridges chat requests to the workflow webhook and
// re-emits the bulk NDJSON replies as SSE streams.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avelis/coachflow/internal/api"
	"github.com/avelis/coachflow/internal/bridge"
	"github.com/avelis/coachflow/internal/config"
	"github.com/joho/godotenv"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server",
		"port", cfg.Port,
		"env", cfg.AppEnv,
		"workflow_configured", cfg.WebhookBaseURL != "" && cfg.WorkflowID != "",
	)
	if cfg.WebhookBaseURL == "" || cfg.WorkflowID == "" {
		slog.Warn("Workflow webhook not configured; chat requests will fail until it is",
			"base_url_set", cfg.WebhookBaseURL != "",
			"workflow_id_set", cfg.WorkflowID != "",
		)
	}

	webhookClient := bridge.NewClient(cfg.WebhookBaseURL, cfg.WorkflowID)
	handler := api.NewHandler(webhookClient)
	router := api.NewRouter(handler, cfg.AllowedOrigins)

	// The chat route holds the response open while streaming, so no
	// WriteTimeout; the upstream call is bounded by the bridge instead.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped")
}
