package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.IsProduction() {
		t.Error("default environment should not be production")
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestLoadEnvironmentSelection(t *testing.T) {
	t.Setenv("N8N_WEBHOOK_BASE_URL_DEV", "http://dev.example/webhook/")
	t.Setenv("N8N_WEBHOOK_BASE_URL_PROD", "https://prod.example/webhook")

	t.Setenv("APP_ENV", "development")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WebhookBaseURL != "http://dev.example/webhook" {
		t.Errorf("dev WebhookBaseURL = %q (trailing slash should be trimmed)", cfg.WebhookBaseURL)
	}

	t.Setenv("APP_ENV", "production")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WebhookBaseURL != "https://prod.example/webhook" {
		t.Errorf("prod WebhookBaseURL = %q", cfg.WebhookBaseURL)
	}
	if !cfg.IsProduction() {
		t.Error("IsProduction should be true")
	}
}

func TestLoadMissingWebhookIsNotFatal(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// Missing webhook configuration surfaces per request, not at boot.
	if cfg.WorkflowID != "" && cfg.WebhookBaseURL != "" {
		t.Skip("environment provides webhook configuration")
	}
}

func TestSplitOrigins(t *testing.T) {
	got := splitOrigins("http://a.example, http://b.example ,")
	if len(got) != 2 || got[0] != "http://a.example" || got[1] != "http://b.example" {
		t.Errorf("splitOrigins = %v", got)
	}
}

func TestLoadClientDefaults(t *testing.T) {
	cfg := LoadClient()
	if cfg.ServerURL != "http://localhost:8080" {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
	if cfg.DBPath == "" {
		t.Error("DBPath should have a default")
	}
}
