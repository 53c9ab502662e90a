// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds server configuration.
type Config struct {
	Port           string
	AppEnv         string
	WebhookBaseURL string
	WorkflowID     string
	AllowedOrigins []string
}

// Load reads server configuration from environment variables. A missing
// webhook URL or workflow ID is not fatal here: the bridge reports the
// configuration error per request instead of refusing to boot.
func Load() (*Config, error) {
	appEnv := getEnv("APP_ENV", "development")

	baseURL := getEnv("N8N_WEBHOOK_BASE_URL_DEV", "")
	if appEnv == "production" {
		baseURL = getEnv("N8N_WEBHOOK_BASE_URL_PROD", "")
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		AppEnv:         appEnv,
		WebhookBaseURL: strings.TrimRight(baseURL, "/"),
		WorkflowID:     getEnv("WORKFLOW_ID", ""),
		AllowedOrigins: splitOrigins(getEnv("ALLOWED_ORIGINS", "*")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if len(c.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_ORIGINS cannot be empty")
	}
	return nil
}

// IsProduction returns true when running against the production webhook.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// ClientConfig holds coach CLI configuration.
type ClientConfig struct {
	ServerURL string
	DBPath    string
}

// LoadClient reads CLI configuration from environment variables.
func LoadClient() *ClientConfig {
	return &ClientConfig{
		ServerURL: strings.TrimRight(getEnv("COACH_SERVER_URL", "http://localhost:8080"), "/"),
		DBPath:    getEnv("COACH_DB_PATH", "./data/coachflow.db"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func splitOrigins(s string) []string {
	var origins []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			origins = append(origins, part)
		}
	}
	return origins
}
