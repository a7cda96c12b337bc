package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Question enrichment. An empty API key disables enrichment and the
	// service runs on deterministic questions only.
	AnthropicAPIKey string
	AnthropicModel  string

	// Per-client enrichment quota (calls per window).
	EnrichQuota       int
	EnrichQuotaWindow time.Duration
	EnrichTimeout     time.Duration

	// Bytes of document text passed to enrichment as context.
	ContextExcerptBytes int

	// Upload limits
	MaxUploadBytes int64

	// Session lifetime
	SessionTTL time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  envOr("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),

		EnrichQuota:       envInt("ENRICH_QUOTA", 20),
		EnrichQuotaWindow: envDuration("ENRICH_QUOTA_WINDOW", 1*time.Hour),
		EnrichTimeout:     envDuration("ENRICH_TIMEOUT", 30*time.Second),

		ContextExcerptBytes: envInt("CONTEXT_EXCERPT_BYTES", 6000),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10485760), // 10MB

		SessionTTL: envDuration("SESSION_TTL", 2*time.Hour),
	}

	if cfg.EnrichQuotaWindow <= 0 {
		cfg.EnrichQuotaWindow = 1 * time.Hour
	}
	if cfg.EnrichTimeout <= 0 {
		cfg.EnrichTimeout = 30 * time.Second
	}
	if cfg.ContextExcerptBytes <= 0 {
		cfg.ContextExcerptBytes = 6000
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 2 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric: %w", err)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
