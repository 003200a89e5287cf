// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"FOLIO_DB_PATH" envDefault:"./data/folio.db"`
	SessionSecret string `env:"FOLIO_SESSION_SECRET,required"`
	ServerHost    string `env:"FOLIO_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"FOLIO_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"FOLIO_ENV" envDefault:"development"`
	LogLevel      string `env:"FOLIO_LOG_LEVEL" envDefault:"info"`

	// Content backend
	BackendURL string `env:"FOLIO_BACKEND_URL,required"` // Base URL of the content API

	// Cache configuration
	RedisURL     string `env:"FOLIO_REDIS_URL"`                          // Optional Redis URL for distributed caching
	CachePrefix  string `env:"FOLIO_CACHE_PREFIX" envDefault:"folio:"`   // Redis key prefix
	CacheTTL     int    `env:"FOLIO_CACHE_TTL" envDefault:"60"`          // Listing cache TTL in seconds
	CacheMaxSize int    `env:"FOLIO_CACHE_MAX_SIZE" envDefault:"10000"`  // Max memory cache entries

	// Draft configuration
	DraftTTLDays    int `env:"FOLIO_DRAFT_TTL_DAYS" envDefault:"7"`     // Days an untouched draft survives
	AutosaveMS      int `env:"FOLIO_AUTOSAVE_MS" envDefault:"3000"`     // Autosave debounce window
	TypeaheadMS     int `env:"FOLIO_TYPEAHEAD_MS" envDefault:"400"`     // Typeahead debounce window
	TypeaheadPerSec int `env:"FOLIO_TYPEAHEAD_PER_SEC" envDefault:"10"` // Typeahead proxy rate limit

	// Permalinks: whether landing URLs carry the slugged title.
	PermalinkWithTitle bool `env:"FOLIO_PERMALINK_WITH_TITLE" envDefault:"true"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// ListingTTL returns the listing cache TTL as a duration.
func (c Config) ListingTTL() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// DraftTTL returns the draft time to live as a duration.
func (c Config) DraftTTL() time.Duration {
	return time.Duration(c.DraftTTLDays) * 24 * time.Hour
}

// AutosaveWindow returns the autosave debounce window as a duration.
func (c Config) AutosaveWindow() time.Duration {
	return time.Duration(c.AutosaveMS) * time.Millisecond
}

// TypeaheadWindow returns the typeahead debounce window as a duration.
func (c Config) TypeaheadWindow() time.Duration {
	return time.Duration(c.TypeaheadMS) * time.Millisecond
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("FOLIO_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("FOLIO_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("FOLIO_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	cfg.BackendURL = strings.TrimRight(cfg.BackendURL, "/")

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
