// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache provides the caching layer behind the listing service.
// Backends are pluggable: an in-process memory cache by default, Redis when
// a URL is configured.
package cache

import (
	"context"
	"log/slog"
	"time"
)

// Cacher is the backend contract. All implementations must be safe for
// concurrent use. Values are opaque bytes; the typed wrapper handles
// serialization.
type Cacher interface {
	// Get returns the value for key, or ErrMiss when absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key. A zero ttl applies the backend default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Error is the error type for cache operations.
type Error string

func (e Error) Error() string { return string(e) }

const (
	// ErrMiss indicates the key was not found or has expired.
	ErrMiss Error = "cache miss"

	// ErrClosed indicates the cache has been closed.
	ErrClosed Error = "cache closed"
)

// Stats holds counters reported by backends that track them.
type Stats struct {
	Hits   int64
	Misses int64
	Sets   int64
	Items  int
}

// StatsProvider is an optional interface for backends with statistics.
type StatsProvider interface {
	Stats() Stats
}

// Config selects and tunes the backend.
type Config struct {
	RedisURL        string        // empty = in-memory backend
	Prefix          string        // key prefix for the Redis backend
	DefaultTTL      time.Duration // applied when Set is called with ttl 0
	MaxEntries      int           // memory backend capacity, 0 = unlimited
	CleanupInterval time.Duration // memory backend expiry sweep interval
}

// New builds a backend from cfg. When Redis is configured but unreachable
// it falls back to the memory backend so the front-end stays serviceable.
func New(cfg Config, logger *slog.Logger) Cacher {
	if cfg.RedisURL == "" {
		return NewMemory(MemoryOptions{
			DefaultTTL:      cfg.DefaultTTL,
			MaxEntries:      cfg.MaxEntries,
			CleanupInterval: cfg.CleanupInterval,
		})
	}

	rc, err := NewRedis(RedisOptions{
		URL:        cfg.RedisURL,
		Prefix:     cfg.Prefix,
		DefaultTTL: cfg.DefaultTTL,
	})
	if err != nil {
		logger.Warn("redis cache unavailable, falling back to memory", "error", err)
		return NewMemory(MemoryOptions{
			DefaultTTL:      cfg.DefaultTTL,
			MaxEntries:      cfg.MaxEntries,
			CleanupInterval: cfg.CleanupInterval,
		})
	}
	return rc
}
