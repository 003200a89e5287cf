// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Typed wraps a Cacher with JSON serialization for a single value type.
type Typed[T any] struct {
	backend    Cacher
	defaultTTL time.Duration
}

// NewTyped creates a typed view over backend.
func NewTyped[T any](backend Cacher, defaultTTL time.Duration) *Typed[T] {
	return &Typed[T]{backend: backend, defaultTTL: defaultTTL}
}

// Get returns the cached value and true, or the zero value and false on a
// miss or decode failure.
func (c *Typed[T]) Get(ctx context.Context, key string) (*T, bool) {
	data, err := c.backend.Get(ctx, key)
	if err != nil {
		return nil, false
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, false
	}
	return &value, true
}

// Set stores value under key with the default TTL.
func (c *Typed[T]) Set(ctx context.Context, key string, value *T) error {
	return c.SetWithTTL(ctx, key, value, c.defaultTTL)
}

// SetWithTTL stores value under key with a custom TTL.
func (c *Typed[T]) SetWithTTL(ctx context.Context, key string, value *T, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.backend.Set(ctx, key, data, ttl)
}

// Delete removes key.
func (c *Typed[T]) Delete(ctx context.Context, key string) error {
	return c.backend.Delete(ctx, key)
}
