// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Memory is an in-process Cacher backed by a mutex-guarded map with lazy
// expiry plus a periodic sweep.
type Memory struct {
	mu         sync.RWMutex
	entries    map[string]memoryEntry
	defaultTTL time.Duration
	maxEntries int
	stopCh     chan struct{}
	closed     atomic.Bool

	hits   atomic.Int64
	misses atomic.Int64
	sets   atomic.Int64
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryOptions configures the memory backend.
type MemoryOptions struct {
	DefaultTTL      time.Duration
	MaxEntries      int           // 0 = unlimited
	CleanupInterval time.Duration // 0 = no background sweep
}

// NewMemory creates a memory cache with the given options.
func NewMemory(opts MemoryOptions) *Memory {
	if opts.DefaultTTL <= 0 {
		opts.DefaultTTL = time.Minute
	}
	m := &Memory{
		entries:    make(map[string]memoryEntry),
		defaultTTL: opts.DefaultTTL,
		maxEntries: opts.MaxEntries,
		stopCh:     make(chan struct{}),
	}
	if opts.CleanupInterval > 0 {
		go m.sweepLoop(opts.CleanupInterval)
	}
	return m
}

// Get implements Cacher.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	if m.closed.Load() {
		return nil, ErrClosed
	}

	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		if ok {
			m.mu.Lock()
			delete(m.entries, key)
			m.mu.Unlock()
		}
		m.misses.Add(1)
		return nil, ErrMiss
	}

	m.hits.Add(1)
	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, nil
}

// Set implements Cacher.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if m.closed.Load() {
		return ErrClosed
	}
	if ttl <= 0 {
		ttl = m.defaultTTL
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	m.mu.Lock()
	if m.maxEntries > 0 && len(m.entries) >= m.maxEntries {
		m.evictLocked()
	}
	m.entries[key] = memoryEntry{value: stored, expiresAt: time.Now().Add(ttl)}
	m.mu.Unlock()

	m.sets.Add(1)
	return nil
}

// Delete implements Cacher.
func (m *Memory) Delete(_ context.Context, key string) error {
	if m.closed.Load() {
		return ErrClosed
	}
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// Close stops the sweep goroutine.
func (m *Memory) Close() error {
	if m.closed.CompareAndSwap(false, true) {
		close(m.stopCh)
	}
	return nil
}

// Stats implements StatsProvider.
func (m *Memory) Stats() Stats {
	m.mu.RLock()
	items := len(m.entries)
	m.mu.RUnlock()
	return Stats{
		Hits:   m.hits.Load(),
		Misses: m.misses.Load(),
		Sets:   m.sets.Load(),
		Items:  items,
	}
}

// evictLocked frees capacity: expired entries first, then the entry closest
// to expiry. Caller holds m.mu.
func (m *Memory) evictLocked() {
	now := time.Now()
	var oldestKey string
	var oldestAt time.Time
	for k, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, k)
			continue
		}
		if oldestKey == "" || e.expiresAt.Before(oldestAt) {
			oldestKey, oldestAt = k, e.expiresAt
		}
	}
	if len(m.entries) >= m.maxEntries && oldestKey != "" {
		delete(m.entries, oldestKey)
	}
}

func (m *Memory) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			now := time.Now()
			m.mu.Lock()
			for k, e := range m.entries {
				if now.After(e.expiresAt) {
					delete(m.entries, k)
				}
			}
			m.mu.Unlock()
		case <-m.stopCh:
			return
		}
	}
}

var (
	_ Cacher        = (*Memory)(nil)
	_ StatsProvider = (*Memory)(nil)
)
