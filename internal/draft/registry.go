// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package draft

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/olegiv/folio/internal/model"
)

// Registry hands out one create-mode manager per draft key, so repeated
// autosave requests from the same form share a state machine.
type Registry struct {
	mu       sync.Mutex
	store    *Store
	window   time.Duration
	logger   *slog.Logger
	managers map[string]*entry
}

// entry tracks a manager and when a form last touched it, so idle ones
// can be swept.
type entry struct {
	m        *Manager
	lastUsed time.Time
}

// NewRegistry creates a registry over the draft store. Managers it opens
// use the given autosave window.
func NewRegistry(st *Store, window time.Duration, logger *slog.Logger) *Registry {
	return &Registry{
		store:    st,
		window:   window,
		logger:   logger,
		managers: make(map[string]*entry),
	}
}

// Create returns the manager for a user's create form of the given type,
// opening one on first use.
func (r *Registry) Create(ctx context.Context, typ model.ContentType, userID string) *Manager {
	key := Key(typ, userID)
	r.mu.Lock()
	if e, ok := r.managers[key]; ok {
		e.lastUsed = time.Now()
		r.mu.Unlock()
		return e.m
	}
	r.mu.Unlock()

	// Opened outside the lock: hydration hits the database.
	m := NewCreate(ctx, r.store, typ, userID, r.window, r.logger)

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.managers[key]; ok {
		m.Close()
		existing.lastUsed = time.Now()
		return existing.m
	}
	r.managers[key] = &entry{m: m, lastUsed: time.Now()}
	return m
}

// Release closes and forgets the manager under the key, leaving any stored
// draft in place.
func (r *Registry) Release(typ model.ContentType, userID string) {
	key := Key(typ, userID)
	r.mu.Lock()
	e, ok := r.managers[key]
	delete(r.managers, key)
	r.mu.Unlock()
	if ok {
		e.m.Close()
	}
}

// PruneIdle closes and forgets managers no form has touched within
// maxIdle and reports how many went. Stored drafts stay put, so a pruned
// manager simply rehydrates on the next Create.
func (r *Registry) PruneIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	r.mu.Lock()
	var idle []*entry
	for key, e := range r.managers {
		if e.lastUsed.Before(cutoff) {
			idle = append(idle, e)
			delete(r.managers, key)
		}
	}
	r.mu.Unlock()

	for _, e := range idle {
		e.m.Close()
	}
	return len(idle)
}

// Len reports how many managers are currently open.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.managers)
}
