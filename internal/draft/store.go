// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package draft

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/olegiv/folio/internal/store"
)

// DefaultTTL is how long an untouched draft survives. Every save resets
// the clock.
const DefaultTTL = 7 * 24 * time.Hour

// Store persists draft records with a time to live.
type Store struct {
	drafts *store.Drafts
	ttl    time.Duration
}

// NewStore wraps the database draft table. A non-positive ttl falls back
// to DefaultTTL.
func NewStore(drafts *store.Drafts, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{drafts: drafts, ttl: ttl}
}

// Load returns the draft under key, or nil when none exists. A corrupt
// payload reads as absent.
func (s *Store) Load(ctx context.Context, key string) (*Record, error) {
	payload, err := s.drafts.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, nil
	}
	return &rec, nil
}

// Save upserts the draft under key, resetting its expiry.
func (s *Store) Save(ctx context.Context, key string, rec Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.drafts.Put(ctx, key, payload, s.ttl)
}

// Remove deletes the draft under key. Absent keys are not an error.
func (s *Store) Remove(ctx context.Context, key string) error {
	return s.drafts.Delete(ctx, key)
}
