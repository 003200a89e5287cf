// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound indicates no live row exists for the requested key.
var ErrNotFound = errors.New("store: not found")

// Drafts is the key-value draft store with expiry. Rows past their
// expires_at are treated as absent even before the purge job removes them.
type Drafts struct {
	db *sql.DB
}

// NewDrafts creates a draft store over db.
func NewDrafts(db *sql.DB) *Drafts {
	return &Drafts{db: db}
}

// Get returns the payload stored under key. Expired entries read as absent.
func (d *Drafts) Get(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := d.db.QueryRowContext(ctx,
		`SELECT payload FROM drafts WHERE key = ? AND expires_at > ?`,
		key, time.Now().UTC(),
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// Has reports whether a live draft exists under key.
func (d *Drafts) Has(ctx context.Context, key string) (bool, error) {
	var one int
	err := d.db.QueryRowContext(ctx,
		`SELECT 1 FROM drafts WHERE key = ? AND expires_at > ?`,
		key, time.Now().UTC(),
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Put upserts payload under key with the given time to live. Writing
// resets the expiry clock.
func (d *Drafts) Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	now := time.Now().UTC()
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO drafts (key, payload, updated_at, expires_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload,
		   updated_at = excluded.updated_at, expires_at = excluded.expires_at`,
		key, payload, now, now.Add(ttl),
	)
	return err
}

// Delete removes the draft under key. Deleting an absent key is not an
// error.
func (d *Drafts) Delete(ctx context.Context, key string) error {
	_, err := d.db.ExecContext(ctx, `DELETE FROM drafts WHERE key = ?`, key)
	return err
}

// PurgeExpired removes rows past their expiry and returns how many went.
func (d *Drafts) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := d.db.ExecContext(ctx,
		`DELETE FROM drafts WHERE expires_at <= ?`, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
