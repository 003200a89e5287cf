// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

// Event log levels and categories.
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"

	EventCategoryBackend = "backend"
	EventCategoryDraft   = "draft"
	EventCategoryCache   = "cache"
	EventCategorySystem  = "system"
)

// Event is one event log row.
type Event struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	Metadata  string
	CreatedAt time.Time
}

// Events is the append-mostly event log the logging handler writes to.
type Events struct {
	db *sql.DB
}

// NewEvents creates an event log over db.
func NewEvents(db *sql.DB) *Events {
	return &Events{db: db}
}

// Insert appends one event.
func (e *Events) Insert(ctx context.Context, ev Event) error {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	if ev.Metadata == "" {
		ev.Metadata = "{}"
	}
	_, err := e.db.ExecContext(ctx,
		`INSERT INTO events (level, category, message, metadata, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		ev.Level, ev.Category, ev.Message, ev.Metadata, ev.CreatedAt,
	)
	return err
}

// Recent returns the newest events, most recent first.
func (e *Events) Recent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := e.db.QueryContext(ctx,
		`SELECT id, level, category, message, metadata, created_at
		 FROM events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var events []Event
	for rows.Next() {
		var ev Event
		if err := rows.Scan(&ev.ID, &ev.Level, &ev.Category, &ev.Message, &ev.Metadata, &ev.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// PruneBefore deletes events older than cutoff.
func (e *Events) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := e.db.ExecContext(ctx, `DELETE FROM events WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
