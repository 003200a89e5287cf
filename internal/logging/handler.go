// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that mirrors WARN and above
// into the database-backed event log for auditing.
package logging

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/olegiv/folio/internal/store"
)

// EventLogHandler is a slog.Handler that wraps another handler and also
// writes records at or above its threshold to the event log.
type EventLogHandler struct {
	inner  slog.Handler
	events *store.Events
	level  slog.Level
}

// NewEventLogHandler creates a handler that forwards everything to inner
// and mirrors WARN and above into the event log.
func NewEventLogHandler(inner slog.Handler, db *sql.DB) *EventLogHandler {
	return &EventLogHandler{
		inner:  inner,
		events: store.NewEvents(db),
		level:  slog.LevelWarn,
	}
}

// Enabled implements slog.Handler.
func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	if r.Level >= h.level {
		h.writeToEventLog(r)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &EventLogHandler{inner: h.inner.WithAttrs(attrs), events: h.events, level: h.level}
}

// WithGroup implements slog.Handler.
func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	return &EventLogHandler{inner: h.inner.WithGroup(name), events: h.events, level: h.level}
}

// writeToEventLog appends the record to the event log. A background
// context keeps the event even when the request context is already gone.
func (h *EventLogHandler) writeToEventLog(r slog.Record) {
	_ = h.events.Insert(context.Background(), store.Event{
		Level:     eventLevel(r.Level),
		Category:  eventCategory(r),
		Message:   r.Message,
		Metadata:  eventMetadata(r),
		CreatedAt: r.Time,
	})
}

func eventLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return store.EventLevelError
	case level >= slog.LevelWarn:
		return store.EventLevelWarning
	default:
		return store.EventLevelInfo
	}
}

// eventCategory reads an explicit "category" attribute, falling back to a
// guess from the message text.
func eventCategory(r slog.Record) string {
	var category string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "category" {
			category = a.Value.String()
			return false
		}
		return true
	})
	if category != "" {
		return category
	}

	msg := strings.ToLower(r.Message)
	switch {
	case strings.Contains(msg, "draft"):
		return store.EventCategoryDraft
	case strings.Contains(msg, "cache"):
		return store.EventCategoryCache
	case strings.Contains(msg, "backend") || strings.Contains(msg, "fetch"):
		return store.EventCategoryBackend
	default:
		return store.EventCategorySystem
	}
}

// eventMetadata collects the remaining attributes into a JSON string.
func eventMetadata(r slog.Record) string {
	if r.NumAttrs() == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteString("{")
	first := true
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "category" {
			return true
		}
		if !first {
			sb.WriteString(",")
		}
		first = false
		sb.WriteString(`"`)
		sb.WriteString(escapeJSON(a.Key))
		sb.WriteString(`":"`)
		sb.WriteString(escapeJSON(a.Value.String()))
		sb.WriteString(`"`)
		return true
	})
	sb.WriteString("}")
	return sb.String()
}

func escapeJSON(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
