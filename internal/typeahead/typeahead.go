// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package typeahead debounces the write form's lookup traffic: similar
// titles and quote author/piece suggestions. Within a debounce window only
// the latest query reaches the backend; earlier ones are superseded.
package typeahead

import (
	"context"
	"log/slog"
	"time"

	"github.com/olegiv/folio/internal/backend"
	"github.com/olegiv/folio/internal/debounce"
	"github.com/olegiv/folio/internal/model"
)

// MinQueryLen is the shortest input that triggers a lookup.
const MinQueryLen = 3

// DefaultWindow is the debounce window between keystroke and lookup.
const DefaultWindow = 400 * time.Millisecond

// lookupTimeout bounds one backend lookup.
const lookupTimeout = 5 * time.Second

// Service runs the debounced lookups for one write-form session. Each
// lookup kind keeps its own debouncer so title and attribution typing
// don't supersede each other.
type Service struct {
	client *backend.Client
	logger *slog.Logger

	titles  *debounce.Debouncer
	authors *debounce.Debouncer
	pieces  *debounce.Debouncer
}

// New creates a typeahead service. A non-positive window falls back to
// DefaultWindow.
func New(client *backend.Client, window time.Duration, logger *slog.Logger) *Service {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Service{
		client:  client,
		logger:  logger,
		titles:  debounce.New(window),
		authors: debounce.New(window),
		pieces:  debounce.New(window),
	}
}

// SimilarTitles schedules a similar-title lookup for the typed title and
// delivers the result to deliver. Inputs shorter than MinQueryLen clear
// the suggestions instead.
func (s *Service) SimilarTitles(typ model.ContentType, title string, deliver func([]model.SimilarItem)) {
	scheduleLookup(s.titles, s.logger, title, deliver, func(ctx context.Context, q string) ([]model.SimilarItem, error) {
		return s.client.SimilarByTitle(ctx, typ, q)
	})
}

// Authors schedules a quote-author suggestion lookup.
func (s *Service) Authors(name string, deliver func([]model.NameRef)) {
	scheduleLookup(s.authors, s.logger, name, deliver, s.client.SimilarAuthors)
}

// Pieces schedules a quote-piece suggestion lookup.
func (s *Service) Pieces(name string, deliver func([]model.NameRef)) {
	scheduleLookup(s.pieces, s.logger, name, deliver, s.client.SimilarPieces)
}

// Cancel drops all pending lookups, as when the form closes.
func (s *Service) Cancel() {
	s.titles.Cancel()
	s.authors.Cancel()
	s.pieces.Cancel()
}

// scheduleLookup runs one debounced lookup. Too-short input cancels the
// pending lookup and clears the suggestion list immediately.
func scheduleLookup[T any](deb *debounce.Debouncer, logger *slog.Logger, q string, deliver func([]T), fetch func(context.Context, string) ([]T, error)) {
	if len([]rune(q)) < MinQueryLen {
		deb.Cancel()
		deliver(nil)
		return
	}
	deb.Schedule(func() {
		ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
		defer cancel()
		items, err := fetch(ctx, q)
		if err != nil {
			logger.Warn("typeahead lookup failed", "query", q, "error", err)
			return
		}
		deliver(items)
	})
}
