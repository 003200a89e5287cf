// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package listing fetches listing pages with stale-while-revalidate
// caching. Concurrent requests for the same query collapse into one
// backend call.
package listing

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/olegiv/folio/internal/cache"
	"github.com/olegiv/folio/internal/model"
	"github.com/olegiv/folio/internal/query"
)

// Fetcher is the slice of the backend client the service needs.
type Fetcher interface {
	ContentPage(ctx context.Context, typ model.ContentType, q query.ListQuery) (*model.ContentPage, error)
}

// Service serves listing pages from cache, revalidating in the background.
type Service struct {
	fetcher    Fetcher
	pages      *cache.Typed[model.ContentPage]
	group      singleflight.Group
	refreshing sync.Map // key -> struct{} while a background refresh runs
	ttl        time.Duration
	timeout    time.Duration
	logger     *slog.Logger
}

// New creates a listing service. ttl bounds how long a cached page may be
// served without any revalidation having succeeded.
func New(fetcher Fetcher, backend cache.Cacher, ttl time.Duration, logger *slog.Logger) *Service {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Service{
		fetcher: fetcher,
		pages:   cache.NewTyped[model.ContentPage](backend, ttl),
		ttl:     ttl,
		timeout: 15 * time.Second,
		logger:  logger,
	}
}

// FetchPage returns the listing page for the query. stale is true when the
// page came from cache and a background revalidation was kicked off. An
// error is returned only when no cached page exists.
func (s *Service) FetchPage(ctx context.Context, typ model.ContentType, q query.ListQuery) (page *model.ContentPage, stale bool, err error) {
	key := cacheKey(typ, q)

	if cached, ok := s.pages.Get(ctx, key); ok {
		s.revalidate(typ, q, key)
		return cached, true, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.fetchAndStore(ctx, typ, q, key)
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*model.ContentPage), false, nil
}

// Invalidate drops the cached page for the query, forcing the next fetch
// to hit the backend. Called after a successful write.
func (s *Service) Invalidate(ctx context.Context, typ model.ContentType, q query.ListQuery) {
	if err := s.pages.Delete(ctx, cacheKey(typ, q)); err != nil {
		s.logger.Warn("invalidating listing cache", "error", err)
	}
}

// revalidate refreshes key in the background. At most one refresh per key
// runs at a time; later requests while it runs keep serving the cached page.
func (s *Service) revalidate(typ model.ContentType, q query.ListQuery, key string) {
	if _, loaded := s.refreshing.LoadOrStore(key, struct{}{}); loaded {
		return
	}
	go func() {
		defer s.refreshing.Delete(key)

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		_, err, _ := s.group.Do(key, func() (any, error) {
			return s.fetchAndStore(ctx, typ, q, key)
		})
		if err != nil {
			// The stale page stays in cache until its TTL runs out.
			s.logger.Warn("listing revalidation failed", "key", key, "error", err)
		}
	}()
}

func (s *Service) fetchAndStore(ctx context.Context, typ model.ContentType, q query.ListQuery, key string) (*model.ContentPage, error) {
	page, err := s.fetcher.ContentPage(ctx, typ, q)
	if err != nil {
		return nil, err
	}
	if err := s.pages.Set(ctx, key, page); err != nil {
		s.logger.Warn("storing listing page", "key", key, "error", err)
	}
	return page, nil
}

func cacheKey(typ model.ContentType, q query.ListQuery) string {
	return string(typ) + "?" + q.Key()
}
