// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package listing

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/folio/internal/cache"
	"github.com/olegiv/folio/internal/model"
	"github.com/olegiv/folio/internal/query"
	"github.com/olegiv/folio/internal/testutil"
)

// slowFetcher counts backend calls and can be made to block or fail.
type slowFetcher struct {
	calls   atomic.Int64
	delay   time.Duration
	err     error
	release chan struct{} // if set, calls block until closed
}

func (f *slowFetcher) ContentPage(ctx context.Context, typ model.ContentType, q query.ListQuery) (*model.ContentPage, error) {
	f.calls.Add(1)
	if f.release != nil {
		<-f.release
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &model.ContentPage{
		Count: 1,
		Items: []model.ContentSummary{{ID: "c1", Title: "cached"}},
	}, nil
}

func newService(f Fetcher) (*Service, cache.Cacher) {
	backend := cache.NewMemory(cache.MemoryOptions{DefaultTTL: time.Hour})
	return New(f, backend, time.Hour, testutil.Logger()), backend
}

func listQuery() query.ListQuery {
	return query.ListQuery{Page: 1, PageSize: 20, Order: "newest"}
}

func TestFetchPage_ColdFetch(t *testing.T) {
	f := &slowFetcher{}
	svc, _ := newService(f)

	page, stale, err := svc.FetchPage(context.Background(), model.TypeArticle, listQuery())
	require.NoError(t, err)
	assert.False(t, stale)
	assert.Equal(t, 1, page.Count)
	assert.Equal(t, int64(1), f.calls.Load())
}

func TestFetchPage_CoalescesConcurrentIdenticalQueries(t *testing.T) {
	f := &slowFetcher{release: make(chan struct{})}
	svc, _ := newService(f)

	const n = 8
	var wg sync.WaitGroup
	results := make([]*model.ContentPage, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _, errs[i] = svc.FetchPage(context.Background(), model.TypeArticle, listQuery())
		}(i)
	}

	// Give the goroutines time to pile up on the same key, then release.
	time.Sleep(50 * time.Millisecond)
	close(f.release)
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		require.NotNil(t, results[i])
	}
	assert.Equal(t, int64(1), f.calls.Load(), "identical concurrent queries must collapse into one call")
}

func TestFetchPage_ServesCachedAndRevalidates(t *testing.T) {
	f := &slowFetcher{}
	svc, _ := newService(f)
	ctx := context.Background()

	_, stale, err := svc.FetchPage(ctx, model.TypeQuote, listQuery())
	require.NoError(t, err)
	require.False(t, stale)

	page, stale, err := svc.FetchPage(ctx, model.TypeQuote, listQuery())
	require.NoError(t, err)
	assert.True(t, stale, "second fetch must be served from cache")
	assert.Equal(t, "c1", page.Items[0].ID)

	// The background refresh eventually lands.
	deadline := time.Now().Add(2 * time.Second)
	for f.calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.GreaterOrEqual(t, f.calls.Load(), int64(2), "revalidation call expected")
}

func TestFetchPage_ErrorWithoutCachePropagates(t *testing.T) {
	f := &slowFetcher{err: errors.New("backend down")}
	svc, _ := newService(f)

	_, _, err := svc.FetchPage(context.Background(), model.TypeArticle, listQuery())
	require.Error(t, err)
}

func TestFetchPage_DistinctQueriesFetchSeparately(t *testing.T) {
	f := &slowFetcher{}
	svc, _ := newService(f)
	ctx := context.Background()

	q2 := listQuery()
	q2.Page = 2

	_, _, err := svc.FetchPage(ctx, model.TypeArticle, listQuery())
	require.NoError(t, err)
	_, stale, err := svc.FetchPage(ctx, model.TypeArticle, q2)
	require.NoError(t, err)
	assert.False(t, stale)
	assert.Equal(t, int64(2), f.calls.Load())
}

func TestInvalidate(t *testing.T) {
	f := &slowFetcher{}
	svc, _ := newService(f)
	ctx := context.Background()

	_, _, err := svc.FetchPage(ctx, model.TypeArticle, listQuery())
	require.NoError(t, err)

	svc.Invalidate(ctx, model.TypeArticle, listQuery())

	_, stale, err := svc.FetchPage(ctx, model.TypeArticle, listQuery())
	require.NoError(t, err)
	assert.False(t, stale, "invalidated query must fetch fresh")
}
