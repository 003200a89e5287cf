// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package typeahead

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/olegiv/folio/internal/backend"
	"github.com/olegiv/folio/internal/model"
	"github.com/olegiv/folio/internal/testutil"
)

const testWindow = 30 * time.Millisecond

// newTestService backs the service with a counting stub backend that
// echoes the queried title as the single suggestion.
func newTestService(t *testing.T) (*Service, *atomic.Int64) {
	t.Helper()
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		title := r.URL.Query().Get("title")
		fmt.Fprintf(w, `{"code":0,"data":[{"id":"s1","title":%q,"url_title":"t"}]}`, title)
	}))
	t.Cleanup(srv.Close)
	return New(backend.New(srv.URL), testWindow, testutil.Logger()), &calls
}

type capture struct {
	mu    sync.Mutex
	items []model.SimilarItem
	set   bool
}

func (c *capture) deliver(items []model.SimilarItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = items
	c.set = true
}

func (c *capture) wait(t *testing.T) []model.SimilarItem {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		c.mu.Lock()
		if c.set {
			defer c.mu.Unlock()
			return c.items
		}
		c.mu.Unlock()
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("no delivery")
	return nil
}

func TestSimilarTitles_LatestQueryWins(t *testing.T) {
	s, calls := newTestService(t)
	var c capture

	// Three keystrokes inside one window: only the last reaches the backend.
	s.SimilarTitles(model.TypeArticle, "sene", c.deliver)
	s.SimilarTitles(model.TypeArticle, "senec", c.deliver)
	s.SimilarTitles(model.TypeArticle, "seneca", c.deliver)

	items := c.wait(t)
	if len(items) != 1 || items[0].Title != "seneca" {
		t.Errorf("items = %+v, want the latest query echoed", items)
	}
	// Allow any in-flight request to settle before counting.
	time.Sleep(3 * testWindow)
	if got := calls.Load(); got != 1 {
		t.Errorf("backend calls = %d, want 1", got)
	}
}

func TestSimilarTitles_ShortInputClears(t *testing.T) {
	s, calls := newTestService(t)
	var c capture

	s.SimilarTitles(model.TypeArticle, "seneca", func([]model.SimilarItem) {})
	s.SimilarTitles(model.TypeArticle, "se", c.deliver)

	if items := c.wait(t); items != nil {
		t.Errorf("short input must clear suggestions, got %+v", items)
	}
	time.Sleep(3 * testWindow)
	if got := calls.Load(); got != 0 {
		t.Errorf("backend calls = %d, want 0 (pending lookup superseded)", got)
	}
}

func TestCancelDropsPendingLookups(t *testing.T) {
	s, calls := newTestService(t)

	s.SimilarTitles(model.TypeQuote, "seneca", func([]model.SimilarItem) {
		t.Error("cancelled lookup must not deliver")
	})
	s.Cancel()

	time.Sleep(3 * testWindow)
	if got := calls.Load(); got != 0 {
		t.Errorf("backend calls = %d, want 0", got)
	}
}

func TestAuthorAndPieceLookups(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprintf(w, `{"code":0,"data":[{"id":"x1","name":"Seneca"}]}`)
	}))
	defer srv.Close()
	s := New(backend.New(srv.URL), testWindow, testutil.Logger())

	var mu sync.Mutex
	var got []model.NameRef
	s.Authors("Sen of Rome", func(refs []model.NameRef) {
		mu.Lock()
		got = refs
		mu.Unlock()
	})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		if len(got) == 1 {
			mu.Unlock()
			break
		}
		mu.Unlock()
		time.Sleep(5 * time.Millisecond)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 || got[0].Name != "Seneca" {
		t.Errorf("authors = %+v", got)
	}
}
