// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package draft_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/olegiv/folio/internal/draft"
	"github.com/olegiv/folio/internal/form"
	"github.com/olegiv/folio/internal/model"
	"github.com/olegiv/folio/internal/store"
	"github.com/olegiv/folio/internal/testutil"
)

const testWindow = 20 * time.Millisecond

func newTestStore(t *testing.T) *draft.Store {
	t.Helper()
	return draft.NewStore(store.NewDrafts(testutil.DB(t)), time.Hour)
}

// waitState polls until the manager reaches want or the deadline passes.
func waitState(t *testing.T, m *draft.Manager, want draft.State) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if m.State() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("state = %v, want %v", m.State(), want)
}

func TestCreate_AutosaveLifecycle(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	m := draft.NewCreate(ctx, st, model.TypeArticle, "u1", testWindow, testutil.Logger())
	if m.State() != draft.Clean {
		t.Fatalf("fresh create form: state = %v, want Clean", m.State())
	}
	if m.Guard() {
		t.Error("clean form must not guard navigation")
	}

	m.SetField(form.FieldTitle, "On the shortness of life")
	if m.State() != draft.Dirty {
		t.Fatalf("after input: state = %v, want Dirty", m.State())
	}
	if !m.Guard() {
		t.Error("dirty form must guard navigation")
	}

	waitState(t, m, draft.Persisted)
	if !m.Guard() {
		t.Error("persisted form still guards navigation")
	}

	rec, err := st.Load(ctx, draft.Key(model.TypeArticle, "u1"))
	if err != nil || rec == nil {
		t.Fatalf("stored draft: %v, %v", rec, err)
	}
	if rec.Title != "On the shortness of life" {
		t.Errorf("stored title = %q", rec.Title)
	}
}

func TestCreate_RoundTripHydration(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	logger := testutil.Logger()

	m := draft.NewCreate(ctx, st, model.TypeQuote, "u1", testWindow, logger)
	m.SetField(form.FieldTitle, "a title")
	m.SetField(form.FieldContent, "a body")
	m.SetTags([]model.Tag{{SlugName: "stoicism", DisplayName: "Stoicism"}})
	waitState(t, m, draft.Persisted)
	m.Close()

	reopened := draft.NewCreate(ctx, st, model.TypeQuote, "u1", testWindow, logger)
	if reopened.State() != draft.Persisted {
		t.Fatalf("reopened state = %v, want Persisted", reopened.State())
	}
	f := reopened.Form()
	if f.Title.Value != "a title" || f.Content.Value != "a body" {
		t.Errorf("hydrated fields = %q / %q", f.Title.Value, f.Content.Value)
	}
	if len(f.Tags.Value) != 1 || f.Tags.Value[0].SlugName != "stoicism" {
		t.Errorf("hydrated tags = %+v", f.Tags.Value)
	}
}

func TestCreate_NoOpMutationStaysClean(t *testing.T) {
	st := newTestStore(t)
	m := draft.NewCreate(context.Background(), st, model.TypeArticle, "u1", testWindow, testutil.Logger())

	m.SetField(form.FieldTitle, "")
	m.SetTags(nil)
	if m.State() != draft.Clean {
		t.Errorf("no-op mutations: state = %v, want Clean", m.State())
	}
}

func TestCreate_ClearingContentReturnsToClean(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	m := draft.NewCreate(ctx, st, model.TypeArticle, "u1", testWindow, testutil.Logger())
	m.SetField(form.FieldTitle, "something")
	waitState(t, m, draft.Persisted)

	m.SetField(form.FieldTitle, "")
	if m.State() != draft.Clean {
		t.Fatalf("emptied form: state = %v, want Clean", m.State())
	}
	rec, err := st.Load(ctx, draft.Key(model.TypeArticle, "u1"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rec != nil {
		t.Error("emptied form must drop the stored draft")
	}
}

func TestCreate_Discard(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	m := draft.NewCreate(ctx, st, model.TypeArticle, "u1", testWindow, testutil.Logger())
	m.SetField(form.FieldTitle, "to be thrown away")
	waitState(t, m, draft.Persisted)

	m.Discard()
	if m.State() != draft.Clean || m.Guard() {
		t.Errorf("after discard: state = %v, guard = %v", m.State(), m.Guard())
	}
	if f := m.Form(); f.Title.Value != "" {
		t.Errorf("discard must reset the form, title = %q", f.Title.Value)
	}
	if rec, _ := st.Load(ctx, draft.Key(model.TypeArticle, "u1")); rec != nil {
		t.Error("discard must drop the stored draft")
	}
}

func TestCreate_CompleteSubmitDropsDraft(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	m := draft.NewCreate(ctx, st, model.TypeArticle, "u1", testWindow, testutil.Logger())
	m.SetField(form.FieldTitle, "published")
	waitState(t, m, draft.Persisted)

	m.CompleteSubmit()
	if m.Guard() {
		t.Error("submitted form must not guard navigation")
	}
	if rec, _ := st.Load(ctx, draft.Key(model.TypeArticle, "u1")); rec != nil {
		t.Error("submission must drop the stored draft")
	}
}

func TestCreate_CloseKeepsStoredDraft(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	m := draft.NewCreate(ctx, st, model.TypeArticle, "u1", testWindow, testutil.Logger())
	m.SetField(form.FieldTitle, "keep me")
	waitState(t, m, draft.Persisted)

	m.Close()
	if rec, _ := st.Load(ctx, draft.Key(model.TypeArticle, "u1")); rec == nil {
		t.Error("close must leave the stored draft in place")
	}
}

func TestEdit_DirtyAndRevert(t *testing.T) {
	var initial form.State
	initial.Set(form.FieldTitle, "published title")
	initial.Set(form.FieldContent, "published body")
	initial.SetTags([]model.Tag{{SlugName: "alpha"}, {SlugName: "beta"}})

	m := draft.NewEdit(initial, testutil.Logger())
	if m.State() != draft.Clean {
		t.Fatalf("fresh edit form: state = %v, want Clean", m.State())
	}

	// Re-setting a field to its loaded value is not a mutation.
	m.SetField(form.FieldTitle, "published title")
	if m.State() != draft.Clean {
		t.Errorf("no-op set: state = %v, want Clean", m.State())
	}

	m.SetField(form.FieldTitle, "amended title")
	if m.State() != draft.Dirty || !m.Guard() {
		t.Errorf("after change: state = %v, guard = %v", m.State(), m.Guard())
	}

	m.SetField(form.FieldTitle, "published title")
	if m.State() != draft.Clean {
		t.Errorf("reverted: state = %v, want Clean", m.State())
	}

	// Tag order is not identity.
	m.SetTags([]model.Tag{{SlugName: "beta"}, {SlugName: "alpha"}})
	if m.State() != draft.Clean {
		t.Errorf("reordered tags: state = %v, want Clean", m.State())
	}
	m.SetTags([]model.Tag{{SlugName: "alpha"}})
	if m.State() != draft.Dirty {
		t.Errorf("dropped tag: state = %v, want Dirty", m.State())
	}
}

func TestRegistry_SharedManagerPerKey(t *testing.T) {
	st := newTestStore(t)
	reg := draft.NewRegistry(st, testWindow, testutil.Logger())
	ctx := context.Background()

	a := reg.Create(ctx, model.TypeArticle, "u1")
	b := reg.Create(ctx, model.TypeArticle, "u1")
	if a != b {
		t.Error("same key must share a manager")
	}
	if c := reg.Create(ctx, model.TypeQuote, "u1"); c == a {
		t.Error("different type must get its own manager")
	}

	reg.Release(model.TypeArticle, "u1")
	if d := reg.Create(ctx, model.TypeArticle, "u1"); d == a {
		t.Error("released key must open a fresh manager")
	}
}

// slowFirstStore stalls the first Save so a newer one can race it.
type slowFirstStore struct {
	*draft.Store
	mu      sync.Mutex
	stalled bool
	delay   time.Duration
}

func (s *slowFirstStore) Save(ctx context.Context, key string, rec draft.Record) error {
	s.mu.Lock()
	d := time.Duration(0)
	if !s.stalled {
		s.stalled = true
		d = s.delay
	}
	s.mu.Unlock()
	time.Sleep(d)
	return s.Store.Save(ctx, key, rec)
}

func TestCreate_SlowSaveNeverOvertakesNewerInput(t *testing.T) {
	st := newTestStore(t)
	slow := &slowFirstStore{Store: st, delay: 150 * time.Millisecond}
	ctx := context.Background()

	m := draft.NewCreate(ctx, slow, model.TypeArticle, "u1", testWindow, testutil.Logger())
	m.SetField(form.FieldTitle, "first")
	// Let the first save fire and stall inside the store.
	time.Sleep(2 * testWindow)
	m.SetField(form.FieldTitle, "second")

	waitState(t, m, draft.Persisted)
	// Give the stalled write every chance to land late.
	time.Sleep(250 * time.Millisecond)

	rec, err := st.Load(ctx, draft.Key(model.TypeArticle, "u1"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rec == nil || rec.Title != "second" {
		t.Fatalf("stored draft = %+v, want the newer title", rec)
	}
}

func TestRegistry_PruneIdle(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	reg := draft.NewRegistry(st, testWindow, testutil.Logger())

	m := reg.Create(ctx, model.TypeArticle, "u1")
	m.SetField(form.FieldTitle, "keep me")
	waitState(t, m, draft.Persisted)

	if reg.Len() != 1 {
		t.Fatalf("open managers = %d, want 1", reg.Len())
	}
	if n := reg.PruneIdle(0); n != 1 {
		t.Fatalf("pruned = %d, want 1", n)
	}
	if reg.Len() != 0 {
		t.Errorf("open managers after prune = %d, want 0", reg.Len())
	}

	// The stored draft survives the prune and rehydrates a fresh manager.
	m2 := reg.Create(ctx, model.TypeArticle, "u1")
	if m2 == m {
		t.Error("pruned manager must not be handed out again")
	}
	if m2.Form().Title.Value != "keep me" || m2.State() != draft.Persisted {
		t.Errorf("rehydrated form = %+v, state %v", m2.Form(), m2.State())
	}

	// Recently touched managers stay.
	if n := reg.PruneIdle(time.Hour); n != 0 {
		t.Errorf("pruned recent = %d, want 0", n)
	}
}
