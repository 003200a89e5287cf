// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package draft

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/olegiv/folio/internal/debounce"
	"github.com/olegiv/folio/internal/form"
	"github.com/olegiv/folio/internal/model"
)

// State is the draft lifecycle position of a write form.
type State int

const (
	// Clean means nothing worth keeping: an empty create form, or an edit
	// form matching its loaded snapshot. Navigation is unguarded.
	Clean State = iota
	// Dirty means unsaved user input exists.
	Dirty
	// Persisted means the latest input has been autosaved.
	Persisted
)

func (s State) String() string {
	switch s {
	case Clean:
		return "clean"
	case Dirty:
		return "dirty"
	case Persisted:
		return "persisted"
	default:
		return "unknown"
	}
}

// Mode selects the dirtiness rule.
type Mode int

const (
	// ModeCreate treats any non-empty content as dirty and autosaves it.
	ModeCreate Mode = iota
	// ModeEdit compares against the snapshot taken at load and never
	// autosaves; the published record is the source of truth.
	ModeEdit
)

// DefaultAutosaveWindow is the quiet period before a dirty create form is
// written to the store.
const DefaultAutosaveWindow = 3 * time.Second

// saveTimeout bounds the background autosave write.
const saveTimeout = 5 * time.Second

// Storage is the draft persistence contract the manager writes through.
// *Store satisfies it.
type Storage interface {
	Load(ctx context.Context, key string) (*Record, error)
	Save(ctx context.Context, key string, rec Record) error
	Remove(ctx context.Context, key string) error
}

// Manager runs the draft state machine for one open write form.
type Manager struct {
	mu       sync.Mutex
	saveMu   sync.Mutex
	mode     Mode
	key      string
	store    Storage
	deb      *debounce.Debouncer
	logger   *slog.Logger
	form     form.State
	snapshot form.State
	state    State
	seq      uint64
}

// NewCreate opens a create-mode manager. An existing stored draft hydrates
// the form and the manager starts Persisted; otherwise it starts Clean.
// Load failures degrade to an empty form.
func NewCreate(ctx context.Context, st Storage, typ model.ContentType, userID string, window time.Duration, logger *slog.Logger) *Manager {
	if window <= 0 {
		window = DefaultAutosaveWindow
	}
	m := &Manager{
		mode:   ModeCreate,
		key:    Key(typ, userID),
		store:  st,
		deb:    debounce.New(window),
		logger: logger,
	}
	rec, err := st.Load(ctx, m.key)
	if err != nil {
		logger.Warn("draft load failed", "key", m.key, "error", err)
		return m
	}
	if rec != nil {
		rec.ApplyTo(&m.form)
		m.state = Persisted
	}
	return m
}

// NewEdit opens an edit-mode manager over the loaded record's field values.
// The initial state is the snapshot the dirty check compares against.
func NewEdit(initial form.State, logger *slog.Logger) *Manager {
	return &Manager{
		mode:     ModeEdit,
		deb:      debounce.New(DefaultAutosaveWindow),
		logger:   logger,
		form:     initial,
		snapshot: initial,
	}
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Guard reports whether navigating away should be intercepted.
func (m *Manager) Guard() bool {
	return m.State() != Clean
}

// Form returns a copy of the current field state.
func (m *Manager) Form() form.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.form
}

// SetField records a text-field mutation and recomputes the state.
func (m *Manager) SetField(field, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	changed := m.form.Get(field) != value
	m.form.Set(field, value)
	m.recompute(changed)
}

// SetTags records a tag-set mutation and recomputes the state.
func (m *Manager) SetTags(tags []model.Tag) {
	m.mu.Lock()
	defer m.mu.Unlock()
	before := m.form.SlugSet()
	m.form.SetTags(tags)
	m.recompute(!equalSlugs(before, m.form.SlugSet()))
}

// Apply replaces the whole field state, as when an autosave request carries
// the full form, and recomputes the state.
func (m *Manager) Apply(s form.State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.form = s
	m.recompute(true)
}

func (m *Manager) recompute(changed bool) {
	m.seq++
	switch m.mode {
	case ModeCreate:
		if !m.form.AnyContent() {
			m.deb.Cancel()
			m.state = Clean
			m.removeStored()
			return
		}
		if !changed && m.state != Dirty {
			return
		}
		m.state = Dirty
		m.scheduleSave()
	case ModeEdit:
		if m.form.DirtyAgainst(m.snapshot) {
			m.state = Dirty
		} else {
			m.state = Clean
		}
	}
}

// scheduleSave arranges a debounced write of the current form. Writes are
// serialized under saveMu and re-check the sequence counter first, so a
// slow write can never land after a newer one and overwrite it with stale
// fields; the same counter keeps a stale completion from masking input
// typed while the write was in flight.
func (m *Manager) scheduleSave() {
	rec := FromForm(m.form)
	seq := m.seq
	m.deb.Schedule(func() {
		m.saveMu.Lock()
		defer m.saveMu.Unlock()

		m.mu.Lock()
		stale := m.seq != seq
		m.mu.Unlock()
		if stale {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		err := m.store.Save(ctx, m.key, rec)

		m.mu.Lock()
		if err != nil {
			m.mu.Unlock()
			m.logger.Warn("draft autosave failed", "key", m.key, "error", err)
			return
		}
		if m.seq == seq {
			if m.state == Dirty {
				m.state = Persisted
			}
			m.mu.Unlock()
			return
		}
		m.mu.Unlock()

		// Superseded while writing: newer input reschedules its own save,
		// and a discard must not get this row back.
		rctx, rcancel := context.WithTimeout(context.Background(), saveTimeout)
		defer rcancel()
		_ = m.store.Remove(rctx, m.key)
	})
}

// removeStored best-effort deletes the stored draft. Callers hold the lock.
func (m *Manager) removeStored() {
	if m.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := m.store.Remove(ctx, m.key); err != nil {
		m.logger.Warn("draft remove failed", "key", m.key, "error", err)
	}
}

// Discard drops all unsubmitted work: the pending autosave, the stored
// draft, and the form itself, which resets to empty in create mode and to
// the snapshot in edit mode.
func (m *Manager) Discard() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.deb.Cancel()
	m.removeStored()
	if m.mode == ModeEdit {
		m.form = m.snapshot
	} else {
		m.form = form.State{}
	}
	m.state = Clean
}

// CompleteSubmit marks a successful submission: the draft has become real
// content, so the stored copy goes away and the guard releases.
func (m *Manager) CompleteSubmit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.deb.Cancel()
	m.removeStored()
	m.state = Clean
}

// Close stops the pending autosave timer without touching the stored
// draft, so work survives navigation and the form can hydrate later.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deb.Cancel()
}

func equalSlugs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
