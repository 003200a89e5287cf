// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package debounce provides a cancellable-timer debouncer: scheduling
// again within the window supersedes the pending call, it never queues.
package debounce

import (
	"sync"
	"time"
)

// Debouncer delays a function call until its window has passed without a
// newer Schedule. Safe for concurrent use.
type Debouncer struct {
	mu     sync.Mutex
	window time.Duration
	timer  *time.Timer
}

// New creates a Debouncer with the given window.
func New(window time.Duration) *Debouncer {
	return &Debouncer{window: window}
}

// Schedule arranges for fn to run after the window elapses. A pending call
// is cancelled first, so only the most recent fn ever runs.
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, fn)
}

// Cancel drops any pending call.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
