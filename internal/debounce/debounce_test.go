// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package debounce

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSchedule_OnlyNewestRuns(t *testing.T) {
	d := New(30 * time.Millisecond)

	var calls atomic.Int64
	var mu sync.Mutex
	var last string

	record := func(v string) func() {
		return func() {
			calls.Add(1)
			mu.Lock()
			last = v
			mu.Unlock()
		}
	}

	d.Schedule(record("a"))
	d.Schedule(record("ab"))
	d.Schedule(record("abc"))

	time.Sleep(100 * time.Millisecond)

	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
	mu.Lock()
	defer mu.Unlock()
	if last != "abc" {
		t.Errorf("last = %q, want abc", last)
	}
}

func TestCancel(t *testing.T) {
	d := New(20 * time.Millisecond)

	var calls atomic.Int64
	d.Schedule(func() { calls.Add(1) })
	d.Cancel()

	time.Sleep(60 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Errorf("calls = %d, want 0", got)
	}
}

func TestSchedule_SeparatedCallsBothRun(t *testing.T) {
	d := New(10 * time.Millisecond)

	var calls atomic.Int64
	d.Schedule(func() { calls.Add(1) })
	time.Sleep(50 * time.Millisecond)
	d.Schedule(func() { calls.Add(1) })
	time.Sleep(50 * time.Millisecond)

	if got := calls.Load(); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}
