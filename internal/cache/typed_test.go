// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"testing"
	"time"
)

type testPage struct {
	Count int      `json:"count"`
	IDs   []string `json:"ids"`
}

func TestTyped_RoundTrip(t *testing.T) {
	m := NewMemory(MemoryOptions{DefaultTTL: time.Hour})
	defer func() { _ = m.Close() }()

	c := NewTyped[testPage](m, time.Hour)
	ctx := context.Background()

	in := &testPage{Count: 2, IDs: []string{"a", "b"}}
	if err := c.Set(ctx, "page:1", in); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok := c.Get(ctx, "page:1")
	if !ok {
		t.Fatal("expected hit")
	}
	if got.Count != 2 || len(got.IDs) != 2 || got.IDs[1] != "b" {
		t.Errorf("got %+v", got)
	}
}

func TestTyped_MissAndDelete(t *testing.T) {
	m := NewMemory(MemoryOptions{DefaultTTL: time.Hour})
	defer func() { _ = m.Close() }()

	c := NewTyped[testPage](m, time.Hour)
	ctx := context.Background()

	if _, ok := c.Get(ctx, "absent"); ok {
		t.Error("unexpected hit")
	}

	_ = c.Set(ctx, "k", &testPage{Count: 1})
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("expected miss after delete")
	}
}

func TestTyped_DecodeFailureIsMiss(t *testing.T) {
	m := NewMemory(MemoryOptions{DefaultTTL: time.Hour})
	defer func() { _ = m.Close() }()
	ctx := context.Background()

	_ = m.Set(ctx, "k", []byte("{not json"), 0)
	c := NewTyped[testPage](m, time.Hour)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("corrupt entry must read as a miss")
	}
}
