// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package query

import (
	"net/url"
	"testing"
)

func TestNormalizeOrder_ValidKeys(t *testing.T) {
	for _, k := range OrderKeys {
		if got := NormalizeOrder(k); got != k {
			t.Errorf("NormalizeOrder(%q) = %q, want %q", k, got, k)
		}
	}
}

func TestNormalizeOrder_FallsBackToDefault(t *testing.T) {
	for _, bad := range []string{"", "oldest", "NEWEST", "hot ", "popular"} {
		if got := NormalizeOrder(bad); got != DefaultOrder {
			t.Errorf("NormalizeOrder(%q) = %q, want %q", bad, got, DefaultOrder)
		}
	}
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 1},
		{"0", 1},
		{"-1", 1},
		{"abc", 1},
		{"1", 1},
		{"7", 7},
	}
	for _, tt := range tests {
		if got := NormalizePage(tt.raw); got != tt.want {
			t.Errorf("NormalizePage(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestFromURL_Precedence(t *testing.T) {
	params := url.Values{"order": {"hot"}, "page": {"3"}}

	// Explicit override beats the URL parameter.
	q := FromURL(params, "score")
	if q.Order != "score" {
		t.Errorf("override order = %q, want score", q.Order)
	}

	// Without an override the URL parameter wins.
	q = FromURL(params, "")
	if q.Order != "hot" {
		t.Errorf("url order = %q, want hot", q.Order)
	}
	if q.Page != 3 {
		t.Errorf("page = %d, want 3", q.Page)
	}

	// With neither, the first enum member applies.
	q = FromURL(url.Values{}, "")
	if q.Order != OrderKeys[0] {
		t.Errorf("default order = %q, want %q", q.Order, OrderKeys[0])
	}
	if q.Page != 1 || q.PageSize != DefaultPageSize {
		t.Errorf("defaults = page %d size %d", q.Page, q.PageSize)
	}
}

func TestFromURL_TagIDVerbatim(t *testing.T) {
	q := FromURL(url.Values{"tag_id": {"t42"}}, "")
	if q.TagID != "t42" {
		t.Errorf("TagID = %q, want t42", q.TagID)
	}
	q = FromURL(url.Values{}, "")
	if q.TagID != "" {
		t.Errorf("TagID = %q, want empty", q.TagID)
	}
}

func TestKey_Canonical(t *testing.T) {
	a := ListQuery{Page: 1, PageSize: 20, Order: "newest", TagID: "t42"}
	b := FromURL(url.Values{"tag_id": {"t42"}}, "")
	if a.Key() != b.Key() {
		t.Errorf("keys differ: %q vs %q", a.Key(), b.Key())
	}

	c := ListQuery{Page: 2, PageSize: 20, Order: "newest", TagID: "t42"}
	if a.Key() == c.Key() {
		t.Error("distinct queries must not share a key")
	}
}

func TestValues_OmitsEmptyFilter(t *testing.T) {
	q := ListQuery{Page: 1, PageSize: 20, Order: "newest"}
	v := q.Values()
	if _, ok := v["tag_id"]; ok {
		t.Error("empty tag_id must be omitted")
	}
	if _, ok := v["in_days"]; ok {
		t.Error("zero in_days must be omitted")
	}
}
