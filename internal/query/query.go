// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package query builds normalized listing queries from URL parameters.
package query

import (
	"net/url"
	"strconv"
)

// Order keys accepted by the listing endpoints, in display order.
// The first member is the default.
var OrderKeys = []string{"newest", "active", "hot", "score", "unanswered", "recommend"}

// DefaultOrder is the order applied when none is requested or the requested
// value is unknown.
const DefaultOrder = "newest"

// DefaultPageSize is the fixed listing page size.
const DefaultPageSize = 20

// ListQuery is a normalized listing request.
type ListQuery struct {
	Page     int
	PageSize int
	Order    string
	TagID    string
	InDays   int
}

// NormalizeOrder maps any string onto a member of OrderKeys. Unknown values
// fall back to the default rather than failing; this mirrors the backend's
// silent-normalization policy.
func NormalizeOrder(order string) string {
	for _, k := range OrderKeys {
		if order == k {
			return k
		}
	}
	return OrderKeys[0]
}

// NormalizePage parses a page parameter, mapping absent, non-numeric and
// non-positive values to 1.
func NormalizePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// FromURL derives a ListQuery from URL search parameters. An explicit
// orderOverride wins over the URL's order parameter, which wins over the
// default. tag_id is carried through verbatim; the empty string means no
// filter.
func FromURL(params url.Values, orderOverride string) ListQuery {
	order := orderOverride
	if order == "" {
		order = params.Get("order")
	}

	q := ListQuery{
		Page:     NormalizePage(params.Get("page")),
		PageSize: DefaultPageSize,
		Order:    NormalizeOrder(order),
		TagID:    params.Get("tag_id"),
	}
	if days, err := strconv.Atoi(params.Get("in_days")); err == nil && days > 0 {
		q.InDays = days
	}
	return q
}

// Values encodes the query as backend request parameters.
func (q ListQuery) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("page_size", strconv.Itoa(q.PageSize))
	v.Set("order", q.Order)
	if q.TagID != "" {
		v.Set("tag_id", q.TagID)
	}
	if q.InDays > 0 {
		v.Set("in_days", strconv.Itoa(q.InDays))
	}
	return v
}

// Key returns the canonical serialized form of the query. Identical queries
// always produce identical keys, so the key doubles as the fetch-coalescing
// and cache key.
func (q ListQuery) Key() string {
	return q.Values().Encode()
}
