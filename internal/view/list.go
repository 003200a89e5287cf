// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package view

import (
	"net/url"

	"github.com/olegiv/folio/internal/model"
	"github.com/olegiv/folio/internal/query"
	"github.com/olegiv/folio/internal/routes"
)

// ListView is the full render model of a listing page.
type ListView struct {
	Type       model.ContentType
	BasePath   string
	Order      string
	OrderKeys  []string
	Cards      []Card
	Count      int
	Stale      bool
	Loading    bool
	Pagination Pagination
}

// NewListView assembles the listing model. stale marks a page served from
// cache while a refresh runs; loading suppresses the empty state so a
// not-yet-fetched listing doesn't flash "no content". Pagination links are
// anchored at basePath and carry only the parameters the visitor actually
// sent, never the normalized backend ones.
func NewListView(typ model.ContentType, q query.ListQuery, page model.ContentPage, stale, loading bool, basePath string, rawQuery url.Values, paths *routes.Factory) ListView {
	if basePath == "" {
		basePath = typ.BasePath()
	}
	v := ListView{
		Type:      typ,
		BasePath:  basePath,
		Order:     q.Order,
		OrderKeys: query.OrderKeys,
		Count:     page.Count,
		Stale:     stale,
		Loading:   loading,
	}
	for _, item := range page.Items {
		v.Cards = append(v.Cards, NewCard(item, typ, paths))
	}
	v.Pagination = BuildPagination(q.Page, page.Count, q.PageSize, basePath, rawQuery)
	return v
}

// ShowEmptyState reports whether the "no content yet" block renders: only
// for a settled listing that truly has nothing.
func (v ListView) ShowEmptyState() bool {
	return v.Count <= 0 && !v.Loading
}

// OrderURL returns the listing URL with the given order selected. Changing
// order resets to the first page.
func (v ListView) OrderURL(order string) string {
	return v.BasePath + "?order=" + order
}
