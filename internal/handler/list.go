// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/folio/internal/model"
	"github.com/olegiv/folio/internal/query"
	"github.com/olegiv/folio/internal/render"
	"github.com/olegiv/folio/internal/routes"
	"github.com/olegiv/folio/internal/view"
)

// List renders a listing page for the matched content type. The query is
// normalized from the URL; unknown orders and broken page numbers degrade
// silently instead of erroring.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	typ, ok := contentType(chi.URLParam(r, "type"))
	if !ok {
		h.renderMissing(w, r)
		return
	}

	q := query.FromURL(r.URL.Query(), "")
	page, stale, err := h.listings.FetchPage(r.Context(), typ, q)
	if err != nil {
		h.renderError(w, r, "listing fetch failed", "type", typ, "error", err)
		return
	}

	v := view.NewListView(typ, q, *page, stale, false, "", r.URL.Query(), h.paths)
	title := "Articles"
	if typ == model.TypeQuote {
		title = "Quotes"
	}
	if err := h.renderer.Render(w, r, "list", render.TemplateData{Title: title, Data: v}); err != nil {
		h.logger.Error("rendering listing", "error", err)
	}
}

// TagList renders the listing filtered by one tag. The first path segment
// is the tag identifier the backend filters by; a trailing slug segment is
// cosmetic and only titles the page. Selecting a tag always starts from
// the first page, so the page parameter is dropped.
func (h *Handler) TagList(w http.ResponseWriter, r *http.Request) {
	tag := chi.URLParam(r, "tag")
	slug := chi.URLParam(r, "slug")
	if !routes.IsValidSlug(tag) || (slug != "" && !routes.IsValidSlug(slug)) {
		h.renderMissing(w, r)
		return
	}

	params := r.URL.Query()
	params.Del("page")
	params.Set("tag_id", tag)
	q := query.FromURL(params, "")

	typ, ok := contentType(params.Get("type"))
	if !ok {
		typ = model.TypeArticle
	}

	page, stale, err := h.listings.FetchPage(r.Context(), typ, q)
	if err != nil {
		h.renderError(w, r, "tag listing fetch failed", "tag", tag, "error", err)
		return
	}

	label := slug
	if label == "" {
		label = tag
	}
	v := view.NewListView(typ, q, *page, stale, false, r.URL.Path, r.URL.Query(), h.paths)
	if err := h.renderer.Render(w, r, "list", render.TemplateData{Title: "#" + label, Data: v}); err != nil {
		h.logger.Error("rendering tag listing", "error", err)
	}
}
