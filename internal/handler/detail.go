// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/folio/internal/content"
	"github.com/olegiv/folio/internal/render"
	"github.com/olegiv/folio/internal/view"
)

// DetailData is the detail page render model.
type DetailData struct {
	ID          string
	Title       string
	Attribution string
	ViewCount   int
	CreatedAt   time.Time
	Tags        []view.TagChip
	Body        template.HTML
	CanEdit     bool
	EditURL     string
}

// Detail renders one record. An absent record is not an error: the backend
// answers 404, the client maps it to nil, and the missing page renders.
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	typ, ok := contentType(chi.URLParam(r, "type"))
	if !ok {
		h.renderMissing(w, r)
		return
	}
	id := chi.URLParam(r, "id")

	d, err := h.client.ContentDetail(r.Context(), typ, id)
	if err != nil {
		h.renderError(w, r, "detail fetch failed", "type", typ, "id", id, "error", err)
		return
	}
	if d == nil {
		h.renderMissing(w, r)
		return
	}

	body, err := content.RenderBody(d)
	if err != nil {
		h.renderError(w, r, "rendering detail body", "id", id, "error", err)
		return
	}

	data := DetailData{
		ID:        d.ID,
		Title:     d.Title,
		ViewCount: d.ViewCount,
		CreatedAt: d.CreatedAt,
		Body:      body,
	}
	for _, t := range d.Tags {
		name := t.DisplayName
		if name == "" {
			name = t.SlugName
		}
		data.Tags = append(data.Tags, view.TagChip{
			Slug:        t.SlugName,
			DisplayName: name,
			URL:         h.paths.TagLanding(t),
		})
	}
	if d.Author != nil || d.Piece != nil {
		data.Attribution = view.AttributionLine(d.Author, d.Piece)
	}
	if h.sessions.UserID(r.Context()) != "" {
		data.CanEdit = true
		data.EditURL = h.paths.EditPath(typ, d.ID)
	}

	if err := h.renderer.Render(w, r, "detail", render.TemplateData{Title: d.Title, Data: data}); err != nil {
		h.logger.Error("rendering detail", "error", err)
	}
}
