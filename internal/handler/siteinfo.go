// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/folio/internal/backend"
	"github.com/olegiv/folio/internal/content"
	"github.com/olegiv/folio/internal/render"
)

// siteInfoKeys maps URL slugs to the backend's siteinfo keys.
var siteInfoKeys = map[string]string{
	"about":      "about",
	"disclaimer": "disclaimer",
}

// SiteInfoData is the siteinfo page render model.
type SiteInfoData struct {
	Title string
	Body  template.HTML
}

// SiteInfo renders a static informational page backed by the siteinfo
// endpoint.
func (h *Handler) SiteInfo(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "key")
	key, ok := siteInfoKeys[slug]
	if !ok {
		h.renderMissing(w, r)
		return
	}

	body, err := h.client.SiteInfoVal(r.Context(), key)
	if err != nil {
		var se *backend.StatusError
		if backend.AsStatusError(err, &se) && se.NotFound() {
			h.renderMissing(w, r)
			return
		}
		h.renderError(w, r, "siteinfo fetch failed", "key", key, "error", err)
		return
	}

	title := strings.ToUpper(slug[:1]) + slug[1:]
	data := SiteInfoData{Title: title, Body: content.SanitizeHTML(body)}
	if err := h.renderer.Render(w, r, "siteinfo", render.TemplateData{Title: title, Data: data}); err != nil {
		h.logger.Error("rendering siteinfo", "error", err)
	}
}
