// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler wires the HTTP surface: listing and detail pages, the
// write forms with their draft lifecycle, the draft and typeahead APIs,
// and the site info pages.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/olegiv/folio/internal/backend"
	"github.com/olegiv/folio/internal/config"
	"github.com/olegiv/folio/internal/draft"
	"github.com/olegiv/folio/internal/listing"
	"github.com/olegiv/folio/internal/model"
	"github.com/olegiv/folio/internal/render"
	"github.com/olegiv/folio/internal/routes"
	"github.com/olegiv/folio/internal/session"
	"github.com/olegiv/folio/internal/typeahead"
)

// Handler carries the dependencies of every HTTP handler.
type Handler struct {
	cfg      *config.Config
	logger   *slog.Logger
	renderer *render.Renderer
	listings *listing.Service
	client   *backend.Client
	paths    *routes.Factory
	drafts   *draft.Registry
	lookups  *typeahead.Service
	sessions *session.Manager
}

// New creates the handler set.
func New(cfg *config.Config, logger *slog.Logger, renderer *render.Renderer,
	listings *listing.Service, client *backend.Client, paths *routes.Factory,
	drafts *draft.Registry, lookups *typeahead.Service, sessions *session.Manager) *Handler {
	return &Handler{
		cfg:      cfg,
		logger:   logger,
		renderer: renderer,
		listings: listings,
		client:   client,
		paths:    paths,
		drafts:   drafts,
		lookups:  lookups,
		sessions: sessions,
	}
}

// draftOwner identifies whose draft a write form belongs to: the mirrored
// backend user when present, otherwise a stable anonymous visitor id.
func (h *Handler) draftOwner(r *http.Request) string {
	ctx := r.Context()
	if id := h.sessions.UserID(ctx); id != "" {
		return id
	}
	return "visitor:" + h.sessions.VisitorID(ctx)
}

// contentType resolves the {type} pattern segment chi matched.
func contentType(segment string) (model.ContentType, bool) {
	switch segment {
	case "articles":
		return model.TypeArticle, true
	case "quotes":
		return model.TypeQuote, true
	default:
		return "", false
	}
}

// parseTags splits the comma-separated tag input into tag refs.
func parseTags(input string) []model.Tag {
	var tags []model.Tag
	for _, part := range strings.Split(input, ",") {
		slug := strings.TrimSpace(part)
		if slug == "" {
			continue
		}
		tags = append(tags, model.Tag{SlugName: slug})
	}
	return tags
}

// tagInput renders the tag set back into the comma-separated form value.
func tagInput(tags []model.Tag) string {
	slugs := make([]string, 0, len(tags))
	for _, t := range tags {
		slugs = append(slugs, t.SlugName)
	}
	return strings.Join(slugs, ", ")
}

// writeJSON writes a JSON response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// flashAndRedirect sets a flash message and redirects to the given URL.
func (h *Handler) flashAndRedirect(w http.ResponseWriter, r *http.Request, url, message, messageType string) {
	h.renderer.SetFlash(r, message, messageType)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// renderError logs the failure and renders the error page.
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, logMsg string, args ...any) {
	h.logger.Error(logMsg, args...)
	w.WriteHeader(http.StatusInternalServerError)
	if err := h.renderer.Render(w, r, "error", render.TemplateData{
		Title: "Error",
		Data:  "The backend did not respond. Please try again.",
	}); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// renderMissing renders the 404 page.
func (h *Handler) renderMissing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	if err := h.renderer.Render(w, r, "missing", render.TemplateData{Title: "Not found"}); err != nil {
		http.Error(w, "Not Found", http.StatusNotFound)
	}
}
