// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/folio/internal/model"
)

// deliveryGrace is how long past the debounce window a lookup may take
// before the request is treated as superseded.
const deliveryGrace = 5 * time.Second

// SimilarTitles proxies the similar-title lookup. Requests landing inside
// one debounce window supersede each other; a superseded request answers
// 204 and the survivor carries the suggestions.
func (h *Handler) SimilarTitles(w http.ResponseWriter, r *http.Request) {
	typ, ok := contentType(chi.URLParam(r, "type"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown content type"})
		return
	}
	title := r.URL.Query().Get("title")

	ch := make(chan []model.SimilarItem, 1)
	h.lookups.SimilarTitles(typ, title, func(items []model.SimilarItem) {
		select {
		case ch <- items:
		default:
		}
	})
	h.awaitSimilar(w, r, ch)
}

// SimilarAuthors proxies the quote-author suggestion lookup.
func (h *Handler) SimilarAuthors(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("title")
	ch := make(chan []model.NameRef, 1)
	h.lookups.Authors(name, func(refs []model.NameRef) {
		select {
		case ch <- refs:
		default:
		}
	})
	h.awaitRefs(w, r, ch)
}

// SimilarPieces proxies the quote-piece suggestion lookup.
func (h *Handler) SimilarPieces(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("title")
	ch := make(chan []model.NameRef, 1)
	h.lookups.Pieces(name, func(refs []model.NameRef) {
		select {
		case ch <- refs:
		default:
		}
	})
	h.awaitRefs(w, r, ch)
}

func (h *Handler) awaitSimilar(w http.ResponseWriter, r *http.Request, ch <-chan []model.SimilarItem) {
	select {
	case items := <-ch:
		if items == nil {
			items = []model.SimilarItem{}
		}
		writeJSON(w, http.StatusOK, items)
	case <-time.After(h.cfg.TypeaheadWindow() + deliveryGrace):
		w.WriteHeader(http.StatusNoContent)
	case <-r.Context().Done():
	}
}

func (h *Handler) awaitRefs(w http.ResponseWriter, r *http.Request, ch <-chan []model.NameRef) {
	select {
	case refs := <-ch:
		if refs == nil {
			refs = []model.NameRef{}
		}
		writeJSON(w, http.StatusOK, refs)
	case <-time.After(h.cfg.TypeaheadWindow() + deliveryGrace):
		w.WriteHeader(http.StatusNoContent)
	case <-r.Context().Done():
	}
}
