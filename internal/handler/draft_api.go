// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// draftStatus is the draft API response body.
type draftStatus struct {
	State string `json:"state"`
	Guard bool   `json:"guard"`
}

// DraftState answers the navigation-guard probe for the create form.
func (h *Handler) DraftState(w http.ResponseWriter, r *http.Request) {
	typ, ok := contentType(chi.URLParam(r, "type"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown content type"})
		return
	}
	m := h.drafts.Create(r.Context(), typ, h.draftOwner(r))
	writeJSON(w, http.StatusOK, draftStatus{State: m.State().String(), Guard: m.Guard()})
}

// DraftSave is the autosave endpoint: the form posts its current fields,
// the manager recomputes dirtiness and debounces the store write.
func (h *Handler) DraftSave(w http.ResponseWriter, r *http.Request) {
	typ, ok := contentType(chi.URLParam(r, "type"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown content type"})
		return
	}
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid form data"})
		return
	}

	m := h.drafts.Create(r.Context(), typ, h.draftOwner(r))
	applyPostedFields(m, r, typ)
	writeJSON(w, http.StatusOK, draftStatus{State: m.State().String(), Guard: m.Guard()})
}

// DraftDiscard drops the draft, its stored copy, and the open manager.
func (h *Handler) DraftDiscard(w http.ResponseWriter, r *http.Request) {
	typ, ok := contentType(chi.URLParam(r, "type"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown content type"})
		return
	}
	owner := h.draftOwner(r)
	m := h.drafts.Create(r.Context(), typ, owner)
	m.Discard()
	status := draftStatus{State: m.State().String(), Guard: m.Guard()}
	h.drafts.Release(typ, owner)
	writeJSON(w, http.StatusOK, status)
}
