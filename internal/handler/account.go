// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/url"

	"github.com/olegiv/folio/internal/session"
)

// Identity headers the fronting gateway forwards after authenticating a
// request against the backend.
const (
	headerUserID   = "X-Folio-User-ID"
	headerUserName = "X-Folio-User-Name"
)

// MirrorUser copies the gateway-authenticated identity into the session,
// so templates and the edit surface see the backend user without this app
// running a login flow of its own. Absent headers leave the session
// untouched; dropping the mirrored user is an explicit signout.
func (h *Handler) MirrorUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerUserID)
		if id != "" && id != h.sessions.UserID(r.Context()) {
			h.sessions.SetUser(r.Context(), id, r.Header.Get(headerUserName))
		}
		next.ServeHTTP(w, r)
	})
}

// ThemeUpdate records the visitor's theme choice and sends them back where
// they came from.
func (h *Handler) ThemeUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/articles", http.StatusSeeOther)
		return
	}
	theme := r.PostFormValue("theme")
	if theme != "light" && theme != "dark" {
		theme = session.DefaultTheme
	}
	h.sessions.SetTheme(r.Context(), theme)
	http.Redirect(w, r, refererPath(r), http.StatusSeeOther)
}

// SignOut drops the mirrored user from the session.
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearUser(r.Context())
	h.flashAndRedirect(w, r, refererPath(r), "Signed out", "info")
}

// refererPath returns the same-site path the request came from, or the
// default listing. Off-site referers never become redirect targets.
func refererPath(r *http.Request) string {
	ref := r.Header.Get("Referer")
	if ref == "" {
		return "/articles"
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != r.Host) {
		return "/articles"
	}
	if u.Path == "" {
		return "/articles"
	}
	return u.RequestURI()
}
