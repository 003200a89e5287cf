// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/folio/internal/middleware"
	"github.com/olegiv/folio/web"
)

// requestTimeout bounds one request end to end.
const requestTimeout = 30 * time.Second

// staticMaxAge is the Cache-Control lifetime of embedded static assets.
const staticMaxAge = 86400

// Router assembles the site router: middleware stack, pages, and the
// JSON APIs the write form talks to.
func (h *Handler) Router(health *HealthHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(h.sessions.LoadAndSave)
	r.Use(h.MirrorUser)
	r.Use(middleware.CSRF(middleware.DefaultCSRFConfig([]byte(h.cfg.SessionSecret), h.cfg.IsDevelopment())))

	r.Get("/health", health.Health)

	staticFS, _ := fs.Sub(web.Static, "static")
	r.With(middleware.StaticCache(staticMaxAge)).
		Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/articles", http.StatusFound)
	})

	r.Route("/{type:articles|quotes}", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/write", h.WriteNew)
		r.Post("/write", h.WriteSubmit)
		r.Get("/{id}", h.Detail)
		r.Get("/{id}/edit", h.WriteEdit)
		r.Post("/{id}/edit", h.WriteUpdate)
		r.Get("/{id}/{urlTitle}", h.Detail)
	})

	r.Get("/tags/{tag}", h.TagList)
	r.Get("/tags/{tag}/{slug}", h.TagList)
	r.Get("/siteinfo/{key}", h.SiteInfo)

	r.Post("/theme", h.ThemeUpdate)
	r.Post("/signout", h.SignOut)

	r.Route("/api", func(r chi.Router) {
		limiter := middleware.NewRateLimiter(float64(h.cfg.TypeaheadPerSec), h.cfg.TypeaheadPerSec*2)

		r.Group(func(r chi.Router) {
			r.Use(limiter.Middleware())
			r.Get("/{type:articles|quotes}/similar", h.SimilarTitles)
			r.Get("/quote-authors/similar", h.SimilarAuthors)
			r.Get("/quote-pieces/similar", h.SimilarPieces)
		})

		r.Route("/drafts/{type:articles|quotes}", func(r chi.Router) {
			r.Get("/", h.DraftState)
			r.Post("/", h.DraftSave)
			r.Post("/discard", h.DraftDiscard)
		})
	})

	r.NotFound(h.renderMissing)

	return r
}
