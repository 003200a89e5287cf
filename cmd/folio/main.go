// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/olegiv/folio/internal/backend"
	"github.com/olegiv/folio/internal/cache"
	"github.com/olegiv/folio/internal/config"
	"github.com/olegiv/folio/internal/draft"
	"github.com/olegiv/folio/internal/handler"
	"github.com/olegiv/folio/internal/listing"
	"github.com/olegiv/folio/internal/logging"
	"github.com/olegiv/folio/internal/render"
	"github.com/olegiv/folio/internal/routes"
	"github.com/olegiv/folio/internal/session"
	"github.com/olegiv/folio/internal/store"
	"github.com/olegiv/folio/internal/typeahead"
	"github.com/olegiv/folio/internal/version"
	"github.com/olegiv/folio/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// eventLogRetention is how long event log rows are kept before the
// nightly prune drops them.
const eventLogRetention = 90 * 24 * time.Hour

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Folio - Content Front-End\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_SESSION_SECRET   Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_BACKEND_URL      Base URL of the content API (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_DB_PATH          SQLite database path (default: ./data/folio.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  FOLIO_REDIS_URL        Redis URL for distributed caching (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}
		_, _ = fmt.Printf("folio %s\n", info)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the event log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	// Session manager
	sessions := session.New(db, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	// Listing cache
	cacher := cache.New(cache.Config{
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      cfg.ListingTTL(),
		MaxEntries:      cfg.CacheMaxSize,
		CleanupInterval: time.Minute,
	}, logger)
	defer func() {
		if err := cacher.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()
	if cfg.UseRedisCache() {
		slog.Info("listing cache initialized", "backend", "redis", "url", cfg.RedisURL)
	} else {
		slog.Info("listing cache initialized", "backend", "memory")
	}

	// Content backend client and the listing service over it
	client := backend.New(cfg.BackendURL)
	listings := listing.New(client, cacher, cfg.ListingTTL(), logger)
	slog.Info("content backend configured", "url", cfg.BackendURL)

	// Template renderer
	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS: templatesFS,
		Sessions:    sessions,
		IsDev:       cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	slog.Info("template renderer initialized")

	// Draft storage and managers
	draftsStore := store.NewDrafts(db)
	drafts := draft.NewRegistry(draft.NewStore(draftsStore, cfg.DraftTTL()), cfg.AutosaveWindow(), logger)

	// Typeahead proxy
	lookups := typeahead.New(client, cfg.TypeaheadWindow(), logger)
	defer lookups.Cancel()

	// Path factory
	style := routes.PermalinkIDOnly
	if cfg.PermalinkWithTitle {
		style = routes.PermalinkWithTitle
	}
	paths := routes.NewFactory(style)

	// Scheduled maintenance: expired drafts hourly, old event log rows nightly
	sched := cron.New()
	events := store.NewEvents(db)
	if _, err := sched.AddFunc("@hourly", func() {
		if n := drafts.PruneIdle(time.Hour); n > 0 {
			slog.Info("pruned idle draft managers", "count", n)
		}
		n, err := draftsStore.PurgeExpired(context.Background())
		if err != nil {
			slog.Error("purging expired drafts", "error", err)
			return
		}
		if n > 0 {
			slog.Info("purged expired drafts", "count", n)
		}
	}); err != nil {
		return fmt.Errorf("scheduling draft purge: %w", err)
	}
	if _, err := sched.AddFunc("@midnight", func() {
		cutoff := time.Now().Add(-eventLogRetention)
		n, err := events.PruneBefore(context.Background(), cutoff)
		if err != nil {
			slog.Error("pruning event log", "error", err)
			return
		}
		if n > 0 {
			slog.Info("pruned event log", "count", n, "cutoff", cutoff)
		}
	}); err != nil {
		return fmt.Errorf("scheduling event log prune: %w", err)
	}
	sched.Start()
	defer sched.Stop()
	slog.Info("scheduler started", "jobs", len(sched.Entries()))

	// HTTP surface
	h := handler.New(cfg, logger, renderer, listings, client, paths, drafts, lookups, sessions)
	router := h.Router(handler.NewHealthHandler(db))

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
