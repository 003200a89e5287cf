// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"os"
	"testing"
	"time"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func setRequired(t *testing.T) {
	t.Helper()
	setEnv(t, "FOLIO_SESSION_SECRET", "test-secret-key-32-bytes-long!!!")
	setEnv(t, "FOLIO_BACKEND_URL", "http://backend:8080/")
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "./data/folio.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.ServerAddr() != "localhost:8080" {
		t.Errorf("ServerAddr = %q", cfg.ServerAddr())
	}
	if !cfg.IsDevelopment() {
		t.Error("default env must be development")
	}
	if cfg.BackendURL != "http://backend:8080" {
		t.Errorf("BackendURL = %q, want trailing slash trimmed", cfg.BackendURL)
	}
	if cfg.DraftTTL() != 7*24*time.Hour {
		t.Errorf("DraftTTL = %v", cfg.DraftTTL())
	}
	if cfg.AutosaveWindow() != 3*time.Second {
		t.Errorf("AutosaveWindow = %v", cfg.AutosaveWindow())
	}
	if cfg.TypeaheadWindow() != 400*time.Millisecond {
		t.Errorf("TypeaheadWindow = %v", cfg.TypeaheadWindow())
	}
	if !cfg.PermalinkWithTitle {
		t.Error("permalinks default to carrying the title")
	}
	if cfg.UseRedisCache() {
		t.Error("redis must be off without FOLIO_REDIS_URL")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	setRequired(t)
	setEnv(t, "FOLIO_SERVER_PORT", "3000")
	setEnv(t, "FOLIO_ENV", "production")
	setEnv(t, "FOLIO_REDIS_URL", "redis://localhost:6379/0")
	setEnv(t, "FOLIO_CACHE_TTL", "120")
	setEnv(t, "FOLIO_DRAFT_TTL_DAYS", "3")
	setEnv(t, "FOLIO_PERMALINK_WITH_TITLE", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.ServerPort != 3000 || cfg.IsDevelopment() {
		t.Errorf("cfg = %+v", cfg)
	}
	if !cfg.UseRedisCache() {
		t.Error("redis must be on")
	}
	if cfg.ListingTTL() != 2*time.Minute {
		t.Errorf("ListingTTL = %v", cfg.ListingTTL())
	}
	if cfg.DraftTTL() != 3*24*time.Hour {
		t.Errorf("DraftTTL = %v", cfg.DraftTTL())
	}
	if cfg.PermalinkWithTitle {
		t.Error("permalink override not applied")
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	os.Clearenv()
	setEnv(t, "FOLIO_BACKEND_URL", "http://backend:8080")

	if _, err := Load(); err == nil {
		t.Error("missing session secret must fail")
	}
}

func TestLoad_ShortSecret(t *testing.T) {
	os.Clearenv()
	setEnv(t, "FOLIO_SESSION_SECRET", "too-short")
	setEnv(t, "FOLIO_BACKEND_URL", "http://backend:8080")

	if _, err := Load(); err == nil {
		t.Error("short session secret must fail")
	}
}

func TestLoad_WeakSecret(t *testing.T) {
	os.Clearenv()
	setEnv(t, "FOLIO_SESSION_SECRET", "change-me-to-32-byte-secret-key!")
	setEnv(t, "FOLIO_BACKEND_URL", "http://backend:8080")

	if _, err := Load(); err == nil {
		t.Error("known weak secret must fail")
	}
}
