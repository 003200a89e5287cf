// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session wraps the SQLite-backed session manager with typed
// accessors for the values the site keeps per visitor: the mirrored
// backend user and the theme choice.
package session

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
)

// Session value keys.
const (
	keyUserID    = "user_id"
	keyUsername  = "username"
	keyTheme     = "theme"
	keyVisitorID = "visitor_id"
)

// DefaultTheme is used when the visitor has not picked one.
const DefaultTheme = "light"

// Manager is the session manager with site-specific accessors.
type Manager struct {
	*scs.SessionManager
}

// New creates a session manager over the SQLite sessions table.
func New(db *sql.DB, isDev bool) *Manager {
	sm := scs.New()
	sm.Store = sqlite3store.New(db)
	sm.Lifetime = 24 * time.Hour
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev // Secure cookies in production only
	return &Manager{SessionManager: sm}
}

// SetUser records the backend user the session mirrors.
func (m *Manager) SetUser(ctx context.Context, id, username string) {
	m.Put(ctx, keyUserID, id)
	m.Put(ctx, keyUsername, username)
}

// UserID returns the mirrored backend user id, or "" for anonymous
// visitors.
func (m *Manager) UserID(ctx context.Context) string {
	return m.GetString(ctx, keyUserID)
}

// Username returns the mirrored backend username.
func (m *Manager) Username(ctx context.Context) string {
	return m.GetString(ctx, keyUsername)
}

// ClearUser drops the mirrored user from the session.
func (m *Manager) ClearUser(ctx context.Context) {
	m.Remove(ctx, keyUserID)
	m.Remove(ctx, keyUsername)
}

// Theme returns the visitor's theme choice.
func (m *Manager) Theme(ctx context.Context) string {
	if t := m.GetString(ctx, keyTheme); t != "" {
		return t
	}
	return DefaultTheme
}

// SetTheme records the visitor's theme choice.
func (m *Manager) SetTheme(ctx context.Context, theme string) {
	m.Put(ctx, keyTheme, theme)
}

// VisitorID returns a stable anonymous identity for the session, minting
// one on first use. Unlike the session token it survives the token
// rotation scs performs on privilege changes.
func (m *Manager) VisitorID(ctx context.Context) string {
	if id := m.GetString(ctx, keyVisitorID); id != "" {
		return id
	}
	id := uuid.NewString()
	m.Put(ctx, keyVisitorID, id)
	return id
}
