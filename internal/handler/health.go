// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"
	"time"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	db        *sql.DB
	startTime time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db, startTime: time.Now()}
}

// healthStatus is the health response body.
type healthStatus struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

// Health reports liveness: the process is up and the database answers.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if err := h.db.PingContext(r.Context()); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, healthStatus{
		Status: status,
		Uptime: time.Since(h.startTime).Round(time.Second).String(),
	})
}
