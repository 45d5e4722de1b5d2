// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/joseluisng17/producthunt-next-replic/internal/auth"
	"github.com/joseluisng17/producthunt-next-replic/internal/logging"
)

// readyTimeout bounds the database ping of the readiness probe.
const readyTimeout = 2 * time.Second

// HealthLive handles liveness probe requests.
// Returns 200 OK if the process is alive, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests.
// Returns 200 OK only if the database answers, 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if h.db == nil {
		rw.ServiceUnavailable("Database not configured")
		return
	}
	if err := h.db.Ping(ctx); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Readiness check failed")
		rw.ServiceUnavailable("Database unavailable")
		return
	}

	rw.Success(map[string]interface{}{
		"ready":              true,
		"database_connected": true,
	})
}

// UserInfo returns the session user. Mounted behind RequireAuthMiddleware.
func (h *Handler) UserInfo(w http.ResponseWriter, r *http.Request) {
	subject := auth.GetAuthSubject(r.Context())
	if subject == nil {
		NewResponseWriter(w, r).Unauthorized("Inicia sesión para continuar")
		return
	}
	NewResponseWriter(w, r).Success(subject)
}

// AuthStream upgrades to a WebSocket that pushes the session's auth state
// while the page stays open.
func (h *Handler) AuthStream(w http.ResponseWriter, r *http.Request) {
	if h.authStream == nil {
		NewResponseWriter(w, r).ServiceUnavailable("Estado de sesión no disponible")
		return
	}
	h.authStream.ServeHTTP(w, r)
}
