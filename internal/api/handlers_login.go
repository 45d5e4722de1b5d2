// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package api

import (
	"errors"
	"net/http"

	"github.com/joseluisng17/producthunt-next-replic/internal/auth"
	"github.com/joseluisng17/producthunt-next-replic/internal/forms"
	"github.com/joseluisng17/producthunt-next-replic/internal/logging"
	"github.com/joseluisng17/producthunt-next-replic/internal/login"
	"github.com/joseluisng17/producthunt-next-replic/internal/navigation"
)

// LoginPage returns the empty login form.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	wf := login.New(h.auth, &navigation.Recorder{})
	NewResponseWriter(w, r).Success(formState(login.FormName, wf.Engine()))
}

// Login submits the login form. On success the session cookie is set and
// the client is sent home with 303; an earlier session of the same browser
// is ended.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		rw.BadRequest("Formulario inválido")
		return
	}

	redirect := &navigation.Redirect{}
	wf := login.New(h.auth, redirect)
	applyValues(wf.Engine(), r.PostForm)

	err := wf.Submit(ctx, formPost{})
	state := formState(login.FormName, wf.Engine())
	switch {
	case errors.Is(err, forms.ErrInvalid):
		rw.ValidationError("El formulario tiene errores", state)
		return
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, auth.ErrInvalidCredentials):
		rw.ErrorWithDetails(http.StatusUnauthorized, ErrCodeUnauthorized, state.FormError, state)
		return
	case err != nil:
		logging.Ctx(ctx).Error().Err(err).Msg("Login failed")
		rw.ErrorWithDetails(http.StatusInternalServerError, ErrCodeInternalError, state.FormError, state)
		return
	}

	session := wf.Session()
	if previous := h.sessions.SessionID(r); previous != "" && previous != session.ID {
		if err := h.auth.Logout(ctx, previous); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("Failed to end previous session")
		}
	}
	h.sessions.SetSessionCookie(w, session.ID)
	redirect.Write(w, r)
}

// Logout ends the current session, clears the cookie and redirects home.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.auth.Logout(ctx, h.sessions.SessionID(r)); err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("Logout failed")
		NewResponseWriter(w, r).InternalError("Hubo un error al cerrar sesión")
		return
	}
	h.sessions.ClearSessionCookie(w)
	http.Redirect(w, r, navigation.PathHome, http.StatusSeeOther)
}
