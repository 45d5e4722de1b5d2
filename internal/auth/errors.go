// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package auth

import "errors"

var (
	// ErrInvalidCredentials is returned when the password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound is returned when no account has the given email.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserExists is returned by UserStore.Create for a taken email.
	ErrUserExists = errors.New("user already exists")

	// ErrSessionNotFound is returned when a session is not in the store.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExpired is returned when the session exists but has expired.
	ErrSessionExpired = errors.New("session expired")
)

// LoginMessage returns the form-level message shown for a failed login.
func LoginMessage(err error) string {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return "No existe un usuario con ese email"
	case errors.Is(err, ErrInvalidCredentials):
		return "El password es incorrecto"
	default:
		return "Hubo un error al iniciar sesión, intenta de nuevo"
	}
}
