// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package auth

import (
	"context"
	"time"
)

type contextKey string

// AuthSubjectContextKey holds the *AuthSubject set by SessionMiddleware.
const AuthSubjectContextKey contextKey = "auth_subject"

// AuthSubject is the authenticated user of a request.
type AuthSubject struct {
	UserID      string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email,omitempty"`

	// SessionID is the session that authenticated the request.
	SessionID string `json:"-"`

	// ExpiresAt is the session expiry as Unix seconds.
	ExpiresAt int64 `json:"expires_at,omitempty"`
}

// IsExpired checks if the session behind the subject has expired.
func (s *AuthSubject) IsExpired() bool {
	if s.ExpiresAt == 0 {
		return false
	}
	return time.Now().Unix() > s.ExpiresAt
}

// User returns the subject as a User.
func (s *AuthSubject) User() *User {
	return &User{ID: s.UserID, DisplayName: s.DisplayName, Email: s.Email}
}

// ContextWithAuthSubject returns ctx carrying subject.
func ContextWithAuthSubject(ctx context.Context, subject *AuthSubject) context.Context {
	return context.WithValue(ctx, AuthSubjectContextKey, subject)
}

// GetAuthSubject returns the request's subject, or nil when anonymous.
func GetAuthSubject(ctx context.Context) *AuthSubject {
	subject, ok := ctx.Value(AuthSubjectContextKey).(*AuthSubject)
	if !ok {
		return nil
	}
	return subject
}
