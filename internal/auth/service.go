// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joseluisng17/producthunt-next-replic/internal/events"
	"github.com/joseluisng17/producthunt-next-replic/internal/logging"
	"github.com/joseluisng17/producthunt-next-replic/internal/metrics"
)

// Reasons carried by auth.state events.
const (
	ReasonLogin   = "login"
	ReasonLogout  = "logout"
	ReasonExpired = "expired"
)

// Credentials checks an email and password pair.
type Credentials interface {
	Authenticate(ctx context.Context, email, password string) (*User, error)
}

// ServiceConfig configures a Service.
type ServiceConfig struct {
	SessionTTL time.Duration
}

// Service creates and ends sessions and streams their state.
type Service struct {
	users    Credentials
	sessions SessionStore
	bus      *events.Bus
	ttl      time.Duration
}

// NewService creates a Service.
func NewService(users Credentials, sessions SessionStore, bus *events.Bus, cfg ServiceConfig) *Service {
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{users: users, sessions: sessions, bus: bus, ttl: ttl}
}

// Login checks the credentials and creates a session.
// Returns ErrUserNotFound or ErrInvalidCredentials when they do not match.
func (s *Service) Login(ctx context.Context, email, password string) (*User, *Session, error) {
	user, err := s.users.Authenticate(ctx, email, password)
	if err != nil {
		metrics.RecordLoginAttempt(false)
		logging.Ctx(ctx).Info().Err(err).Msg("Login rejected")
		return nil, nil, err
	}

	session := NewSession(user, s.ttl)
	if err := s.sessions.Create(ctx, session); err != nil {
		metrics.RecordLoginAttempt(false)
		return nil, nil, fmt.Errorf("create session: %w", err)
	}
	metrics.RecordLoginAttempt(true)

	s.publish(ctx, &events.AuthStateEvent{
		SessionID:   session.ID,
		Present:     true,
		UserID:      user.ID,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		Reason:      ReasonLogin,
	})
	logging.Ctx(ctx).Info().Str("user_id", user.ID).Msg("User logged in")
	return user, session, nil
}

// Logout ends a session. Unknown sessions are not an error.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.publish(ctx, &events.AuthStateEvent{SessionID: sessionID, Reason: ReasonLogout})
	return nil
}

// CurrentUser returns the user behind sessionID, or nil when the session is
// missing or expired.
func (s *Service) CurrentUser(ctx context.Context, sessionID string) (*User, error) {
	if sessionID == "" {
		return nil, nil
	}
	session, err := s.sessions.Get(ctx, sessionID)
	if errors.Is(err, ErrSessionNotFound) || errors.Is(err, ErrSessionExpired) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return session.User(), nil
}

// CleanupExpired removes expired sessions and publishes their end.
func (s *Service) CleanupExpired(ctx context.Context) (int, error) {
	removed, err := s.sessions.CleanupExpired(ctx)
	for _, session := range removed {
		s.publish(ctx, &events.AuthStateEvent{SessionID: session.ID, Reason: ReasonExpired})
	}
	metrics.RecordSessionsExpired(len(removed))
	if err != nil {
		return len(removed), fmt.Errorf("cleanup sessions: %w", err)
	}
	return len(removed), nil
}

// publish sends an auth.state event. Delivery failures are logged, not returned.
func (s *Service) publish(ctx context.Context, ev *events.AuthStateEvent) {
	if s.bus == nil {
		return
	}
	ev.SchemaVersion = events.SchemaVersion
	ev.Timestamp = time.Now().UTC()
	if err := s.bus.Publish(ctx, events.TopicAuthState, ev); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("session_id", ev.SessionID).
			Str("reason", ev.Reason).Msg("Failed to publish auth state")
	}
}
