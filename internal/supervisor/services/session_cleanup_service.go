// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/joseluisng17/producthunt-next-replic/internal/logging"
)

// DefaultCleanupInterval is used when no interval is configured.
const DefaultCleanupInterval = 5 * time.Minute

// SessionCleaner removes expired sessions. Satisfied by *auth.Service.
type SessionCleaner interface {
	CleanupExpired(ctx context.Context) (int, error)
}

// SessionCleanupService sweeps expired sessions on a fixed interval.
type SessionCleanupService struct {
	cleaner  SessionCleaner
	interval time.Duration
	logger   zerolog.Logger
}

// NewSessionCleanupService creates the sweeper. A non-positive interval
// means DefaultCleanupInterval.
func NewSessionCleanupService(cleaner SessionCleaner, interval time.Duration) *SessionCleanupService {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	return &SessionCleanupService{
		cleaner:  cleaner,
		interval: interval,
		logger:   logging.WithComponent("session-cleanup"),
	}
}

// Serve implements suture.Service. Sweep errors are logged, never returned.
func (s *SessionCleanupService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", s.interval).Msg("Session cleanup started")
	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Session cleanup stopped")
			return ctx.Err()
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *SessionCleanupService) sweep(ctx context.Context) {
	removed, err := s.cleaner.CleanupExpired(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Int("removed", removed).Msg("Session cleanup failed")
		return
	}
	if removed > 0 {
		s.logger.Debug().Int("removed", removed).Msg("Expired sessions removed")
	}
}

// String implements fmt.Stringer.
func (s *SessionCleanupService) String() string {
	return "session-cleanup"
}
