// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/joseluisng17/producthunt-next-replic/internal/events"
	"github.com/joseluisng17/producthunt-next-replic/internal/logging"
	"github.com/joseluisng17/producthunt-next-replic/internal/metrics"
)

// Unsubscribe releases an auth-state subscription. When it returns the
// callback will not be called again. Safe to call more than once.
type Unsubscribe func()

// SubscribeAuthState calls cb with the current user of sessionID (nil when
// absent) before returning, then again on every transition of that session.
// The subscription ends when Unsubscribe is called or ctx is done.
func (s *Service) SubscribeAuthState(ctx context.Context, sessionID string, cb func(*User)) (Unsubscribe, error) {
	if cb == nil {
		return nil, errors.New("auth state callback is required")
	}
	if s.bus == nil {
		return nil, errors.New("auth state needs an event bus")
	}

	subCtx, cancel := context.WithCancel(ctx)

	// Subscribe before reading the current state so no transition in
	// between is lost.
	msgs, err := s.bus.Subscribe(subCtx, events.TopicAuthState)
	if err != nil {
		cancel()
		return nil, err
	}
	current, err := s.CurrentUser(subCtx, sessionID)
	if err != nil {
		cancel()
		return nil, err
	}

	metrics.TrackAuthSubscription(true)
	cb(current)

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer metrics.TrackAuthSubscription(false)

		for msg := range msgs {
			ev, err := events.DecodeAuthState(msg)
			msg.Ack()
			if err != nil {
				logging.Ctx(subCtx).Warn().Err(err).Msg("Dropping malformed auth state event")
				continue
			}
			if ev.SessionID != sessionID || sessionID == "" {
				continue
			}
			metrics.RecordEventConsumed(events.TopicAuthState)
			if subCtx.Err() != nil {
				return
			}
			if ev.Present {
				cb(&User{ID: ev.UserID, DisplayName: ev.DisplayName, Email: ev.Email})
			} else {
				cb(nil)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}, nil
}
