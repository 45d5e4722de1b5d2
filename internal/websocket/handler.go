// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package websocket

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/joseluisng17/producthunt-next-replic/internal/auth"
	"github.com/joseluisng17/producthunt-next-replic/internal/logging"
)

// LoginPath is where a page is sent once its session is gone.
const LoginPath = "/login"

// AuthStateSubscriber is satisfied by *auth.Service.
type AuthStateSubscriber interface {
	SubscribeAuthState(ctx context.Context, sessionID string, cb func(*auth.User)) (auth.Unsubscribe, error)
}

// SessionIDFunc extracts the session ID of a request, "" when there is none.
type SessionIDFunc func(r *http.Request) string

// AuthState is the payload of an auth_state message. Redirect is set when
// the page must leave because nobody is signed in.
type AuthState struct {
	Present     bool   `json:"present"`
	UserID      string `json:"user_id,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Redirect    string `json:"redirect,omitempty"`
}

func authStateMessage(u *auth.User) Message {
	if u == nil {
		return Message{Type: MessageTypeAuthState, Data: AuthState{Redirect: LoginPath}}
	}
	return Message{Type: MessageTypeAuthState, Data: AuthState{
		Present:     true,
		UserID:      u.ID,
		DisplayName: u.DisplayName,
	}}
}

// AuthStateHandler streams the auth state of the caller's session over a
// WebSocket for as long as the page keeps it open. The current state is sent
// first, then every login, logout and expiry of that session.
type AuthStateHandler struct {
	subscriber AuthStateSubscriber
	sessionID  SessionIDFunc
	upgrader   websocket.Upgrader
}

// NewAuthStateHandler creates the handler. Cross-origin upgrades are refused.
func NewAuthStateHandler(subscriber AuthStateSubscriber, sessionID SessionIDFunc) *AuthStateHandler {
	return &AuthStateHandler{
		subscriber: subscriber,
		sessionID:  sessionID,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// ServeHTTP upgrades the request and blocks until the browser disconnects.
// The subscription is released before it returns.
func (h *AuthStateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.Ctx(r.Context()).With().Str("component", "auth-stream").Logger()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		logger.Debug().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	c := newClient(conn, logger)
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	unsubscribe, err := h.subscriber.SubscribeAuthState(ctx, h.sessionID(r), func(u *auth.User) {
		if !c.enqueue(authStateMessage(u)) {
			logger.Warn().Msg("Auth stream client is not reading, dropping update")
		}
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to subscribe to auth state")
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "auth state unavailable"))
		_ = conn.Close()
		return
	}

	logger.Debug().Msg("Auth stream opened")
	go c.writePump()
	c.readPump()

	unsubscribe()
	close(c.send)
	logger.Debug().Msg("Auth stream closed")
}
