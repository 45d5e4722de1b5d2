// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package websocket

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"

	"github.com/joseluisng17/producthunt-next-replic/internal/auth"
)

// fakeSubscriber sends initial on subscribe and lets tests push transitions.
type fakeSubscriber struct {
	initial *auth.User
	err     error

	mu        sync.Mutex
	sessionID string
	cb        func(*auth.User)
	released  chan struct{}
}

func newFakeSubscriber(initial *auth.User) *fakeSubscriber {
	return &fakeSubscriber{initial: initial, released: make(chan struct{})}
}

func (f *fakeSubscriber) SubscribeAuthState(ctx context.Context, sessionID string, cb func(*auth.User)) (auth.Unsubscribe, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	f.sessionID = sessionID
	f.cb = cb
	f.mu.Unlock()

	cb(f.initial)

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			f.cb = nil
			f.mu.Unlock()
			close(f.released)
		})
	}, nil
}

func (f *fakeSubscriber) emit(u *auth.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cb != nil {
		f.cb(u)
	}
}

func startServer(t *testing.T, sub AuthStateSubscriber) *websocket.Conn {
	t.Helper()
	h := NewAuthStateHandler(sub, func(r *http.Request) string {
		return r.URL.Query().Get("session")
	})
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?session=s1"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// readState reads one auth_state frame.
func readState(t *testing.T, conn *websocket.Conn) AuthState {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg struct {
		Type string    `json:"type"`
		Data AuthState `json:"data"`
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if msg.Type != MessageTypeAuthState {
		t.Fatalf("message type = %q, want %q", msg.Type, MessageTypeAuthState)
	}
	return msg.Data
}

func TestAuthStateHandler_StreamsTransitions(t *testing.T) {
	sub := newFakeSubscriber(&auth.User{ID: "u1", DisplayName: "Ana"})
	conn := startServer(t, sub)

	if diff := cmp.Diff(AuthState{Present: true, UserID: "u1", DisplayName: "Ana"}, readState(t, conn)); diff != "" {
		t.Errorf("initial state mismatch (-want +got):\n%s", diff)
	}

	sub.mu.Lock()
	sessionID := sub.sessionID
	sub.mu.Unlock()
	if sessionID != "s1" {
		t.Errorf("subscribed session = %q, want s1", sessionID)
	}

	sub.emit(nil)
	if diff := cmp.Diff(AuthState{Redirect: LoginPath}, readState(t, conn)); diff != "" {
		t.Errorf("logout state mismatch (-want +got):\n%s", diff)
	}
}

func TestAuthStateHandler_AnonymousGetsRedirect(t *testing.T) {
	conn := startServer(t, newFakeSubscriber(nil))

	got := readState(t, conn)
	if got.Present || got.Redirect != LoginPath {
		t.Errorf("state = %+v, want redirect to %s", got, LoginPath)
	}
}

func TestAuthStateHandler_ReleasesOnDisconnect(t *testing.T) {
	sub := newFakeSubscriber(&auth.User{ID: "u1"})
	conn := startServer(t, sub)
	readState(t, conn)

	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = conn.Close()

	select {
	case <-sub.released:
	case <-time.After(2 * time.Second):
		t.Fatal("subscription was not released after the page disconnected")
	}

	// Transitions after release are not delivered anywhere.
	sub.emit(nil)
}

func TestAuthStateHandler_PingPong(t *testing.T) {
	conn := startServer(t, newFakeSubscriber(&auth.User{ID: "u1"}))
	readState(t, conn)

	if err := conn.WriteJSON(Message{Type: MessageTypePing}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if msg.Type != MessageTypePong {
		t.Errorf("reply type = %q, want %q", msg.Type, MessageTypePong)
	}
}

func TestAuthStateHandler_SubscribeError(t *testing.T) {
	sub := newFakeSubscriber(nil)
	sub.err = errors.New("bus closed")
	conn := startServer(t, sub)

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	var closeErr *websocket.CloseError
	if !errors.As(err, &closeErr) || closeErr.Code != websocket.CloseInternalServerErr {
		t.Errorf("ReadMessage() error = %v, want close %d", err, websocket.CloseInternalServerErr)
	}
}

func TestAuthStateHandler_RejectsPlainHTTP(t *testing.T) {
	h := NewAuthStateHandler(newFakeSubscriber(nil), func(*http.Request) string { return "" })
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth/stream", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestClient_EnqueueDoesNotBlock(t *testing.T) {
	c := &Client{send: make(chan Message, 1)}
	if !c.enqueue(Message{Type: MessageTypePong}) {
		t.Error("first enqueue = false, want true")
	}
	if c.enqueue(Message{Type: MessageTypePong}) {
		t.Error("enqueue on a full buffer = true, want false")
	}
}
