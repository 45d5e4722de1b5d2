// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gorilla "github.com/gorilla/websocket"

	"github.com/joseluisng17/producthunt-next-replic/internal/config"
	"github.com/joseluisng17/producthunt-next-replic/internal/websocket"
)

type streamFrame struct {
	Type string              `json:"type"`
	Data websocket.AuthState `json:"data"`
}

func dialStream(t *testing.T, env *testEnv, cookie *http.Cookie) *gorilla.Conn {
	t.Helper()
	server := httptest.NewServer(env.handler)
	t.Cleanup(server.Close)

	header := http.Header{}
	if cookie != nil {
		header.Set("Cookie", cookie.String())
	}
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/auth/stream"
	conn, resp, err := gorilla.DefaultDialer.Dial(url, header)
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *gorilla.Conn) websocket.AuthState {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var f streamFrame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if f.Type != websocket.MessageTypeAuthState {
		t.Fatalf("frame type = %q", f.Type)
	}
	return f.Data
}

func TestAuthStream_LogoutRedirects(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t)
	conn := dialStream(t, env, cookie)

	if got := readFrame(t, conn); !got.Present || got.DisplayName != "Ana" {
		t.Fatalf("initial frame = %+v, want Ana signed in", got)
	}

	if err := env.auth.Logout(context.Background(), cookie.Value); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if got := readFrame(t, conn); got.Present || got.Redirect != "/login" {
		t.Errorf("frame after logout = %+v, want redirect to /login", got)
	}
}

func TestAuthStream_Anonymous(t *testing.T) {
	env := newTestEnv(t)
	conn := dialStream(t, env, nil)

	if got := readFrame(t, conn); got.Present || got.Redirect != "/login" {
		t.Errorf("frame = %+v, want redirect to /login", got)
	}
}

func TestAuthStream_Unavailable(t *testing.T) {
	env := newTestEnv(t, func(_ *config.Config, d *Dependencies) { d.Auth = nil })

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/v1/auth/stream", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}
