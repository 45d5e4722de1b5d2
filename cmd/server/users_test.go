// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/joseluisng17/producthunt-next-replic/internal/auth"
	"github.com/joseluisng17/producthunt-next-replic/internal/database"
)

func newTestUserStore(t *testing.T) *auth.UserStore {
	t.Helper()
	db, err := database.OpenBadger("", true)
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return auth.NewUserStore(db.Badger(), auth.UserStoreConfig{BcryptCost: bcrypt.MinCost})
}

func TestAddUser(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		display  string
		password string
		wantErr  string
		wantOut  string
	}{
		{"valid", "ana@example.com", "Ana", "kA9#mzq2", "", "Created user ana@example.com (Ana)"},
		{"name from email", "luis@example.com", "", "kA9#mzq2", "", "(luis)"},
		{"short password", "ana@example.com", "Ana", "abc", "at least 6 characters", ""},
		{"common password", "ana@example.com", "Ana", "password", "too common", ""},
		{"password like email", "ana@example.com", "Ana", "ana@example.com", "similar to the email", ""},
		{"missing email", "  ", "Ana", "kA9#mzq2", "--email is required", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := newTestUserStore(t)
			var out bytes.Buffer

			err := addUser(context.Background(), users, &out, tt.email, tt.display, tt.password)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("addUser() error = %v, want error containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("addUser() error = %v", err)
			}
			if !strings.Contains(out.String(), tt.wantOut) {
				t.Errorf("output = %q, want it to contain %q", out.String(), tt.wantOut)
			}
		})
	}
}

func TestAddUser_Duplicate(t *testing.T) {
	users := newTestUserStore(t)
	ctx := context.Background()
	var out bytes.Buffer

	if err := addUser(ctx, users, &out, "ana@example.com", "Ana", "kA9#mzq2"); err != nil {
		t.Fatalf("first addUser() error = %v", err)
	}
	if err := addUser(ctx, users, &out, "ANA@example.com", "Ana", "kA9#mzq2"); err == nil {
		t.Error("second addUser() with the same email should fail")
	}
}

func TestListUsers(t *testing.T) {
	users := newTestUserStore(t)
	ctx := context.Background()

	var out bytes.Buffer
	if err := listUsers(ctx, users, &out); err != nil {
		t.Fatalf("listUsers() error = %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "No users" {
		t.Errorf("empty listing = %q, want %q", got, "No users")
	}

	for _, email := range []string{"luis@example.com", "ana@example.com"} {
		if _, err := users.Create(ctx, email, "", "kA9#mzq2"); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	out.Reset()
	if err := listUsers(ctx, users, &out); err != nil {
		t.Fatalf("listUsers() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want header plus 2 (output %q)", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "EMAIL") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "ana@example.com") || !strings.HasPrefix(lines[2], "luis@example.com") {
		t.Errorf("rows not ordered by email: %q", lines[1:])
	}
}
