// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package auth

import (
	"context"
	"errors"
	"testing"
)

func TestUserStore_CreateAndAuthenticate(t *testing.T) {
	store := newTestUserStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "  Ana@Example.com ", "Ana", "secreto1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.Email != "ana@example.com" {
		t.Errorf("Email = %q, want normalized address", created.Email)
	}
	if created.ID == "" {
		t.Error("ID is empty")
	}

	got, err := store.Authenticate(ctx, "ANA@example.com", "secreto1")
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if got.ID != created.ID || got.DisplayName != "Ana" {
		t.Errorf("Authenticate() = %+v, want %+v", got, created)
	}
}

func TestUserStore_AuthenticateFailures(t *testing.T) {
	store := newTestUserStore(t)
	ctx := context.Background()
	if _, err := store.Create(ctx, "ana@example.com", "Ana", "secreto1"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"unknown email", "bob@example.com", "secreto1", ErrUserNotFound},
		{"wrong password", "ana@example.com", "otro-pass", ErrInvalidCredentials},
		{"empty password", "ana@example.com", "", ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.Authenticate(ctx, tt.email, tt.password); !errors.Is(err, tt.wantErr) {
				t.Errorf("Authenticate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUserStore_DuplicateEmail(t *testing.T) {
	store := newTestUserStore(t)
	ctx := context.Background()
	if _, err := store.Create(ctx, "ana@example.com", "Ana", "secreto1"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Create(ctx, "ANA@example.com", "Otra", "secreto2"); !errors.Is(err, ErrUserExists) {
		t.Errorf("Create(duplicate) error = %v, want %v", err, ErrUserExists)
	}
}

func TestUserStore_GetAndList(t *testing.T) {
	store := newTestUserStore(t)
	ctx := context.Background()

	b, _ := store.Create(ctx, "bob@example.com", "Bob", "secreto1")
	a, _ := store.Create(ctx, "ana@example.com", "Ana", "secreto1")

	got, err := store.GetByID(ctx, b.ID)
	if err != nil || got.Email != "bob@example.com" {
		t.Errorf("GetByID() = %+v, %v", got, err)
	}
	got, err = store.GetByEmail(ctx, "ana@example.com")
	if err != nil || got.ID != a.ID {
		t.Errorf("GetByEmail() = %+v, %v", got, err)
	}
	if _, err := store.GetByID(ctx, "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetByID(missing) error = %v", err)
	}

	users, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(users) != 2 || users[0].Email != "ana@example.com" || users[1].Email != "bob@example.com" {
		t.Errorf("List() = %+v, want ana then bob", users)
	}
}

func TestLoginMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrUserNotFound, "No existe un usuario con ese email"},
		{ErrInvalidCredentials, "El password es incorrecto"},
		{errors.New("disk on fire"), "Hubo un error al iniciar sesión, intenta de nuevo"},
	}
	for _, tt := range tests {
		if got := LoginMessage(tt.err); got != tt.want {
			t.Errorf("LoginMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
