// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package auth

import (
	"context"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/joseluisng17/producthunt-next-replic/internal/database"
	"github.com/joseluisng17/producthunt-next-replic/internal/events"
)

// newTestBadger opens an in-memory Badger closed at test cleanup.
func newTestBadger(t *testing.T) *badger.DB {
	t.Helper()
	db, err := database.OpenBadger("", true)
	if err != nil {
		t.Fatalf("OpenBadger() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db.Badger()
}

// newTestUserStore uses bcrypt.MinCost; production code keeps DefaultBcryptCost.
func newTestUserStore(t *testing.T) *UserStore {
	t.Helper()
	return NewUserStore(newTestBadger(t), UserStoreConfig{BcryptCost: bcrypt.MinCost})
}

// newTestService returns a service with one account:
// ana@example.com / secreto1.
func newTestService(t *testing.T) (*Service, *events.Bus) {
	t.Helper()
	users := newTestUserStore(t)
	if _, err := users.Create(context.Background(), "ana@example.com", "Ana", "secreto1"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	bus := events.NewBus(events.DefaultConfig())
	t.Cleanup(func() { _ = bus.Close() })
	return NewService(users, NewMemorySessionStore(), bus, ServiceConfig{}), bus
}
