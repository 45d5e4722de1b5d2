// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package auth

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// SessionStoreType defines the type of session storage backend.
type SessionStoreType string

const (
	// SessionStoreMemory uses in-memory storage (default, not persistent).
	SessionStoreMemory SessionStoreType = "memory"

	// SessionStoreBadger uses BadgerDB for persistent session storage.
	SessionStoreBadger SessionStoreType = "badger"
)

// SessionStoreFactory creates session stores based on configuration.
type SessionStoreFactory struct {
	storeType SessionStoreType
	db        *badger.DB
	owned     bool
}

// NewSessionStoreFactory creates a new session store factory.
//
// For "badger" with a path, a dedicated BadgerDB is opened there. For "badger"
// without a path, shared is used. "memory" or empty opens nothing.
func NewSessionStoreFactory(storeType SessionStoreType, path string, shared *badger.DB) (*SessionStoreFactory, error) {
	factory := &SessionStoreFactory{storeType: storeType}

	switch storeType {
	case SessionStoreMemory, "":
		factory.storeType = SessionStoreMemory
	case SessionStoreBadger:
		if path == "" {
			if shared == nil {
				return nil, fmt.Errorf("badger session store needs a path or a shared database")
			}
			factory.db = shared
			break
		}
		opts := badger.DefaultOptions(path)
		opts.Logger = nil // Suppress BadgerDB logs

		db, err := badger.Open(opts)
		if err != nil {
			return nil, fmt.Errorf("open badger db for sessions: %w", err)
		}
		factory.db = db
		factory.owned = true
	default:
		return nil, fmt.Errorf("unknown session store %q", storeType)
	}

	return factory, nil
}

// CreateStore creates a SessionStore based on the factory's configuration.
func (f *SessionStoreFactory) CreateStore() SessionStore {
	if f.db != nil {
		return NewBadgerSessionStore(f.db)
	}
	return NewMemorySessionStore()
}

// Type returns the configured backend.
func (f *SessionStoreFactory) Type() SessionStoreType {
	return f.storeType
}

// Close closes the BadgerDB if the factory opened it.
func (f *SessionStoreFactory) Close() error {
	if f.db != nil && f.owned {
		return f.db.Close()
	}
	return nil
}
