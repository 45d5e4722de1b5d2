// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package database

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"github.com/joseluisng17/producthunt-next-replic/internal/config"
	"github.com/joseluisng17/producthunt-next-replic/internal/logging"
)

// ErrClosed is returned after Close.
var ErrClosed = errors.New("database is closed")

// DB owns a Badger instance.
type DB struct {
	badger *badger.DB
	mu     sync.RWMutex
	closed bool
}

// Open opens the Badger database described by cfg.
func Open(cfg config.DatabaseConfig) (*DB, error) {
	return OpenBadger(cfg.Path, cfg.InMemory)
}

// OpenBadger opens a Badger database at path, or in memory.
func OpenBadger(path string, inMemory bool) (*DB, error) {
	opts := badger.DefaultOptions(path)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db at %q: %w", path, err)
	}
	logging.Info().Str("path", path).Bool("in_memory", inMemory).Msg("Database opened")
	return &DB{badger: db}, nil
}

// Badger returns the underlying handle for stores that share it.
func (db *DB) Badger() *badger.DB {
	return db.badger
}

// Ping fails when the database is closed or cannot serve a read.
func (db *DB) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.closed {
		return ErrClosed
	}
	return db.badger.View(func(*badger.Txn) error { return nil })
}

// Close closes the database. Safe to call more than once.
func (db *DB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.closed {
		return nil
	}
	db.closed = true
	return db.badger.Close()
}
