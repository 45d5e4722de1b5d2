// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

// Package database is the document store of the site: named collections of
// JSON documents kept in BadgerDB.
//
// # Layout
//
// Documents live under "doc:<collection>:<id>". IDs are UUIDv7, so key order
// is insertion order and List can walk a collection newest first with a
// reverse iterator.
//
// # Usage
//
//	db, err := database.Open(cfg.Database)
//	store := database.NewDocStore(db, database.DocStoreConfig{...})
//	id, err := store.Insert(ctx, "productos", record)
//	docs, err := store.List(ctx, "productos", 50)
//
// Insert is guarded by a circuit breaker and recorded in the
// producthunt_db_operation_* metrics. Badger transactions are not
// context-aware, so a cancelled context is only checked before each
// transaction starts.
package database
