// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

// Package main is the entry point for the Producthunt replica server.
//
// # Commands
//
//	producthunt serve              run the HTTP server under the supervisor tree
//	producthunt users add          create an account (signup is not offered over HTTP)
//	producthunt users list         list accounts
//
// # Startup Order
//
//  1. Configuration: defaults, optional config.yaml, environment (Koanf v2)
//  2. Logging: zerolog with the configured level and format
//  3. Databases: the document store and the file store, each a BadgerDB
//  4. Sessions: memory or Badger, chosen by SESSION_STORE
//  5. Event bus: in-process watermill channel for auth.state and products.created
//  6. HTTP: chi router with session, CORS and rate limit middleware
//  7. Supervisor: suture tree running the HTTP server, session cleanup and the
//     product event consumer
//
// # Example Usage
//
// Development with in-memory stores:
//
//	export DATABASE_IN_MEMORY=true STORAGE_IN_MEMORY=true LOG_FORMAT=console
//	./producthunt users add --email ana@example.com --name Ana --password 'kA9#mzq2'
//	./producthunt serve
//
// Production:
//
//	export ENVIRONMENT=production
//	export JWT_SECRET=$(openssl rand -base64 32)
//	export COOKIE_SECURE=true
//	export CORS_ORIGINS=https://producthunt.example.com
//	export SESSION_STORE=badger
//	./producthunt serve
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor context. The HTTP server drains
// in-flight requests for SHUTDOWN_TIMEOUT, then the databases are closed.
package main

import (
	"os"

	"github.com/joseluisng17/producthunt-next-replic/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logging.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
