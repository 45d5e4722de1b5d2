// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

// Package logging provides the zerolog-based structured logger used by every
// other package of the site.
//
// The logger is process-global. It is initialized with defaults at package load
// and reconfigured from the loaded configuration in main:
//
//	logging.Init(logging.Config{
//	    Level:  cfg.Logging.Level,
//	    Format: cfg.Logging.Format,
//	    Caller: cfg.Logging.Caller,
//	})
//
//	logging.Info().Str("email", email).Msg("Login succeeded")
//	logging.Ctx(ctx).Error().Err(err).Msg("Product insert failed")
//
// # Request correlation
//
// The request ID middleware stores a request ID and a short correlation ID in
// the request context. Ctx(ctx) returns a logger that carries both, so every
// line written while handling a form submission can be joined together.
//
// # slog bridge
//
// Suture's event hook (sutureslog) and watermill's logger adapter expect a
// *slog.Logger. NewSlogLogger returns one whose records are written through
// zerolog so the process keeps a single output format.
//
// # Environment
//
//	LOG_LEVEL   trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  json, console (default: json)
//	LOG_CALLER  true, false (default: false)
package logging
