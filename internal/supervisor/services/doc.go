// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

/*
Package services provides suture.Service wrappers for long-running components.

Each wrapper implements suture's Service interface and fmt.Stringer:

	type Service interface {
	    Serve(ctx context.Context) error
	}

# Available Services

HTTPServerService wraps *http.Server. ListenAndServe runs in a goroutine and
Shutdown is called with its own timeout once the context is cancelled.

SessionCleanupService calls auth.Service.CleanupExpired on a ticker. Each
expired session is announced on the auth.state topic by the auth service.

ProductEventsService runs an events.Router over products.created, logs every
new product and fans out to handlers registered with OnProduct. Handler
failures are retried and then moved to the poison topic, which the same
router consumes to log and count them.

# Return Values

Serve returns ctx.Err() after a requested shutdown. Any other error tells the
supervisor to restart the service with backoff.
*/
package services
