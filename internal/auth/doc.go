// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

/*
Package auth provides accounts, sessions and the auth-state stream.

Key Components:

  - UserStore: Badger-backed accounts with bcrypt password hashes
  - SessionStore: memory or Badger session storage, chosen by SessionStoreFactory
  - SessionMiddleware: cookie-based session lookup, RequireAuth for API routes
  - Service: Login, Logout and SubscribeAuthState over the event bus
  - CSRFMiddleware: rejects form posts sent by pages of untrusted origins

Auth State:

Every session transition is published on the auth.state topic. A subscriber
receives the current state of its session synchronously and then each
transition until it calls the returned Unsubscribe:

	unsubscribe, err := svc.SubscribeAuthState(ctx, sessionID, func(u *auth.User) {
	    if u == nil {
	        nav.NavigateTo("/login")
	    }
	})
	if err != nil {
	    return err
	}
	defer unsubscribe()

The callback runs on a bus goroutine and must not call Unsubscribe itself.

Accounts are created out of band (see the users command); the site has no
signup form.
*/
package auth
