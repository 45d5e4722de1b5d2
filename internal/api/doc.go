// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

/*
Package api provides the HTTP layer of the site.

Pages:

  - GET  /                 product listing, newest first (cached for database.list_cache_ttl)
  - GET  /login            empty login form
  - POST /login            login form submit; 303 to / on success
  - GET  /nuevo-producto   empty product form (303 to /login without a session)
  - POST /nuevo-producto   multipart product submit with an "image" file part
  - POST /logout           ends the session; 303 to /

API (/api/v1):

  - POST /forms/{form}/validate   blur-time validation of a form
  - GET  /auth/userinfo           current session user (401 without one)
  - GET  /auth/stream             WebSocket of auth_state frames for the session
  - GET  /health/live, /health/ready

Other:

  - GET /files/*   uploaded images, guarded by the signed token in ?token=
  - GET /metrics   Prometheus metrics

Every JSON body uses the APIResponse envelope. Form failures carry the form
state in error.details: field errors as a map and the form-level message.

Each form request builds its own workflow (login.Workflow or
products.Workflow), so no form state is shared between requests.
*/
package api
