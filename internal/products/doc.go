// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

/*
Package products creates and lists product records.

A submission runs in a fixed order:

 1. auth guard: without a user the client is sent to /login and nothing else happens
 2. upload of the selected image (or ErrImageRequired)
 3. assembly of the Record, with markup stripped from text fields
 4. insert into the products collection
 5. navigation to / once the insert succeeded

Upload and insert each run under their own deadline. A failure in either is
returned and also stored as the form-level message (see FormMessage).

Mount subscribes the workflow to the auth state of the browser session for
as long as the page is served; a session that ends sends the client to /login.
*/
package products
