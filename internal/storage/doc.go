// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

// Package storage uploads selected files to object storage and resolves them
// to retrievable URLs.
//
// The Uploader derives the object key from the file itself:
//
//	products/<lastModified><name>
//
// Two different files with the same name and modification time share a key
// and the later upload replaces the earlier one.
//
// BadgerBlobStore is the ObjectStore the server runs with. Its download URLs
// point at the site's own /files/ route and carry a signed token (HS256 JWT)
// naming the object, so a URL stored in a product record keeps working
// without a session:
//
//	/files/products/1700000000000logo.png?token=eyJhbGciOi...
package storage
