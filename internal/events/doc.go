// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

// Package events is the in-process event bus of the site, built on watermill's
// gochannel Pub/Sub.
//
// Two topics exist:
//
//	auth.state        AuthStateEvent, published on login, logout and session expiry
//	products.created  ProductCreatedEvent, published after a product is stored
//
// Auth state subscriptions back the page-lifetime redirect of the new-product
// form: a page subscribes when it mounts and must release the subscription
// when it unmounts. Product events are consumed by a supervised service that
// logs and counts them.
//
// Payloads are JSON (goccy/go-json). Every message carries the correlation ID
// of the request that produced it in the "correlation_id" metadata key.
//
// Subscribers must Ack every message; gochannel holds delivery to a
// subscriber until the previous message is acknowledged.
package events
