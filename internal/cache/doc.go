// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

/*
Package cache provides an in-process LRU cache with TTL expiry.

The API layer keeps recent product listings in an LRU keyed by the requested
limit, and clears it whenever a product is created:

	c := cache.NewLRU[[]products.Product]("products", 16, 30*time.Second)
	if list, ok := c.Get("limit=50"); ok {
	    return list
	}
	...
	c.Set("limit=50", list)

Lookups and evictions are exported as producthunt_cache_lookups_total and
producthunt_cache_evictions_total, labelled with the cache name.
*/
package cache
