// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/joseluisng17/producthunt-next-replic/internal/auth"
	"github.com/joseluisng17/producthunt-next-replic/internal/products"
)

// Listing limits for GET /.
const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// HomePage is the body of GET /.
type HomePage struct {
	Products []products.Product `json:"productos"`
	User     *auth.User         `json:"user,omitempty"`
}

// Home lists products newest first. ?limit= caps the count.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxListLimit {
			rw.BadRequest("limit debe estar entre 1 y " + strconv.Itoa(maxListLimit))
			return
		}
		limit = n
	}

	list, err := h.listProducts(r.Context(), limit)
	if err != nil {
		rw.DatabaseError("No se pudieron cargar los productos", err)
		return
	}

	page := HomePage{Products: list}
	if subject := auth.GetAuthSubject(r.Context()); subject != nil && !subject.IsExpired() {
		page.User = subject.User()
	}
	rw.SuccessWithCount(page, len(list))
}

// listProducts serves listings from the cache when it is enabled.
func (h *Handler) listProducts(ctx context.Context, limit int) ([]products.Product, error) {
	if h.listCache == nil {
		return products.List(ctx, h.docs, h.collection(), limit)
	}

	key := "limit=" + strconv.Itoa(limit)
	if list, ok := h.listCache.Get(key); ok {
		return list, nil
	}
	list, err := products.List(ctx, h.docs, h.collection(), limit)
	if err != nil {
		return nil, err
	}
	h.listCache.Set(key, list)
	return list, nil
}

// invalidateListing drops cached listings after a product is stored.
func (h *Handler) invalidateListing() {
	if h.listCache != nil {
		h.listCache.Clear()
	}
}
