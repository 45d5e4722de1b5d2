// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/joseluisng17/producthunt-next-replic/internal/auth"
	"github.com/joseluisng17/producthunt-next-replic/internal/cache"
	"github.com/joseluisng17/producthunt-next-replic/internal/config"
	"github.com/joseluisng17/producthunt-next-replic/internal/navigation"
	"github.com/joseluisng17/producthunt-next-replic/internal/products"
	"github.com/joseluisng17/producthunt-next-replic/internal/storage"
	"github.com/joseluisng17/producthunt-next-replic/internal/websocket"
)

// defaultMaxUploadBytes applies when the storage config leaves the limit unset.
const defaultMaxUploadBytes = 5 << 20

// listCacheSize bounds the distinct ?limit= values kept in the listing cache.
const listCacheSize = 16

// Pinger reports database reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DocumentStore holds the product collection.
type DocumentStore interface {
	products.Inserter
	products.Lister
}

// BlobStore stores uploaded images and serves them back by signed token.
type BlobStore interface {
	storage.ObjectStore
	Open(ctx context.Context, key, token string) (*storage.Object, error)
}

// Dependencies are the collaborators of a Handler.
type Dependencies struct {
	Config   *config.Config
	DB       Pinger
	Docs     DocumentStore
	Auth     *auth.Service
	Sessions *auth.SessionMiddleware
	Blobs    BlobStore

	// Publisher receives products.created events. Optional.
	Publisher products.Publisher
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_pages.go: product listing
//   - handlers_login.go: login form and logout
//   - handlers_products.go: new-product form
//   - handlers_forms.go: blur-time validation
//   - handlers_files.go: uploaded image delivery
//   - handlers_health.go: health, userinfo and the auth-state stream
type Handler struct {
	cfg        *config.Config
	db         Pinger
	docs       DocumentStore
	auth       *auth.Service
	sessions   *auth.SessionMiddleware
	blobs      BlobStore
	uploader   *storage.Uploader
	publisher  products.Publisher
	listCache  *cache.LRU[[]products.Product]
	authStream http.Handler
	startTime  time.Time
}

// NewHandler creates a handler. deps.Config must be set.
func NewHandler(deps Dependencies) *Handler {
	h := &Handler{
		cfg:       deps.Config,
		db:        deps.DB,
		docs:      deps.Docs,
		auth:      deps.Auth,
		sessions:  deps.Sessions,
		blobs:     deps.Blobs,
		uploader:  storage.NewUploader(deps.Blobs),
		publisher: deps.Publisher,
		startTime: time.Now(),
	}
	if ttl := deps.Config.Database.ListCacheTTL; ttl > 0 {
		h.listCache = cache.NewLRU[[]products.Product]("products", listCacheSize, ttl)
	}
	if deps.Auth != nil && deps.Sessions != nil {
		h.authStream = websocket.NewAuthStateHandler(deps.Auth, deps.Sessions.SessionID)
	}
	return h
}

func (h *Handler) collection() string {
	if h.cfg.Database.ProductsCollection != "" {
		return h.cfg.Database.ProductsCollection
	}
	return products.DefaultCollection
}

func (h *Handler) maxUploadBytes() int64 {
	if h.cfg.Storage.MaxUploadBytes > 0 {
		return h.cfg.Storage.MaxUploadBytes
	}
	return defaultMaxUploadBytes
}

// newProductWorkflow builds the per-request product form.
func (h *Handler) newProductWorkflow(nav navigation.Navigator) *products.Workflow {
	wf := products.New(h.auth, h.uploader, h.docs, nav, products.Config{
		Collection:   h.collection(),
		RequireImage: h.cfg.Workflow.RequireImage,
		StepTimeout:  h.cfg.Workflow.Timeout,
	})
	if h.publisher != nil {
		wf.SetPublisher(h.publisher)
	}
	return wf
}
