// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/joseluisng17/producthunt-next-replic/internal/api"
	"github.com/joseluisng17/producthunt-next-replic/internal/auth"
	"github.com/joseluisng17/producthunt-next-replic/internal/config"
	"github.com/joseluisng17/producthunt-next-replic/internal/database"
	"github.com/joseluisng17/producthunt-next-replic/internal/events"
	"github.com/joseluisng17/producthunt-next-replic/internal/logging"
	"github.com/joseluisng17/producthunt-next-replic/internal/resilience"
	"github.com/joseluisng17/producthunt-next-replic/internal/storage"
	"github.com/joseluisng17/producthunt-next-replic/internal/supervisor"
	"github.com/joseluisng17/producthunt-next-replic/internal/supervisor/services"
)

var shutdownSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), shutdownSignals...)
			defer stop()
			return runServe(ctx, a.cfg)
		},
	}
}

// server holds every long-lived component of a running instance.
type server struct {
	cfg      *config.Config
	db       *database.DB
	files    *database.DB
	sessions *auth.SessionStoreFactory
	bus      *events.Bus
	auth     *auth.Service
	handler  http.Handler
}

// newServer opens the stores and wires the HTTP handler. Close releases
// whatever was opened, including after a partial failure.
func newServer(cfg *config.Config) (s *server, err error) {
	s = &server{cfg: cfg}
	defer func() {
		if err != nil {
			s.Close()
			s = nil
		}
	}()

	if s.db, err = database.Open(cfg.Database); err != nil {
		return s, fmt.Errorf("open database: %w", err)
	}
	if s.files, err = database.OpenBadger(cfg.Storage.Path, cfg.Storage.InMemory); err != nil {
		return s, fmt.Errorf("open file store: %w", err)
	}

	storeType := auth.SessionStoreType(cfg.Security.SessionStore)
	sessionPath := cfg.Security.SessionStorePath
	if storeType == auth.SessionStoreBadger && cfg.Database.InMemory {
		// Share the in-memory database instead of creating files on disk.
		sessionPath = ""
	}
	if s.sessions, err = auth.NewSessionStoreFactory(storeType, sessionPath, s.db.Badger()); err != nil {
		return s, fmt.Errorf("create session store: %w", err)
	}
	sessionStore := s.sessions.CreateStore()

	secret, err := signingSecret(cfg)
	if err != nil {
		return s, err
	}
	signer, err := storage.NewURLSigner(secret, cfg.Storage.URLTTL)
	if err != nil {
		return s, fmt.Errorf("create url signer: %w", err)
	}

	dbBreaker := resilience.NewBreaker(resilience.BreakerConfig{
		Name:                "database",
		ConsecutiveFailures: cfg.Workflow.BreakerFailures,
		Timeout:             cfg.Workflow.BreakerTimeout,
	})
	storageBreaker := resilience.NewBreaker(resilience.BreakerConfig{
		Name:                "storage",
		ConsecutiveFailures: cfg.Workflow.BreakerFailures,
		Timeout:             cfg.Workflow.BreakerTimeout,
	})

	s.bus = events.NewBus(events.DefaultConfig())

	users := auth.NewUserStore(s.db.Badger(), auth.UserStoreConfig{})
	s.auth = auth.NewService(users, sessionStore, s.bus, auth.ServiceConfig{
		SessionTTL: cfg.Security.SessionTimeout,
	})

	cookieCfg := auth.DefaultSessionMiddlewareConfig()
	cookieCfg.CookieName = cfg.Security.CookieName
	cookieCfg.CookieSecure = cfg.Security.CookieSecure
	cookieCfg.SessionTTL = cfg.Security.SessionTimeout
	cookies := auth.NewSessionMiddleware(sessionStore, cookieCfg)

	handler := api.NewHandler(api.Dependencies{
		Config:   cfg,
		DB:       s.db,
		Docs:     database.NewDocStore(s.db, database.DocStoreConfig{Breaker: dbBreaker}),
		Auth:     s.auth,
		Sessions: cookies,
		Blobs: storage.NewBadgerBlobStore(s.files.Badger(), signer, storage.BlobStoreConfig{
			BaseURL: cfg.Server.BaseURL,
			Breaker: storageBreaker,
		}),
		Publisher: s.bus,
	})

	mw := api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(cfg.Security))
	s.handler = api.NewRouter(handler, cookies, mw).SetupChi()

	logStartupWarnings(cfg)
	return s, nil
}

// Close releases resources in reverse order of creation.
func (s *server) Close() {
	if s.bus != nil {
		if err := s.bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event bus")
		}
	}
	if s.sessions != nil {
		if err := s.sessions.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing session store")
		}
	}
	if s.files != nil {
		if err := s.files.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing file store")
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}
}

// tree builds the supervisor tree for the server's services.
func (s *server) tree(httpServer services.HTTPServer) (*supervisor.SupervisorTree, error) {
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: s.cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("create supervisor tree: %w", err)
	}

	tree.AddDataService(services.NewSessionCleanupService(s.auth, s.cfg.Security.SessionCleanupInterval))
	tree.AddMessagingService(services.NewProductEventsService(s.bus, events.DefaultRouterConfig()))
	tree.AddAPIService(services.NewHTTPServerService(httpServer, s.cfg.Server.ShutdownTimeout))
	return tree, nil
}

func runServe(ctx context.Context, cfg *config.Config) error {
	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("environment", cfg.Server.Environment).
		Str("db_path", cfg.Database.Path).
		Bool("db_in_memory", cfg.Database.InMemory).
		Str("session_store", cfg.Security.SessionStore).
		Msg("Starting producthunt")

	s, err := newServer(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           s.handler,
		ReadHeaderTimeout: cfg.Server.Timeout,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	tree, err := s.tree(httpServer)
	if err != nil {
		return err
	}

	logging.Info().Msg("Starting supervisor tree")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
	return nil
}

// signingSecret returns the configured JWT secret. Outside production an
// empty secret is replaced by a random one, which invalidates file URLs
// stored by earlier runs.
func signingSecret(cfg *config.Config) (string, error) {
	if cfg.Security.JWTSecret != "" {
		return cfg.Security.JWTSecret, nil
	}
	if cfg.Server.IsProduction() {
		return "", fmt.Errorf("JWT_SECRET is required in production")
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate signing secret: %w", err)
	}
	logging.Warn().Msg("JWT_SECRET is not set; using a random secret, stored image URLs will stop working after a restart")
	return hex.EncodeToString(buf), nil
}

func logStartupWarnings(cfg *config.Config) {
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	if cfg.Security.SessionStore == string(auth.SessionStoreMemory) && cfg.Server.IsProduction() {
		logging.Warn().Msg("SESSION_STORE=memory: sessions are lost when the server restarts")
	}
	for _, origin := range cfg.Security.CORSOrigins {
		if origin == "*" {
			logging.Warn().Msg("CORS_ORIGINS=* allows any website to call the API")
			break
		}
	}
	if !cfg.Workflow.RequireImage {
		logging.Info().Msg("REQUIRE_IMAGE=false: products may be submitted without an image")
	}
}
