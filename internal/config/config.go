// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Storage  StorageConfig  `koanf:"storage"`
	Security SecurityConfig `koanf:"security"`
	Workflow WorkflowConfig `koanf:"workflow"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// BaseURL prefixes the signed file URLs stored in product records.
	// Empty means host-relative URLs ("/files/...").
	BaseURL string `koanf:"base_url"`

	// Environment is "development" or "production". Production enables the
	// stricter checks in validateSecurity.
	Environment string `koanf:"environment"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// IsProduction reports whether the server runs with production checks.
func (s ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

// DatabaseConfig configures the document store.
type DatabaseConfig struct {
	Path     string `koanf:"path"`
	InMemory bool   `koanf:"in_memory"`

	// ProductsCollection is where submitted products are inserted.
	ProductsCollection string `koanf:"products_collection"`

	// ListCacheTTL keeps home page listings in memory. Zero disables the cache.
	ListCacheTTL time.Duration `koanf:"list_cache_ttl"`
}

// StorageConfig configures the object store holding uploaded images.
type StorageConfig struct {
	Path           string        `koanf:"path"`
	InMemory       bool          `koanf:"in_memory"`
	MaxUploadBytes int64         `koanf:"max_upload_bytes"`
	URLTTL         time.Duration `koanf:"url_ttl"`
}

// SecurityConfig holds authentication, session and HTTP protection settings.
type SecurityConfig struct {
	// JWTSecret signs file download tokens. Required in production.
	JWTSecret      string        `koanf:"jwt_secret"`
	SessionTimeout time.Duration `koanf:"session_timeout"`

	// SessionCleanupInterval is how often expired sessions are swept.
	SessionCleanupInterval time.Duration `koanf:"session_cleanup_interval"`

	// SessionStore is "memory" or "badger".
	SessionStore     string `koanf:"session_store"`
	SessionStorePath string `koanf:"session_store_path"`
	CookieName       string `koanf:"cookie_name"`
	CookieSecure     bool   `koanf:"cookie_secure"`

	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	LoginRateLimit    int           `koanf:"login_rate_limit"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// WorkflowConfig tunes the product submission workflow.
type WorkflowConfig struct {
	// Timeout bounds each collaborator step (upload, insert).
	Timeout time.Duration `koanf:"timeout"`

	// RequireImage rejects submissions without a selected file. When false the
	// product is stored with an empty image URL.
	RequireImage bool `koanf:"require_image"`

	// BreakerFailures consecutive failures open the storage and database breakers.
	BreakerFailures uint32        `koanf:"breaker_failures"`
	BreakerTimeout  time.Duration `koanf:"breaker_timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load is shorthand for LoadWithKoanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
