// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package config

import (
	"fmt"
	"strings"
)

// minJWTSecretLength is enforced in production only.
const minJWTSecretLength = 32

// Validate checks that the configuration is complete and consistent.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.Server.Timeout)
	}
	switch c.Server.Environment {
	case "development", "production":
	default:
		return fmt.Errorf("ENVIRONMENT must be development or production, got %q", c.Server.Environment)
	}
	if c.Server.BaseURL != "" {
		if err := validateBaseURL(c.Server.BaseURL, "PUBLIC_BASE_URL"); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if !c.Database.InMemory && c.Database.Path == "" {
		return fmt.Errorf("DATA_DIR is required unless DATABASE_IN_MEMORY=true")
	}
	if c.Database.ProductsCollection == "" {
		return fmt.Errorf("PRODUCTS_COLLECTION must not be empty")
	}
	if strings.Contains(c.Database.ProductsCollection, ":") {
		return fmt.Errorf("PRODUCTS_COLLECTION must not contain ':', got %q", c.Database.ProductsCollection)
	}
	if c.Database.ListCacheTTL < 0 {
		return fmt.Errorf("LIST_CACHE_TTL must not be negative, got %s", c.Database.ListCacheTTL)
	}
	return nil
}

func (c *Config) validateStorage() error {
	if !c.Storage.InMemory && c.Storage.Path == "" {
		return fmt.Errorf("STORAGE_PATH is required unless STORAGE_IN_MEMORY=true")
	}
	if !c.Storage.InMemory && !c.Database.InMemory && c.Storage.Path == c.Database.Path {
		return fmt.Errorf("STORAGE_PATH and DATA_DIR must differ, both are %q", c.Storage.Path)
	}
	if c.Storage.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.Storage.MaxUploadBytes)
	}
	if c.Storage.URLTTL < 0 {
		return fmt.Errorf("FILE_URL_TTL must not be negative, got %s", c.Storage.URLTTL)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	switch c.Security.SessionStore {
	case "memory":
	case "badger":
		if c.Security.SessionStorePath == "" {
			return fmt.Errorf("SESSION_STORE_PATH is required when SESSION_STORE=badger")
		}
	default:
		return fmt.Errorf("SESSION_STORE must be memory or badger, got %q", c.Security.SessionStore)
	}
	if c.Security.SessionTimeout <= 0 {
		return fmt.Errorf("SESSION_TIMEOUT must be positive, got %s", c.Security.SessionTimeout)
	}
	if c.Security.SessionCleanupInterval <= 0 {
		return fmt.Errorf("SESSION_CLEANUP_INTERVAL must be positive, got %s", c.Security.SessionCleanupInterval)
	}
	if c.Security.CookieName == "" {
		return fmt.Errorf("COOKIE_NAME must not be empty")
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs <= 0 || c.Security.LoginRateLimit <= 0 {
			return fmt.Errorf("rate limits must be positive when rate limiting is enabled")
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", c.Security.RateLimitWindow)
		}
	}

	if !c.Server.IsProduction() {
		return nil
	}
	if len(c.Security.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters in production", minJWTSecretLength)
	}
	if !c.Security.CookieSecure {
		return fmt.Errorf("COOKIE_SECURE must be true in production")
	}
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return fmt.Errorf("CORS_ORIGINS must not contain '*' in production")
		}
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if c.Workflow.Timeout <= 0 {
		return fmt.Errorf("WORKFLOW_TIMEOUT must be positive, got %s", c.Workflow.Timeout)
	}
	if c.Workflow.BreakerFailures == 0 {
		return fmt.Errorf("BREAKER_FAILURES must be at least 1")
	}
	if c.Workflow.BreakerTimeout <= 0 {
		return fmt.Errorf("BREAKER_TIMEOUT must be positive, got %s", c.Workflow.BreakerTimeout)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
