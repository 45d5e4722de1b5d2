// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

/*
Package config provides layered configuration for the product listing site.

Values are resolved in three layers, later layers winning:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, ./config.yaml, /etc/producthunt/config.yaml
 3. Environment variables mapped through an explicit table (envTransformFunc)

# Sections

  - server: listen address, public base URL, environment, shutdown timeout
  - database: document store location (Badger) and the products collection name
  - storage: object store location, upload limits, signed URL lifetime
  - security: JWT signing secret, session store and cookie, rate limits, CORS
  - workflow: per-step deadline, image requirement, circuit breaker thresholds
  - logging: level, format, caller

# Environment Variables

	HTTP_HOST, HTTP_PORT, PUBLIC_BASE_URL, ENVIRONMENT
	DATA_DIR, DATABASE_IN_MEMORY, PRODUCTS_COLLECTION
	STORAGE_PATH, STORAGE_IN_MEMORY, MAX_UPLOAD_BYTES, FILE_URL_TTL
	JWT_SECRET, SESSION_TIMEOUT, SESSION_STORE, SESSION_STORE_PATH
	COOKIE_SECURE, RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, LOGIN_RATE_LIMIT
	DISABLE_RATE_LIMIT, CORS_ORIGINS
	WORKFLOW_TIMEOUT, REQUIRE_IMAGE, BREAKER_FAILURES, BREAKER_TIMEOUT
	LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Validate is called by LoadWithKoanf; a Config that fails validation is never
returned.
*/
package config
