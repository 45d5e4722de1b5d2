// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order; the first existing file is loaded.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/producthunt/config.yaml",
	"/etc/producthunt/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            3000,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			BaseURL:         "",
			Environment:     "development",
		},
		Database: DatabaseConfig{
			Path:               "/data/db",
			InMemory:           false,
			ProductsCollection: "productos",
			ListCacheTTL:       30 * time.Second,
		},
		Storage: StorageConfig{
			Path:           "/data/files",
			InMemory:       false,
			MaxUploadBytes: 5 << 20,
			URLTTL:         0, // download URLs are stored in records and never expire by default
		},
		Security: SecurityConfig{
			JWTSecret:              "",
			SessionTimeout:         24 * time.Hour,
			SessionCleanupInterval: 5 * time.Minute,
			SessionStore:           "memory",
			SessionStorePath:       "/data/sessions",
			CookieName:             "producthunt_session",
			CookieSecure:           false,
			RateLimitReqs:          100,
			RateLimitWindow:        time.Minute,
			LoginRateLimit:         10,
			RateLimitDisabled:      false,
			CORSOrigins:            []string{"*"},
		},
		Workflow: WorkflowConfig{
			Timeout:         15 * time.Second,
			RequireImage:    true,
			BreakerFailures: 5,
			BreakerTimeout:  30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration from defaults, an optional YAML file and
// the environment, in that order of increasing precedence, then validates it.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields splits comma-separated env values for slice settings.
// Slices coming from YAML are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

var envMappings = map[string]string{
	// Server
	"http_host":        "server.host",
	"http_port":        "server.port",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"public_base_url":  "server.base_url",
	"environment":      "server.environment",

	// Database
	"data_dir":            "database.path",
	"database_in_memory":  "database.in_memory",
	"products_collection": "database.products_collection",
	"list_cache_ttl":      "database.list_cache_ttl",

	// Storage
	"storage_path":      "storage.path",
	"storage_in_memory": "storage.in_memory",
	"max_upload_bytes":  "storage.max_upload_bytes",
	"file_url_ttl":      "storage.url_ttl",

	// Security
	"jwt_secret":               "security.jwt_secret",
	"session_timeout":          "security.session_timeout",
	"session_cleanup_interval": "security.session_cleanup_interval",
	"session_store":            "security.session_store",
	"session_store_path":       "security.session_store_path",
	"cookie_name":              "security.cookie_name",
	"cookie_secure":            "security.cookie_secure",
	"rate_limit_requests":      "security.rate_limit_reqs",
	"rate_limit_window":        "security.rate_limit_window",
	"login_rate_limit":         "security.login_rate_limit",
	"disable_rate_limit":       "security.rate_limit_disabled",
	"cors_origins":             "security.cors_origins",

	// Workflow
	"workflow_timeout": "workflow.timeout",
	"require_image":    "workflow.require_image",
	"breaker_failures": "workflow.breaker_failures",
	"breaker_timeout":  "workflow.breaker_timeout",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable name to its koanf path.
// Unmapped variables return "" and are ignored.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
