// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/photometa/internal/filestore"
	"github.com/tomtom215/photometa/internal/ingest"
	"github.com/tomtom215/photometa/internal/logging"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateStorage(); err != nil {
		return err
	}

	if err := c.validateIngest(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateDatabase() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.CheckpointInterval < 0 {
		return fmt.Errorf("DUCKDB_CHECKPOINT_INTERVAL must not be negative")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be >= 0")
	}
	return nil
}

func (c *Config) validateStorage() error {
	if strings.TrimSpace(c.Storage.JSONDir) == "" {
		return fmt.Errorf("JSON_DIR is required")
	}
	if err := filestore.ValidName(c.Storage.JSONFile); err != nil {
		return fmt.Errorf("JSON_FILE is invalid: %w", err)
	}
	return nil
}

// Upload size bounds
const (
	minUploadBytes = 1 << 10   // 1KB
	maxUploadBytes = 512 << 20 // 512MB
	maxSearchLimit = 10000
)

func (c *Config) validateIngest() error {
	if _, err := ingest.ParseBackend(c.Ingest.DefaultBackend, ingest.BackendFile); err != nil {
		return fmt.Errorf("DEFAULT_BACKEND must be one of: file, db")
	}
	if c.Ingest.MaxUploadBytes < minUploadBytes || c.Ingest.MaxUploadBytes > maxUploadBytes {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be between %d and %d", minUploadBytes, maxUploadBytes)
	}
	if c.Ingest.SearchLimit < 1 || c.Ingest.SearchLimit > maxSearchLimit {
		return fmt.Errorf("SEARCH_LIMIT must be between 1 and %d", maxSearchLimit)
	}
	return nil
}

// DefaultBackend returns the parsed default backend. Validate guarantees it parses.
func (c *Config) DefaultBackend() ingest.Backend {
	b, err := ingest.ParseBackend(c.Ingest.DefaultBackend, ingest.BackendFile)
	if err != nil {
		return ingest.BackendFile
	}
	return b
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateSecurity validates rate limiting bounds. Disabled rate limiting
// skips the checks.
func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// HasWildcardCORS reports whether any origin is allowed.
func (c *Config) HasWildcardCORS() bool {
	return c.Security.HasWildcardCORS()
}

// HasWildcardCORS reports whether the origin list contains "*".
func (s *SecurityConfig) HasWildcardCORS() bool {
	for _, origin := range s.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
