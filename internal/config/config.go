// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

package config

import "time"

// Config holds all application configuration.
//
// Configuration is loaded in layers, later layers overriding earlier ones:
//
//  1. Built-in defaults (defaultConfig)
//  2. Optional YAML file (config.yaml, or the path in CONFIG_PATH)
//  3. Environment variables (see envTransformFunc for the accepted names)
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Storage  StorageConfig  `koanf:"storage"`
	Ingest   IngestConfig   `koanf:"ingest"`
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// DatabaseConfig holds DuckDB settings for the table backend.
type DatabaseConfig struct {
	Path      string `koanf:"path"`       // Database file, or ":memory:"
	MaxMemory string `koanf:"max_memory"` // DuckDB max_memory setting, e.g. "512MB"
	Threads   int    `koanf:"threads"`    // Number of DuckDB threads (0 = use NumCPU)

	// CheckpointInterval is how often DuckDB is checkpointed while the
	// server runs. Zero disables periodic checkpoints.
	CheckpointInterval time.Duration `koanf:"checkpoint_interval"`
}

// StorageConfig locates the JSON file backend.
//
// Environment Variables:
//   - JSON_DIR: Directory holding JSON stores (default: /data/json)
//   - JSON_FILE: Store file written by submissions (default: photos.json)
type StorageConfig struct {
	JSONDir  string `koanf:"json_dir"`
	JSONFile string `koanf:"json_file"`
}

// IngestConfig controls admission behaviour shared by both backends.
type IngestConfig struct {
	// IntraBatchDedup also rejects records that duplicate an earlier
	// record of the same batch. Default: true
	IntraBatchDedup bool `koanf:"intra_batch_dedup"`

	// DefaultBackend is used when a request names no backend: "file" or "db".
	DefaultBackend string `koanf:"default_backend"`

	// MaxUploadBytes caps the body size of batch uploads.
	MaxUploadBytes int64 `koanf:"max_upload_bytes"`

	// SearchLimit caps the rows returned by list and search.
	SearchLimit int `koanf:"search_limit"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// Load reads configuration from all sources with the following precedence:
//  1. Built-in defaults
//  2. Config file (config.yaml if exists, or path specified in CONFIG_PATH env var)
//  3. Environment variables
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
