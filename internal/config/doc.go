// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

/*
Package config provides layered configuration loading for Photometa.

Configuration is built with Koanf v2 from three sources, later sources
overriding earlier ones:

  - Built-in defaults
  - An optional YAML file (config.yaml, config.yml, /etc/photometa/config.yaml,
    or the path given in CONFIG_PATH)
  - Environment variables

# Environment Variables

Database (DatabaseConfig):
  - DUCKDB_PATH: DuckDB database file (default: /data/photometa.duckdb)
  - DUCKDB_MAX_MEMORY: DuckDB memory limit (default: 512MB)
  - DUCKDB_THREADS: DuckDB worker threads (default: 0 = NumCPU)
  - DUCKDB_CHECKPOINT_INTERVAL: periodic checkpoint interval (default: 5m, 0 disables)

JSON store (StorageConfig):
  - JSON_DIR: Directory of JSON stores (default: /data/json)
  - JSON_FILE: Store file used for submissions (default: photos.json)

Ingestion (IngestConfig):
  - INTRA_BATCH_DEDUP: Reject duplicates within one batch (default: true)
  - DEFAULT_BACKEND: Backend used when a request names none (default: file)
  - MAX_UPLOAD_BYTES: Upload body limit (default: 10MB)
  - SEARCH_LIMIT: Maximum rows returned by list and search (default: 200)

HTTP server (ServerConfig):
  - HTTP_HOST, HTTP_PORT (default: 0.0.0.0:8080)
  - HTTP_TIMEOUT: Read/write timeout (default: 30s)
  - HTTP_SHUTDOWN_TIMEOUT: Graceful shutdown deadline (default: 15s)

Security (SecurityConfig):
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW (default: 100 per 1m)
  - DISABLE_RATE_LIMIT: Turn rate limiting off

Logging (LoggingConfig):
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: Include caller file:line

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
*/
package config
