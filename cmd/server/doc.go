// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

// Command server runs the Photometa HTTP service.
//
// Photometa ingests photo metadata records, validates them, drops exact
// duplicates and stores the rest in one of two backends: a DuckDB table
// ("db") or a JSON array file ("file").
//
// # Startup
//
//  1. Configuration: defaults, then config.yaml, then environment (Koanf v2)
//  2. Logging: zerolog, configured from the logging section
//  3. Stores: DuckDB table backend and JSON file backend
//  4. Coordinator: validate, deduplicate and admit, one lock per backend
//  5. HTTP: chi router under a suture supervisor tree
//
// # Configuration
//
// Frequently used environment variables:
//
//	DUCKDB_PATH=/data/photometa.duckdb
//	JSON_DIR=/data/json
//	JSON_FILE=photos.json
//	DEFAULT_BACKEND=file
//	HTTP_PORT=8080
//	LOG_LEVEL=info
//
// See package config for the full list.
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the supervisor tree. The HTTP server stops
// accepting connections and drains in-flight requests within
// HTTP_SHUTDOWN_TIMEOUT; the database is checkpointed and closed last.
package main
