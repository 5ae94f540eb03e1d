// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

// Package database implements the table backend on DuckDB.
//
// # Overview
//
// DB owns a database/sql pool opened through github.com/duckdb/duckdb-go/v2
// and stores photo metadata in a single photo_metadata table. It satisfies
// ingest.Store so the ingestion coordinator can admit, update and delete
// records, and it adds read operations used by the HTTP API:
//
//   - ListPhotos: newest records first
//   - SearchPhotos: case-insensitive substring search over the text columns
//   - CountPhotos
//
// # Files
//
//   - database.go: lifecycle (open, pool configuration, close with checkpoint)
//   - database_schema.go: sequence and table creation
//   - crud_photos.go: queries and writes
//   - store.go: ingest.Store adapter
//
// # Duplicate Candidates
//
// Candidates narrows by date_taken and a case-insensitive containment match on
// title and photographer. The coordinator then applies the full canonical key
// comparison, so the narrowing only has to be a superset of the true matches.
//
// # Writes
//
// InsertPhotos writes a batch inside one transaction, so a constraint failure
// on any row leaves the table unchanged.
//
// # Usage
//
//	db, err := database.New(&cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
package database
