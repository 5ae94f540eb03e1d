// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

/*
database_schema.go - Database Schema Management

Tables:
  - photo_metadata: one row per admitted record. id comes from
    photo_metadata_id_seq; created_at is written by the application in UTC.

Width and height carry CHECK constraints so a row that bypassed validation
still cannot hold non-positive dimensions. No secondary indexes are created:
duplicate candidates are narrowed by date_taken and scanned.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the sequence and table if they do not exist.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range db.getTableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

func (db *DB) getTableCreationQueries() []string {
	return []string{
		`CREATE SEQUENCE IF NOT EXISTS photo_metadata_id_seq START 1`,
		`CREATE TABLE IF NOT EXISTS photo_metadata (
			id BIGINT PRIMARY KEY DEFAULT nextval('photo_metadata_id_seq'),
			title VARCHAR NOT NULL,
			photographer VARCHAR NOT NULL,
			date_taken DATE NOT NULL,
			url VARCHAR NOT NULL,
			description VARCHAR NOT NULL,
			location VARCHAR NOT NULL,
			tags VARCHAR NOT NULL DEFAULT '',
			width INTEGER NOT NULL CHECK (width > 0),
			height INTEGER NOT NULL CHECK (height > 0),
			camera VARCHAR NOT NULL,
			license VARCHAR NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
	}
}
