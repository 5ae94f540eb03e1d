// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/tomtom215/photometa/internal/models"
)

// Backend names a persistence mechanism.
type Backend string

const (
	// BackendTable is the relational table store.
	BackendTable Backend = "db"
	// BackendFile is the JSON array file store.
	BackendFile Backend = "file"
)

// ParseBackend maps a user-supplied backend name to a Backend. The empty
// string selects def.
func ParseBackend(s string, def Backend) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return def, nil
	case "db", "table", "database":
		return BackendTable, nil
	case "file", "json":
		return BackendFile, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
	}
}

// Store is a record source and sink. Implementations do not need to be safe
// for concurrent writers; the Coordinator serializes writes per backend.
type Store interface {
	// Backend identifies the store kind.
	Backend() Backend

	// Snapshot returns the full current population.
	Snapshot(ctx context.Context) ([]Record, error)

	// Candidates returns the records that could be duplicates of a record
	// with the given natural key. A store may return its whole population.
	Candidates(ctx context.Context, nk NaturalKey) ([]Record, error)

	// Get returns one record, or ErrNotFound.
	Get(ctx context.Context, id string) (models.PhotoMetadata, error)

	// Insert appends validated records and returns them with ID and
	// CreatedAt assigned, in input order. Either all records are written or none.
	Insert(ctx context.Context, photos []models.PhotoMetadata) ([]models.PhotoMetadata, error)

	// Replace overwrites every semantic field of the record with the given
	// id, keeping its ID and CreatedAt. It returns ErrNotFound if absent.
	Replace(ctx context.Context, id string, photo models.PhotoMetadata) (models.PhotoMetadata, error)

	// Delete removes the record with the given id, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}
