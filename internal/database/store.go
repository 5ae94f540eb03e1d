// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

package database

import (
	"context"

	"github.com/tomtom215/photometa/internal/ingest"
	"github.com/tomtom215/photometa/internal/models"
)

var _ ingest.Store = (*DB)(nil)

// Backend implements ingest.Store.
func (db *DB) Backend() ingest.Backend {
	return ingest.BackendTable
}

// Snapshot implements ingest.Store.
func (db *DB) Snapshot(ctx context.Context) ([]ingest.Record, error) {
	photos, err := db.AllPhotos(ctx)
	if err != nil {
		return nil, err
	}
	return ingest.Entities(photos), nil
}

// Candidates implements ingest.Store using the natural-key narrowing query.
func (db *DB) Candidates(ctx context.Context, nk ingest.NaturalKey) ([]ingest.Record, error) {
	photos, err := db.PhotoCandidates(ctx, nk)
	if err != nil {
		return nil, err
	}
	return ingest.Entities(photos), nil
}

// Get implements ingest.Store.
func (db *DB) Get(ctx context.Context, id string) (models.PhotoMetadata, error) {
	return db.GetPhoto(ctx, id)
}

// Insert implements ingest.Store.
func (db *DB) Insert(ctx context.Context, photos []models.PhotoMetadata) ([]models.PhotoMetadata, error) {
	return db.InsertPhotos(ctx, photos)
}

// Replace implements ingest.Store.
func (db *DB) Replace(ctx context.Context, id string, photo models.PhotoMetadata) (models.PhotoMetadata, error) {
	return db.ReplacePhoto(ctx, id, photo)
}

// Delete implements ingest.Store.
func (db *DB) Delete(ctx context.Context, id string) error {
	return db.DeletePhoto(ctx, id)
}
