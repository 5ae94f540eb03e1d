// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

package ingest

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/tomtom215/photometa/internal/models"
)

// validRaw returns a record that passes every validation rule.
func validRaw() models.RawRecord {
	return models.RawRecord{
		"title":        "Sunset",
		"photographer": "Ann Lee",
		"date_taken":   "2024-01-01",
		"description":  "Evening over the bay",
		"location":     "Brighton",
		"tags":         "sea,sun",
		"width":        640,
		"height":       480,
		"camera":       "X100V",
		"license":      "CC-BY",
		"url":          "https://example.com/sunset.jpg",
	}
}

// validRawWith returns validRaw with the given overrides applied.
func validRawWith(overrides map[string]interface{}) models.RawRecord {
	raw := validRaw()
	for k, v := range overrides {
		raw[k] = v
	}
	return raw
}

func validPhoto() models.PhotoMetadata {
	return models.PhotoMetadata{
		Title:        "Sunset",
		Photographer: "Ann Lee",
		DateTaken:    "2024-01-01",
		Description:  "Evening over the bay",
		Location:     "Brighton",
		Tags:         "sea,sun",
		Width:        640,
		Height:       480,
		Camera:       "X100V",
		License:      "CC-BY",
		URL:          "https://example.com/sunset.jpg",
	}
}

// memStore is an in-memory Store used to exercise the coordinator.
type memStore struct {
	backend   Backend
	photos    []models.PhotoMetadata
	nextID    int
	insertErr error
	inserts   int
}

func newMemStore(backend Backend) *memStore {
	return &memStore{backend: backend}
}

func (m *memStore) Backend() Backend { return m.backend }

func (m *memStore) Snapshot(_ context.Context) ([]Record, error) {
	return Entities(append([]models.PhotoMetadata(nil), m.photos...)), nil
}

func (m *memStore) Candidates(ctx context.Context, _ NaturalKey) ([]Record, error) {
	return m.Snapshot(ctx)
}

func (m *memStore) Get(_ context.Context, id string) (models.PhotoMetadata, error) {
	for _, p := range m.photos {
		if p.ID == id {
			return p, nil
		}
	}
	return models.PhotoMetadata{}, ErrNotFound
}

func (m *memStore) Insert(_ context.Context, photos []models.PhotoMetadata) ([]models.PhotoMetadata, error) {
	if m.insertErr != nil {
		return nil, m.insertErr
	}
	m.inserts++
	out := make([]models.PhotoMetadata, len(photos))
	for i, p := range photos {
		m.nextID++
		p.ID = strconv.Itoa(m.nextID)
		p.CreatedAt = time.Now().UTC()
		m.photos = append(m.photos, p)
		out[i] = p
	}
	return out, nil
}

func (m *memStore) Replace(_ context.Context, id string, photo models.PhotoMetadata) (models.PhotoMetadata, error) {
	for i, p := range m.photos {
		if p.ID == id {
			photo.ID = p.ID
			photo.CreatedAt = p.CreatedAt
			m.photos[i] = photo
			return photo, nil
		}
	}
	return models.PhotoMetadata{}, ErrNotFound
}

func (m *memStore) Delete(_ context.Context, id string) error {
	for i, p := range m.photos {
		if p.ID == id {
			m.photos = append(m.photos[:i], m.photos[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func newTestCoordinator(t *testing.T, opts Options) (*Coordinator, *memStore) {
	t.Helper()
	store := newMemStore(BackendFile)
	c, err := NewCoordinator(opts, store)
	if err != nil {
		t.Fatalf("NewCoordinator: %v", err)
	}
	return c, store
}

func checkStatus(t *testing.T, out *Outcome, want Status) {
	t.Helper()
	if out.Status != want {
		t.Fatalf("status = %q, want %q (message %q, diagnostics %v, err %v)",
			out.Status, want, out.Message, out.Diagnostics, out.Err)
	}
}
