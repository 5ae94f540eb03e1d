// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

package api

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/photometa/internal/ingest"
	"github.com/tomtom215/photometa/internal/models"
)

// PhotoIndex is the read side of the table backend used by the list, search
// and health endpoints. *database.DB implements it.
type PhotoIndex interface {
	ListPhotos(ctx context.Context, limit int) ([]models.PhotoMetadata, error)
	SearchPhotos(ctx context.Context, q string, limit int) ([]models.PhotoMetadata, error)
	CountPhotos(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
}

// PhotoLister lists every record of the file backend. *filestore.Store implements it.
type PhotoLister interface {
	List(ctx context.Context) ([]models.PhotoMetadata, error)
}

// HandlerConfig carries the request-handling settings taken from config.
type HandlerConfig struct {
	DefaultBackend ingest.Backend
	JSONDir        string
	MaxUploadBytes int64
	SearchLimit    int
	Version        string
}

// Handler serves the HTTP API. Every write goes through the coordinator.
type Handler struct {
	coord     *ingest.Coordinator
	index     PhotoIndex
	files     PhotoLister
	cfg       HandlerConfig
	startTime time.Time
}

// NewHandler creates a handler. index and files may be nil when the
// corresponding backend is not configured.
func NewHandler(coord *ingest.Coordinator, index PhotoIndex, files PhotoLister, cfg HandlerConfig) (*Handler, error) {
	if coord == nil {
		return nil, errors.New("api: coordinator is required")
	}
	if cfg.DefaultBackend == "" {
		cfg.DefaultBackend = ingest.BackendFile
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = defaultSearchLimit
	}
	return &Handler{
		coord:     coord,
		index:     index,
		files:     files,
		cfg:       cfg,
		startTime: time.Now(),
	}, nil
}
