// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

package api

import (
	"errors"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/photometa/internal/filestore"
	"github.com/tomtom215/photometa/internal/models"
)

// ListFiles lists the JSON files in the store directory.
func (h *Handler) ListFiles(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	files, err := filestore.ListFiles(h.cfg.JSONDir)
	if err != nil {
		rw.StorageError(err)
		return
	}
	if files == nil {
		files = []filestore.FileInfo{}
	}
	rw.SuccessList(files, len(files), 0)
}

// ViewFile returns the records held in one JSON file of the store directory.
func (h *Handler) ViewFile(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	name := chi.URLParam(r, "name")

	records, err := filestore.ReadFile(h.cfg.JSONDir, name)
	switch {
	case errors.Is(err, filestore.ErrInvalidName):
		rw.BadRequest(err.Error())
	case errors.Is(err, os.ErrNotExist):
		rw.NotFound("File not found")
	case errors.Is(err, filestore.ErrCorrupt):
		rw.Error(http.StatusUnprocessableEntity, ErrCodeMalformedInput, err.Error())
	case err != nil:
		rw.StorageError(err)
	default:
		if records == nil {
			records = []models.RawRecord{}
		}
		rw.SuccessList(records, len(records), 0)
	}
}
