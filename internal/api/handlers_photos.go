// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/photometa/internal/ingest"
	"github.com/tomtom215/photometa/internal/models"
)

// SubmitPhoto admits one record. A JSON body is treated as an untrusted
// record; anything else is parsed as a form submission.
func (h *Handler) SubmitPhoto(w http.ResponseWriter, r *http.Request) {
	backend, err := h.backendParam(r)
	if err != nil {
		WriteBadRequest(w, r, err.Error())
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)

	if isJSON(r) {
		raw, err := decodeRecord(r.Body)
		if err != nil {
			NewResponseWriter(w, r).Error(http.StatusBadRequest, ErrCodeMalformedInput, err.Error())
			return
		}
		writeOutcome(w, r, h.coord.SubmitRecord(r.Context(), backend, raw))
		return
	}

	if err := r.ParseForm(); err != nil {
		WriteBadRequest(w, r, "Invalid form data")
		return
	}
	writeOutcome(w, r, h.coord.Submit(r.Context(), backend, formFromValues(r.PostForm)))
}

// UploadPhotos admits a JSON batch document.
func (h *Handler) UploadPhotos(w http.ResponseWriter, r *http.Request) {
	backend, err := h.backendParam(r)
	if err != nil {
		WriteBadRequest(w, r, err.Error())
		return
	}

	data, err := h.readUpload(w, r)
	switch {
	case errors.Is(err, errUploadTooLarge):
		NewResponseWriter(w, r).PayloadTooLarge(err.Error())
		return
	case errors.Is(err, errEmptyUpload):
		WriteBadRequest(w, r, "No file uploaded")
		return
	case err != nil:
		WriteBadRequest(w, r, "Could not read upload")
		return
	}

	writeOutcome(w, r, h.coord.SubmitBatch(r.Context(), backend, data))
}

// ListPhotos lists records newest first. The table backend is the default;
// ?backend=file lists the JSON store in file order.
func (h *Handler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	backend, err := ingest.ParseBackend(r.URL.Query().Get("backend"), ingest.BackendTable)
	if err != nil {
		WriteBadRequest(w, r, err.Error())
		return
	}
	rw := NewResponseWriter(w, r)
	limit := limitParam(r, h.cfg.SearchLimit)

	var photos []models.PhotoMetadata
	switch backend {
	case ingest.BackendFile:
		if h.files == nil {
			rw.ServiceUnavailable(ErrIndexUnavailable.Error())
			return
		}
		photos, err = h.files.List(r.Context())
		if len(photos) > limit {
			photos = photos[:limit]
		}
	default:
		if h.index == nil {
			rw.ServiceUnavailable(ErrIndexUnavailable.Error())
			return
		}
		photos, err = h.index.ListPhotos(r.Context(), limit)
	}
	if err != nil {
		rw.StorageError(err)
		return
	}
	if photos == nil {
		photos = []models.PhotoMetadata{}
	}
	rw.SuccessList(photos, len(photos), limit)
}

// SearchPhotos runs a case-insensitive substring search over the table backend.
// A blank query returns an empty list.
func (h *Handler) SearchPhotos(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.index == nil {
		rw.ServiceUnavailable(ErrIndexUnavailable.Error())
		return
	}

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	limit := limitParam(r, h.cfg.SearchLimit)
	photos, err := h.index.SearchPhotos(r.Context(), q, limit)
	if err != nil {
		rw.StorageError(err)
		return
	}
	if photos == nil {
		photos = []models.PhotoMetadata{}
	}
	rw.SuccessList(photos, len(photos), limit)
}

// GetPhoto fetches one record by id.
func (h *Handler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	backend, err := h.backendParam(r)
	if err != nil {
		WriteBadRequest(w, r, err.Error())
		return
	}
	id := chi.URLParam(r, "id")

	rw := NewResponseWriter(w, r)
	photo, err := h.coord.Get(r.Context(), backend, id)
	switch {
	case errors.Is(err, ingest.ErrNotFound):
		rw.NotFound("Record not found")
	case errors.Is(err, ingest.ErrUnknownBackend):
		rw.BadRequest(err.Error())
	case err != nil:
		rw.StorageError(err)
	default:
		rw.Success(photo)
	}
}

// UpdatePhoto replaces every semantic field of a record with a JSON body.
func (h *Handler) UpdatePhoto(w http.ResponseWriter, r *http.Request) {
	backend, err := h.backendParam(r)
	if err != nil {
		WriteBadRequest(w, r, err.Error())
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)

	raw, err := decodeRecord(r.Body)
	if err != nil {
		NewResponseWriter(w, r).Error(http.StatusBadRequest, ErrCodeMalformedInput, err.Error())
		return
	}
	writeOutcome(w, r, h.coord.Update(r.Context(), backend, chi.URLParam(r, "id"), raw))
}

// DeletePhoto removes a record by id.
func (h *Handler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	backend, err := h.backendParam(r)
	if err != nil {
		WriteBadRequest(w, r, err.Error())
		return
	}
	writeOutcome(w, r, h.coord.Delete(r.Context(), backend, chi.URLParam(r, "id")))
}
