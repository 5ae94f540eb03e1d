// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/photometa/internal/filestore"
	"github.com/tomtom215/photometa/internal/ingest"
	"github.com/tomtom215/photometa/internal/models"
)

// fakeIndex is an in-memory PhotoIndex.
type fakeIndex struct {
	photos  []models.PhotoMetadata
	pingErr error
	listErr error
	lastQ   string
	lastLim int
}

func (f *fakeIndex) ListPhotos(_ context.Context, limit int) ([]models.PhotoMetadata, error) {
	f.lastLim = limit
	if f.listErr != nil {
		return nil, f.listErr
	}
	if len(f.photos) > limit {
		return f.photos[:limit], nil
	}
	return f.photos, nil
}

func (f *fakeIndex) SearchPhotos(_ context.Context, q string, limit int) ([]models.PhotoMetadata, error) {
	f.lastQ, f.lastLim = q, limit
	if q == "" {
		return nil, nil
	}
	var out []models.PhotoMetadata
	for _, p := range f.photos {
		if strings.Contains(strings.ToLower(p.Title), strings.ToLower(q)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeIndex) CountPhotos(context.Context) (int, error) {
	return len(f.photos), nil
}

func (f *fakeIndex) Ping(context.Context) error {
	return f.pingErr
}

var errBoom = errors.New("boom")

type testEnv struct {
	dir     string
	store   *filestore.Store
	index   *fakeIndex
	handler *Handler
	server  http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	store, err := filestore.New(dir, "photos.json")
	if err != nil {
		t.Fatalf("filestore.New: %v", err)
	}
	coord, err := ingest.NewCoordinator(ingest.DefaultOptions(), store)
	if err != nil {
		t.Fatalf("NewCoordinator: %v", err)
	}
	index := &fakeIndex{}
	h, err := NewHandler(coord, index, store, HandlerConfig{
		DefaultBackend: ingest.BackendFile,
		JSONDir:        dir,
		MaxUploadBytes: 4096,
		SearchLimit:    50,
		Version:        "test",
	})
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitDisabled = true
	return &testEnv{
		dir:     dir,
		store:   store,
		index:   index,
		handler: h,
		server:  NewRouter(h, cfg).SetupChi(),
	}
}

func (e *testEnv) do(t *testing.T, method, target, contentType string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	e.server.ServeHTTP(rec, req)
	return rec
}

// testResponse mirrors APIResponse with raw payloads for inspection.
type testResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code      string          `json:"code"`
		Message   string          `json:"message"`
		Details   json.RawMessage `json:"details"`
		RequestID string          `json:"request_id"`
	} `json:"error"`
	Meta *APIMeta `json:"meta"`
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) testResponse {
	t.Helper()
	var resp testResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return resp
}

func decodeOutcome(t *testing.T, raw json.RawMessage) ingest.Outcome {
	t.Helper()
	var o ingest.Outcome
	if err := json.Unmarshal(raw, &o); err != nil {
		t.Fatalf("failed to decode outcome %q: %v", raw, err)
	}
	return o
}

func checkStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, want, rec.Body.String())
	}
}

func validRecordJSON(title string) []byte {
	return []byte(`{
		"title": "` + title + `",
		"photographer": "Ansel",
		"date_taken": "2024-05-01",
		"url": "https://example.com/p.jpg",
		"description": "A view",
		"location": "Yosemite",
		"tags": "nature,mountains",
		"width": 1024,
		"height": 768,
		"camera": "Nikon",
		"license": "CC-BY"
	}`)
}
