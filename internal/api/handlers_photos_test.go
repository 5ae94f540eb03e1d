// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

package api

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/photometa/internal/ingest"
	"github.com/tomtom215/photometa/internal/models"
)

func TestSubmitPhoto_JSONAdmitsThenRejectsDuplicate(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/photos", "application/json", validRecordJSON("Half Dome"))
	checkStatus(t, rec, http.StatusCreated)
	resp := decodeResponse(t, rec)
	o := decodeOutcome(t, resp.Data)
	if o.Status != ingest.StatusAdmitted || o.Added != 1 || o.Backend != ingest.BackendFile {
		t.Fatalf("outcome = %+v", o)
	}
	if len(o.Records) != 1 || o.Records[0].ID == "" {
		t.Fatalf("admitted record should carry an id: %+v", o.Records)
	}

	// Same record with different case and padding is still a duplicate.
	dup := bytes.Replace(validRecordJSON("  HALF DOME "), []byte(`"Ansel"`), []byte(`"ansel"`), 1)
	rec = env.do(t, http.MethodPost, "/api/v1/photos", "application/json", dup)
	checkStatus(t, rec, http.StatusConflict)
	resp = decodeResponse(t, rec)
	if resp.Error == nil || resp.Error.Code != ErrCodeDuplicate {
		t.Fatalf("error = %+v", resp.Error)
	}

	photos, err := env.store.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(photos) != 1 {
		t.Errorf("store holds %d records, want 1", len(photos))
	}
}

func TestSubmitPhoto_Form(t *testing.T) {
	env := newTestEnv(t)

	form := url.Values{
		models.FieldTitle:        {"Bridge"},
		models.FieldPhotographer: {"Dorothea"},
		models.FieldDateTaken:    {"2023-11-02"},
		models.FieldURL:          {"https://example.com/b.jpg"},
		models.FieldDescription:  {"Fog"},
		models.FieldLocation:     {"San Francisco"},
		models.FieldTags:         {""},
		models.FieldWidth:        {"800"},
		models.FieldHeight:       {"600"},
		models.FieldCamera:       {"Leica"},
		models.FieldLicense:      {"CC0"},
	}
	rec := env.do(t, http.MethodPost, "/api/v1/photos", "application/x-www-form-urlencoded", []byte(form.Encode()))
	checkStatus(t, rec, http.StatusCreated)

	form.Set(models.FieldDateTaken, "02/11/2023")
	form.Set(models.FieldWidth, "0")
	rec = env.do(t, http.MethodPost, "/api/v1/photos", "application/x-www-form-urlencoded", []byte(form.Encode()))
	checkStatus(t, rec, http.StatusBadRequest)
	resp := decodeResponse(t, rec)
	if resp.Error == nil || resp.Error.Code != ErrCodeValidationFailed {
		t.Fatalf("error = %+v", resp.Error)
	}
	o := decodeOutcome(t, resp.Error.Details)
	if len(o.FieldErrors[models.FieldDateTaken]) == 0 || len(o.FieldErrors[models.FieldWidth]) == 0 {
		t.Errorf("field errors = %v, want date_taken and width", o.FieldErrors)
	}
}

func TestSubmitPhoto_BadInput(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name     string
		target   string
		body     string
		wantCode string
	}{
		{"unknown backend", "/api/v1/photos?backend=s3", string(validRecordJSON("x")), ErrCodeBadRequest},
		{"not json", "/api/v1/photos", "{nope", ErrCodeMalformedInput},
		{"array body", "/api/v1/photos", "[]", ErrCodeMalformedInput},
		{"missing fields", "/api/v1/photos", `{"title":"x"}`, ErrCodeValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, tt.target, "application/json", []byte(tt.body))
			checkStatus(t, rec, http.StatusBadRequest)
			resp := decodeResponse(t, rec)
			if resp.Error == nil || resp.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want code %s", resp.Error, tt.wantCode)
			}
		})
	}
}

func TestSubmitPhoto_TableBackendNotRegistered(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/photos?backend=db", "application/json", validRecordJSON("x"))
	checkStatus(t, rec, http.StatusBadRequest)
	o := decodeOutcome(t, decodeResponse(t, rec).Error.Details)
	if o.Status != ingest.StatusInvalid {
		t.Errorf("status = %s, want invalid", o.Status)
	}
}

func TestUploadPhotos_RawBody(t *testing.T) {
	env := newTestEnv(t)

	batch := "[" + string(validRecordJSON("One")) + "," + string(validRecordJSON("Two")) + "]"
	rec := env.do(t, http.MethodPost, "/api/v1/photos/upload", "application/json", []byte(batch))
	checkStatus(t, rec, http.StatusCreated)
	o := decodeOutcome(t, decodeResponse(t, rec).Data)
	if o.Added != 2 || o.Skipped != 0 {
		t.Fatalf("outcome = %+v", o)
	}

	batch = "[" + string(validRecordJSON("Two")) + "," + string(validRecordJSON("Three")) + "]"
	rec = env.do(t, http.MethodPost, "/api/v1/photos/upload", "application/json", []byte(batch))
	checkStatus(t, rec, http.StatusCreated)
	o = decodeOutcome(t, decodeResponse(t, rec).Data)
	if o.Status != ingest.StatusPartiallyAdmitted || o.Added != 1 || o.Skipped != 1 {
		t.Fatalf("outcome = %+v", o)
	}

	// Re-uploading records that are all stored reports zero added, not an error.
	rec = env.do(t, http.MethodPost, "/api/v1/photos/upload", "application/json", []byte(batch))
	checkStatus(t, rec, http.StatusCreated)
	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Fatalf("all-skipped upload should succeed: %s", rec.Body.String())
	}
	o = decodeOutcome(t, resp.Data)
	if o.Added != 0 || o.Skipped != 2 || o.Message != "Added 0 new records, skipped 2 duplicates." {
		t.Errorf("outcome = %+v", o)
	}
}

func TestUploadPhotos_Multipart(t *testing.T) {
	env := newTestEnv(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "photos.json")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write(validRecordJSON("Single")); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	rec := env.do(t, http.MethodPost, "/api/v1/photos/upload", mw.FormDataContentType(), body.Bytes())
	checkStatus(t, rec, http.StatusCreated)
	o := decodeOutcome(t, decodeResponse(t, rec).Data)
	if o.Added != 1 {
		t.Errorf("added = %d, want 1", o.Added)
	}
}

func TestUploadPhotos_Errors(t *testing.T) {
	env := newTestEnv(t)

	t.Run("empty", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/v1/photos/upload", "application/json", nil)
		checkStatus(t, rec, http.StatusBadRequest)
	})

	t.Run("too large", func(t *testing.T) {
		big := "[" + strings.Repeat(" ", 5000) + "]"
		rec := env.do(t, http.MethodPost, "/api/v1/photos/upload", "application/json", []byte(big))
		checkStatus(t, rec, http.StatusRequestEntityTooLarge)
	})

	t.Run("malformed", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/v1/photos/upload", "application/json", []byte(`"just a string"`))
		checkStatus(t, rec, http.StatusBadRequest)
		resp := decodeResponse(t, rec)
		if resp.Error == nil || resp.Error.Code != ErrCodeMalformedInput {
			t.Errorf("error = %+v", resp.Error)
		}
	})

	t.Run("invalid record rejects batch", func(t *testing.T) {
		batch := "[" + string(validRecordJSON("Good")) + `,{"title":"bad"}]`
		rec := env.do(t, http.MethodPost, "/api/v1/photos/upload", "application/json", []byte(batch))
		checkStatus(t, rec, http.StatusBadRequest)
		photos, err := env.store.List(context.Background())
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(photos) != 0 {
			t.Errorf("store holds %d records, want 0", len(photos))
		}
	})
}

func TestGetUpdateDeletePhoto(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/photos", "application/json", validRecordJSON("Original"))
	checkStatus(t, rec, http.StatusCreated)
	id := decodeOutcome(t, decodeResponse(t, rec).Data).Records[0].ID

	rec = env.do(t, http.MethodGet, "/api/v1/photos/"+id, "", nil)
	checkStatus(t, rec, http.StatusOK)
	var got models.PhotoMetadata
	if err := json.Unmarshal(decodeResponse(t, rec).Data, &got); err != nil {
		t.Fatalf("decode photo: %v", err)
	}
	if got.Title != "Original" {
		t.Errorf("title = %q", got.Title)
	}

	rec = env.do(t, http.MethodPut, "/api/v1/photos/"+id, "application/json", validRecordJSON("Renamed"))
	checkStatus(t, rec, http.StatusOK)
	o := decodeOutcome(t, decodeResponse(t, rec).Data)
	if o.Status != ingest.StatusUpdated || len(o.Records) != 1 || o.Records[0].Title != "Renamed" || o.Records[0].ID != id {
		t.Fatalf("outcome = %+v", o)
	}

	rec = env.do(t, http.MethodDelete, "/api/v1/photos/"+id, "", nil)
	checkStatus(t, rec, http.StatusOK)

	rec = env.do(t, http.MethodGet, "/api/v1/photos/"+id, "", nil)
	checkStatus(t, rec, http.StatusNotFound)
	rec = env.do(t, http.MethodDelete, "/api/v1/photos/"+id, "", nil)
	checkStatus(t, rec, http.StatusNotFound)
	rec = env.do(t, http.MethodPut, "/api/v1/photos/"+id, "application/json", validRecordJSON("Again"))
	checkStatus(t, rec, http.StatusNotFound)
}

func TestUpdatePhoto_Conflict(t *testing.T) {
	env := newTestEnv(t)

	batch := "[" + string(validRecordJSON("A")) + "," + string(validRecordJSON("B")) + "]"
	rec := env.do(t, http.MethodPost, "/api/v1/photos/upload", "application/json", []byte(batch))
	checkStatus(t, rec, http.StatusCreated)
	records := decodeOutcome(t, decodeResponse(t, rec).Data).Records

	rec = env.do(t, http.MethodPut, "/api/v1/photos/"+records[1].ID, "application/json", validRecordJSON("a"))
	checkStatus(t, rec, http.StatusConflict)
	resp := decodeResponse(t, rec)
	if resp.Error == nil || resp.Error.Code != ErrCodeConflict {
		t.Errorf("error = %+v", resp.Error)
	}

	// Replacing a record with its own content is not a conflict.
	rec = env.do(t, http.MethodPut, "/api/v1/photos/"+records[1].ID, "application/json", validRecordJSON("B"))
	checkStatus(t, rec, http.StatusOK)
}

func TestListPhotos(t *testing.T) {
	env := newTestEnv(t)
	env.index.photos = []models.PhotoMetadata{{ID: "2", Title: "Newer"}, {ID: "1", Title: "Older"}}

	rec := env.do(t, http.MethodGet, "/api/v1/photos?limit=1", "", nil)
	checkStatus(t, rec, http.StatusOK)
	resp := decodeResponse(t, rec)
	var photos []models.PhotoMetadata
	if err := json.Unmarshal(resp.Data, &photos); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(photos) != 1 || photos[0].ID != "2" {
		t.Errorf("photos = %+v", photos)
	}
	if resp.Meta == nil || resp.Meta.Count == nil || *resp.Meta.Count != 1 || resp.Meta.Limit != 1 {
		t.Errorf("meta = %+v", resp.Meta)
	}

	rec = env.do(t, http.MethodGet, "/api/v1/photos?limit=9999", "", nil)
	checkStatus(t, rec, http.StatusOK)
	if env.index.lastLim != 50 {
		t.Errorf("limit passed to index = %d, want cap 50", env.index.lastLim)
	}

	env.index.listErr = errBoom
	rec = env.do(t, http.MethodGet, "/api/v1/photos", "", nil)
	checkStatus(t, rec, http.StatusInternalServerError)
}

func TestListPhotos_FileBackend(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/photos?backend=file", "", nil)
	checkStatus(t, rec, http.StatusOK)
	if got := string(decodeResponse(t, rec).Data); got != "[]" {
		t.Errorf("empty file store data = %s, want []", got)
	}

	env.do(t, http.MethodPost, "/api/v1/photos", "application/json", validRecordJSON("Listed"))
	rec = env.do(t, http.MethodGet, "/api/v1/photos?backend=file", "", nil)
	var photos []models.PhotoMetadata
	if err := json.Unmarshal(decodeResponse(t, rec).Data, &photos); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(photos) != 1 || photos[0].Title != "Listed" {
		t.Errorf("photos = %+v", photos)
	}
}

func TestSearchPhotos(t *testing.T) {
	env := newTestEnv(t)
	env.index.photos = []models.PhotoMetadata{{ID: "1", Title: "Sunset Beach"}, {ID: "2", Title: "Forest"}}

	rec := env.do(t, http.MethodGet, "/api/v1/photos/search?q=+sunset+", "", nil)
	checkStatus(t, rec, http.StatusOK)
	if env.index.lastQ != "sunset" {
		t.Errorf("query = %q, want trimmed", env.index.lastQ)
	}
	var photos []models.PhotoMetadata
	if err := json.Unmarshal(decodeResponse(t, rec).Data, &photos); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(photos) != 1 || photos[0].ID != "1" {
		t.Errorf("photos = %+v", photos)
	}

	rec = env.do(t, http.MethodGet, "/api/v1/photos/search", "", nil)
	checkStatus(t, rec, http.StatusOK)
	if got := string(decodeResponse(t, rec).Data); got != "[]" {
		t.Errorf("blank query data = %s, want []", got)
	}
}

func TestTableEndpointsWithoutIndex(t *testing.T) {
	env := newTestEnv(t)
	env.handler.index = nil

	for _, target := range []string{"/api/v1/photos", "/api/v1/photos/search?q=x"} {
		rec := env.do(t, http.MethodGet, target, "", nil)
		checkStatus(t, rec, http.StatusServiceUnavailable)
	}
}
