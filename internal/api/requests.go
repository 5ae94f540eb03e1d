// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

package api

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/photometa/internal/ingest"
	"github.com/tomtom215/photometa/internal/models"
)

const (
	defaultMaxUploadBytes = 10 << 20
	defaultSearchLimit    = 200

	// multipartMemory bounds the in-memory part of a parsed multipart body.
	multipartMemory = 8 << 20

	uploadField = "file"
)

var (
	errEmptyUpload    = errors.New("no file uploaded")
	errBodyNotObject  = errors.New("request body must be a JSON object")
	errUploadTooLarge = errors.New("upload exceeds the configured size limit")
)

// backendParam resolves the ?backend= query parameter.
func (h *Handler) backendParam(r *http.Request) (ingest.Backend, error) {
	return ingest.ParseBackend(r.URL.Query().Get("backend"), h.cfg.DefaultBackend)
}

// limitParam parses ?limit=, capped at ceiling. Missing or invalid values yield ceiling.
func limitParam(r *http.Request, ceiling int) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 || n > ceiling {
		return ceiling
	}
	return n
}

// isJSON reports whether the request declares a JSON body.
func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

func isMultipart(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "multipart/form-data"
}

// decodeRecord reads a single JSON object from the body. Numbers keep their
// literal text so the validator and normalizer see them unchanged.
func decodeRecord(r io.Reader) (models.RawRecord, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ingest.ErrMalformedInput, err)
	}
	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: %v", ingest.ErrMalformedInput, errBodyNotObject)
	}
	return obj, nil
}

// formFromValues builds a typed form submission from urlencoded fields.
func formFromValues(v url.Values) models.PhotoForm {
	return models.PhotoForm{
		Title:        v.Get(models.FieldTitle),
		Photographer: v.Get(models.FieldPhotographer),
		DateTaken:    v.Get(models.FieldDateTaken),
		URL:          v.Get(models.FieldURL),
		Description:  v.Get(models.FieldDescription),
		Location:     v.Get(models.FieldLocation),
		Tags:         v.Get(models.FieldTags),
		Width:        v.Get(models.FieldWidth),
		Height:       v.Get(models.FieldHeight),
		Camera:       v.Get(models.FieldCamera),
		License:      v.Get(models.FieldLicense),
	}
}

// readUpload returns the uploaded document: the "file" part of a multipart
// body, or the raw body otherwise. The body is capped at MaxUploadBytes.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)

	var src io.Reader = r.Body
	if isMultipart(r) {
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return nil, tooLarge(err)
		}
		file, _, err := r.FormFile(uploadField)
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) {
				return nil, errEmptyUpload
			}
			return nil, err
		}
		defer func() { _ = file.Close() }()
		src = file
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, tooLarge(err)
	}
	if len(data) == 0 {
		return nil, errEmptyUpload
	}
	return data, nil
}

func tooLarge(err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return errUploadTooLarge
	}
	return err
}
