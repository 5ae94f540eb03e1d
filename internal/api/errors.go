// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/photometa/internal/ingest"
)

// ErrIndexUnavailable is returned by table-only endpoints when no table backend is configured.
var ErrIndexUnavailable = errors.New("table backend is not configured")

// outcomeStatus maps a coordinator status to an HTTP status code and error code.
// The error code is empty for successful outcomes.
func outcomeStatus(s ingest.Status) (int, string) {
	switch s {
	case ingest.StatusAdmitted, ingest.StatusPartiallyAdmitted:
		return http.StatusCreated, ""
	case ingest.StatusUpdated, ingest.StatusDeleted:
		return http.StatusOK, ""
	case ingest.StatusInvalid:
		return http.StatusBadRequest, ErrCodeValidationFailed
	case ingest.StatusMalformed:
		return http.StatusBadRequest, ErrCodeMalformedInput
	case ingest.StatusDuplicate:
		return http.StatusConflict, ErrCodeDuplicate
	case ingest.StatusConflict:
		return http.StatusConflict, ErrCodeConflict
	case ingest.StatusNotFound:
		return http.StatusNotFound, ErrCodeNotFound
	default:
		return http.StatusInternalServerError, ErrCodeStorageError
	}
}

// writeOutcome renders a coordinator outcome. Failed outcomes carry the full
// outcome as error details so clients can show per-field diagnostics.
func writeOutcome(w http.ResponseWriter, r *http.Request, o *ingest.Outcome) {
	rw := NewResponseWriter(w, r)
	code, errCode := outcomeStatus(o.Status)
	if errCode == "" {
		rw.SuccessWithStatus(code, o, nil)
		return
	}
	rw.ErrorWithDetails(code, errCode, o.Message, o)
}
