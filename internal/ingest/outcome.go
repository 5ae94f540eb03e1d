// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

package ingest

import (
	"strings"

	"github.com/tomtom215/photometa/internal/models"
)

// Status is the result category of a coordinator operation.
type Status string

const (
	StatusAdmitted          Status = "admitted"
	StatusPartiallyAdmitted Status = "partially_admitted"
	StatusDuplicate         Status = "duplicate"
	StatusInvalid           Status = "invalid"
	StatusMalformed         Status = "malformed"
	StatusNotFound          Status = "not_found"
	StatusConflict          Status = "conflict"
	StatusUpdated           Status = "updated"
	StatusDeleted           Status = "deleted"
	StatusStorageFailure    Status = "storage_failure"
)

// OK reports whether the operation changed or confirmed the store as requested.
// A duplicate rejection is a normal business outcome but not OK.
func (s Status) OK() bool {
	switch s {
	case StatusAdmitted, StatusPartiallyAdmitted, StatusUpdated, StatusDeleted:
		return true
	default:
		return false
	}
}

// Outcome is the structured result of every coordinator operation. Failures
// never escape as panics or bare errors; Err holds the cause of a storage
// failure or malformed input.
type Outcome struct {
	Status      Status                 `json:"status"`
	Backend     Backend                `json:"backend"`
	Message     string                 `json:"message"`
	Added       int                    `json:"added"`
	Skipped     int                    `json:"skipped"`
	Diagnostics Diagnostics            `json:"diagnostics,omitempty"`
	FieldErrors map[string][]string    `json:"field_errors,omitempty"`
	Records     []models.PhotoMetadata `json:"records,omitempty"`
	Err         error                  `json:"-"`
}

// OK is shorthand for o.Status.OK().
func (o *Outcome) OK() bool {
	return o.Status.OK()
}

// fieldErrors groups diagnostic messages by field. A diagnostic naming
// several fields ("width,height") is listed under each of them.
func fieldErrors(diags Diagnostics) map[string][]string {
	if len(diags) == 0 {
		return nil
	}
	out := make(map[string][]string)
	for _, d := range diags {
		for _, f := range strings.Split(d.Field, ",") {
			out[f] = append(out[f], d.Message)
		}
	}
	return out
}
