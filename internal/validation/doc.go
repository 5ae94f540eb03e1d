// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

// Package validation provides struct validation using go-playground/validator v10.
//
// It wraps the library in a thread-safe singleton with the custom tags the
// photo form needs and translates failures into per-field, human-readable
// messages keyed by JSON field name.
//
// # Custom Tags
//
//   - notblank: string must be non-empty after trimming whitespace
//   - isodate: string must parse as YYYY-MM-DD
//   - posint: integer, or decimal-integer string, strictly greater than zero
//
// # Usage
//
//	form := models.PhotoForm{...}
//	if verr := validation.ValidateStruct(&form); verr != nil {
//	    for field, msgs := range verr.FieldMessages() {
//	        // render msgs next to field
//	    }
//	}
//
// Struct validation only covers the typed form. Untrusted JSON records are
// checked by the ingest package, which must accept arbitrary value types.
package validation
