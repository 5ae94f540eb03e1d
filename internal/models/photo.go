// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

package models

import (
	"time"
)

// Field names of the photo metadata record as they appear in JSON input,
// JSON files and table columns.
const (
	FieldTitle        = "title"
	FieldPhotographer = "photographer"
	FieldDateTaken    = "date_taken"
	FieldURL          = "url"
	FieldDescription  = "description"
	FieldLocation     = "location"
	FieldTags         = "tags"
	FieldWidth        = "width"
	FieldHeight       = "height"
	FieldCamera       = "camera"
	FieldLicense      = "license"

	// Storage-assigned fields. Never part of duplicate comparison.
	FieldID        = "id"
	FieldCreatedAt = "created_at"
)

// DateLayout is the canonical ISO-8601 calendar date layout for date_taken.
const DateLayout = "2006-01-02"

// RequiredFields lists every semantic field in the order used for
// "missing fields" diagnostics.
var RequiredFields = []string{
	FieldTitle, FieldPhotographer, FieldDateTaken, FieldDescription, FieldLocation,
	FieldTags, FieldWidth, FieldHeight, FieldCamera, FieldLicense, FieldURL,
}

// PhotoMetadata is a stored photo metadata record.
//
// ID and CreatedAt are assigned by the backend on admission. The table backend
// uses a numeric sequence rendered as a string; the file backend uses a UUID.
// DateTaken always holds the ISO form (YYYY-MM-DD).
type PhotoMetadata struct {
	ID           string    `json:"id,omitempty"`
	Title        string    `json:"title"`
	Photographer string    `json:"photographer"`
	DateTaken    string    `json:"date_taken"`
	URL          string    `json:"url"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	Tags         string    `json:"tags"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	Camera       string    `json:"camera"`
	License      string    `json:"license"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// String returns a short human label, e.g. "Sunset (2024-01-01)".
func (p *PhotoMetadata) String() string {
	return p.Title + " (" + p.DateTaken + ")"
}

// ToRawRecord converts the record to its JSON file representation.
// Storage-assigned fields are included only when set.
func (p *PhotoMetadata) ToRawRecord() RawRecord {
	raw := RawRecord{
		FieldTitle:        p.Title,
		FieldPhotographer: p.Photographer,
		FieldDateTaken:    p.DateTaken,
		FieldURL:          p.URL,
		FieldDescription:  p.Description,
		FieldLocation:     p.Location,
		FieldTags:         p.Tags,
		FieldWidth:        p.Width,
		FieldHeight:       p.Height,
		FieldCamera:       p.Camera,
		FieldLicense:      p.License,
	}
	if p.ID != "" {
		raw[FieldID] = p.ID
	}
	if !p.CreatedAt.IsZero() {
		raw[FieldCreatedAt] = p.CreatedAt.UTC().Format(time.RFC3339)
	}
	return raw
}

// RawRecord is an untrusted field->value mapping, as decoded from uploaded
// JSON or read from a JSON store file. Values keep their decoded JSON types.
type RawRecord map[string]interface{}

// Has reports whether the field key is present, regardless of its value.
func (r RawRecord) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// String returns the value of a field if it is a string.
func (r RawRecord) String(field string) (string, bool) {
	s, ok := r[field].(string)
	return s, ok
}

// PhotoForm is a typed single-record submission, as posted by the web form.
// Width and Height arrive as text and are coerced during validation.
type PhotoForm struct {
	Title        string `json:"title" validate:"required,notblank,max=200"`
	Photographer string `json:"photographer" validate:"required,notblank,max=200"`
	DateTaken    string `json:"date_taken" validate:"required,isodate"`
	URL          string `json:"url" validate:"required,url"`
	Description  string `json:"description" validate:"required,notblank"`
	Location     string `json:"location" validate:"required,notblank,max=200"`
	Tags         string `json:"tags"`
	Width        string `json:"width" validate:"required,posint"`
	Height       string `json:"height" validate:"required,posint"`
	Camera       string `json:"camera" validate:"required,notblank,max=200"`
	License      string `json:"license" validate:"required,notblank,max=200"`
}

// ToRawRecord converts the form into a mapping suitable for the record validator.
func (f *PhotoForm) ToRawRecord() RawRecord {
	return RawRecord{
		FieldTitle:        f.Title,
		FieldPhotographer: f.Photographer,
		FieldDateTaken:    f.DateTaken,
		FieldURL:          f.URL,
		FieldDescription:  f.Description,
		FieldLocation:     f.Location,
		FieldTags:         f.Tags,
		FieldWidth:        f.Width,
		FieldHeight:       f.Height,
		FieldCamera:       f.Camera,
		FieldLicense:      f.License,
	}
}
