// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/photometa/internal/models"
)

// noneSentinel is the canonical text of an absent or null date/dimension value.
const noneSentinel = "<none>"

// Key is the canonical, comparable form of a record's 11 semantic fields.
// Two records are duplicates iff their keys are equal.
type Key struct {
	Title        string
	Photographer string
	DateTaken    string
	Description  string
	Location     string
	Camera       string
	License      string
	Width        string
	Height       string
	URL          string
	Tags         string
}

// NaturalKey narrows candidate sets in the table backend. It is never the
// duplicate criterion on its own.
type NaturalKey struct {
	Title        string
	Photographer string
	DateTaken    string
}

// Record is anything readable as a canonical record: a stored table entity
// or a mapping read from a JSON file.
type Record interface {
	// Key returns the canonical comparison key. It never fails.
	Key() Key
	// RecordID returns the storage-assigned identifier, or "" if none.
	RecordID() string
}

// EntityRecord adapts a typed entity to Record.
type EntityRecord struct {
	Photo models.PhotoMetadata
}

// Key implements Record.
func (e EntityRecord) Key() Key {
	p := e.Photo
	return Key{
		Title:        normalizeText(p.Title),
		Photographer: normalizeText(p.Photographer),
		DateTaken:    p.DateTaken,
		Description:  normalizeText(p.Description),
		Location:     normalizeText(p.Location),
		Camera:       normalizeText(p.Camera),
		License:      normalizeText(p.License),
		Width:        strconv.Itoa(p.Width),
		Height:       strconv.Itoa(p.Height),
		URL:          normalizeText(p.URL),
		Tags:         normalizeText(p.Tags),
	}
}

// RecordID implements Record.
func (e EntityRecord) RecordID() string {
	return e.Photo.ID
}

// MapRecord adapts an untyped field mapping to Record.
type MapRecord struct {
	Raw models.RawRecord
}

// Key implements Record.
func (m MapRecord) Key() Key {
	return Key{
		Title:        normalizeText(textValue(m.Raw, models.FieldTitle)),
		Photographer: normalizeText(textValue(m.Raw, models.FieldPhotographer)),
		DateTaken:    literalValue(m.Raw, models.FieldDateTaken),
		Description:  normalizeText(textValue(m.Raw, models.FieldDescription)),
		Location:     normalizeText(textValue(m.Raw, models.FieldLocation)),
		Camera:       normalizeText(textValue(m.Raw, models.FieldCamera)),
		License:      normalizeText(textValue(m.Raw, models.FieldLicense)),
		Width:        literalValue(m.Raw, models.FieldWidth),
		Height:       literalValue(m.Raw, models.FieldHeight),
		URL:          normalizeText(textValue(m.Raw, models.FieldURL)),
		Tags:         normalizeText(textValue(m.Raw, models.FieldTags)),
	}
}

// RecordID implements Record. Only string identifiers are recognized.
func (m MapRecord) RecordID() string {
	id, _ := m.Raw.String(models.FieldID)
	return id
}

// Entities wraps typed entities as Records.
func Entities(photos []models.PhotoMetadata) []Record {
	out := make([]Record, len(photos))
	for i := range photos {
		out[i] = EntityRecord{Photo: photos[i]}
	}
	return out
}

// Mappings wraps raw mappings as Records.
func Mappings(raws []models.RawRecord) []Record {
	out := make([]Record, len(raws))
	for i := range raws {
		out[i] = MapRecord{Raw: raws[i]}
	}
	return out
}

// NaturalKeyOf extracts the natural key of a validated record. Text parts are
// trimmed but keep their case; the table backend compares case-insensitively.
func NaturalKeyOf(p *models.PhotoMetadata) NaturalKey {
	return NaturalKey{
		Title:        strings.TrimSpace(p.Title),
		Photographer: strings.TrimSpace(p.Photographer),
		DateTaken:    p.DateTaken,
	}
}

// normalizeText trims surrounding whitespace and lower-cases.
func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// textValue returns a text field as a string; absent fields become "".
// A present null stringifies to the sentinel, matching literalValue.
func textValue(raw models.RawRecord, field string) string {
	v, ok := raw[field]
	if !ok {
		return ""
	}
	return stringify(v)
}

// literalValue stringifies a date or dimension value as-is; absent fields
// become the sentinel.
func literalValue(raw models.RawRecord, field string) string {
	v, ok := raw[field]
	if !ok {
		return noneSentinel
	}
	return stringify(v)
}

// stringify renders a decoded JSON value as text without coercion.
func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return noneSentinel
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
