// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

package models

import (
	"testing"
	"time"
)

func TestPhotoMetadata_ToRawRecord(t *testing.T) {
	p := PhotoMetadata{
		Title:     "Sunset",
		DateTaken: "2024-01-01",
		Width:     640,
		Height:    480,
	}

	raw := p.ToRawRecord()
	if raw.Has(FieldID) || raw.Has(FieldCreatedAt) {
		t.Errorf("unassigned storage fields should be omitted: %v", raw)
	}
	for _, f := range RequiredFields {
		if !raw.Has(f) {
			t.Errorf("missing field %q", f)
		}
	}
	if raw[FieldWidth] != 640 {
		t.Errorf("width = %v (%T), want int 640", raw[FieldWidth], raw[FieldWidth])
	}

	p.ID = "abc"
	p.CreatedAt = time.Date(2024, 3, 4, 5, 6, 7, 0, time.FixedZone("X", 3600))
	raw = p.ToRawRecord()
	if id, _ := raw.String(FieldID); id != "abc" {
		t.Errorf("id = %v", raw[FieldID])
	}
	if ts, _ := raw.String(FieldCreatedAt); ts != "2024-03-04T04:06:07Z" {
		t.Errorf("created_at = %v, want UTC RFC3339", raw[FieldCreatedAt])
	}
}

func TestRawRecord_Accessors(t *testing.T) {
	raw := RawRecord{FieldTitle: "x", FieldTags: nil, FieldWidth: 3}

	if !raw.Has(FieldTags) {
		t.Error("a present null value should count as present")
	}
	if raw.Has(FieldCamera) {
		t.Error("absent field reported present")
	}
	if s, ok := raw.String(FieldTitle); !ok || s != "x" {
		t.Errorf("String(title) = %q, %v", s, ok)
	}
	if _, ok := raw.String(FieldWidth); ok {
		t.Error("String should reject non-string values")
	}
}

func TestPhotoForm_ToRawRecord(t *testing.T) {
	f := PhotoForm{Title: "T", Width: "10", Height: "20"}
	raw := f.ToRawRecord()
	if len(raw) != len(RequiredFields) {
		t.Errorf("form record has %d fields, want %d", len(raw), len(RequiredFields))
	}
	if raw[FieldWidth] != "10" {
		t.Errorf("width = %v, want text kept for coercion", raw[FieldWidth])
	}
}

func TestPhotoMetadata_String(t *testing.T) {
	p := PhotoMetadata{Title: "Sunset", DateTaken: "2024-01-01"}
	if got := p.String(); got != "Sunset (2024-01-01)" {
		t.Errorf("String() = %q", got)
	}
}
