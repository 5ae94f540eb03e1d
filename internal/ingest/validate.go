// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/photometa/internal/models"
)

// dimensionsField is the Field label of diagnostics covering width and height together.
const dimensionsField = "width,height"

// requiredTextFields must be non-empty strings after trimming.
var requiredTextFields = []string{
	models.FieldTitle, models.FieldPhotographer, models.FieldDescription,
	models.FieldLocation, models.FieldCamera, models.FieldLicense, models.FieldURL,
}

// Diagnostic is one validation failure, attributed to a 1-based input position.
type Diagnostic struct {
	Index   int    `json:"index"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// String renders the diagnostic as "record N: message".
func (d Diagnostic) String() string {
	return fmt.Sprintf("record %d: %s", d.Index, d.Message)
}

// Diagnostics is an ordered diagnostic list for a batch.
type Diagnostics []Diagnostic

// ForIndex returns the diagnostics attributed to one input position.
func (ds Diagnostics) ForIndex(index int) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Index == index {
			out = append(out, d)
		}
	}
	return out
}

// Fields returns the distinct field labels in first-seen order.
func (ds Diagnostics) Fields() []string {
	seen := make(map[string]bool, len(ds))
	var out []string
	for _, d := range ds {
		if !seen[d.Field] {
			seen[d.Field] = true
			out = append(out, d.Field)
		}
	}
	return out
}

// Strings renders every diagnostic with String.
func (ds Diagnostics) Strings() []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.String()
	}
	return out
}

// ValidateBatch checks untrusted records in order and returns the accepted
// ones (width/height coerced to int, date_taken in ISO form) together with
// every diagnostic. A record is accepted iff it produced zero diagnostics.
// Accepted records carry no identifier or timestamp; extra keys are dropped.
func ValidateBatch(records []models.RawRecord) ([]models.PhotoMetadata, Diagnostics) {
	var (
		accepted []models.PhotoMetadata
		diags    Diagnostics
	)

	for i, record := range records {
		photo, recordDiags := validateOne(i+1, record)
		if len(recordDiags) > 0 {
			diags = append(diags, recordDiags...)
			continue
		}
		accepted = append(accepted, photo)
	}

	return accepted, diags
}

// ValidateRecord is the single-record variant of ValidateBatch.
func ValidateRecord(record models.RawRecord) (models.PhotoMetadata, Diagnostics) {
	return validateOne(1, record)
}

func validateOne(index int, record models.RawRecord) (models.PhotoMetadata, Diagnostics) {
	var diags Diagnostics
	add := func(field, format string, args ...interface{}) {
		diags = append(diags, Diagnostic{Index: index, Field: field, Message: fmt.Sprintf(format, args...)})
	}

	var missing []string
	for _, f := range models.RequiredFields {
		if !record.Has(f) {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		diags = append(diags, Diagnostic{
			Index:   index,
			Field:   strings.Join(missing, ","),
			Message: "missing fields: " + strings.Join(missing, ", "),
		})
		return models.PhotoMetadata{}, diags
	}

	for _, f := range requiredTextFields {
		s, ok := record.String(f)
		if !ok || strings.TrimSpace(s) == "" {
			add(f, "field '%s' is empty or not a string", f)
		}
	}

	tags, ok := record.String(models.FieldTags)
	if !ok {
		add(models.FieldTags, "field 'tags' must be a string (comma-separated)")
	}

	width, werr := coerceInt(record[models.FieldWidth])
	height, herr := coerceInt(record[models.FieldHeight])
	switch {
	case werr != nil || herr != nil:
		add(dimensionsField, "invalid width/height values")
	case width <= 0 || height <= 0:
		add(dimensionsField, "width and height must be > 0")
	}

	dateTaken, derr := parseISODate(record[models.FieldDateTaken])
	if derr != nil {
		add(models.FieldDateTaken, "field 'date_taken' must be in YYYY-MM-DD format")
	}

	if len(diags) > 0 {
		return models.PhotoMetadata{}, diags
	}

	title, _ := record.String(models.FieldTitle)
	photographer, _ := record.String(models.FieldPhotographer)
	description, _ := record.String(models.FieldDescription)
	location, _ := record.String(models.FieldLocation)
	camera, _ := record.String(models.FieldCamera)
	license, _ := record.String(models.FieldLicense)
	url, _ := record.String(models.FieldURL)

	return models.PhotoMetadata{
		Title:        title,
		Photographer: photographer,
		DateTaken:    dateTaken,
		URL:          url,
		Description:  description,
		Location:     location,
		Tags:         tags,
		Width:        width,
		Height:       height,
		Camera:       camera,
		License:      license,
	}, nil
}

// coerceInt converts a decoded JSON value to an int. Numbers truncate toward
// zero; strings must hold a base-10 integer. Booleans and null are rejected.
func coerceInt(v interface{}) (int, error) {
	switch val := v.(type) {
	case int:
		return int64ToInt(int64(val))
	case int64:
		return int64ToInt(val)
	case float64:
		return floatToInt(val)
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return int64ToInt(n)
		}
		f, err := val.Float64()
		if err != nil {
			return 0, err
		}
		return floatToInt(f)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil {
			return 0, err
		}
		return int64ToInt(n)
	default:
		return 0, fmt.Errorf("cannot convert %T to int", v)
	}
}

// Dimensions are stored as 32-bit integers.
func int64ToInt(n int64) (int, error) {
	if n > math.MaxInt32 || n < math.MinInt32 {
		return 0, fmt.Errorf("value %d out of integer range", n)
	}
	return int(n), nil
}

func floatToInt(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Errorf("value %v out of integer range", f)
	}
	return int(f), nil
}

// parseISODate accepts a YYYY-MM-DD string and returns it in canonical form.
func parseISODate(v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("date_taken is %T, not a string", v)
	}
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return "", err
	}
	return t.Format(models.DateLayout), nil
}
