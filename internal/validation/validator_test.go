// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/photometa/internal/models"
)

// ===================================================================================================
// Singleton Validator Tests
// ===================================================================================================

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}

	if v1 == nil {
		t.Error("GetValidator() should not return nil")
	}
}

// ===================================================================================================
// ValidateStruct Tests
// ===================================================================================================

type testForm struct {
	Title  string `json:"title" validate:"required,notblank,max=10"`
	Date   string `json:"date_taken" validate:"required,isodate"`
	Width  string `json:"width" validate:"required,posint"`
	Height int    `json:"height" validate:"posint"`
	Link   string `json:"url" validate:"required,url"`
}

func validTestForm() testForm {
	return testForm{
		Title:  "Sunset",
		Date:   "2024-01-01",
		Width:  "640",
		Height: 480,
		Link:   "https://example.com/a.jpg",
	}
}

func TestValidateStruct_Valid(t *testing.T) {
	form := validTestForm()
	if err := ValidateStruct(&form); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	form.Width = " 12 "
	if err := ValidateStruct(&form); err != nil {
		t.Fatalf("width with surrounding whitespace should pass, got %v", err)
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(f *testForm)
		wantField string
		wantTag   string
	}{
		{"blank title", func(f *testForm) { f.Title = "   " }, "title", "notblank"},
		{"missing title", func(f *testForm) { f.Title = "" }, "title", "required"},
		{"title too long", func(f *testForm) { f.Title = strings.Repeat("x", 11) }, "title", "max"},
		{"bad date", func(f *testForm) { f.Date = "01/02/2024" }, "date_taken", "isodate"},
		{"impossible date", func(f *testForm) { f.Date = "2024-02-30" }, "date_taken", "isodate"},
		{"zero width", func(f *testForm) { f.Width = "0" }, "width", "posint"},
		{"negative width", func(f *testForm) { f.Width = "-5" }, "width", "posint"},
		{"non-numeric width", func(f *testForm) { f.Width = "wide" }, "width", "posint"},
		{"negative height", func(f *testForm) { f.Height = -1 }, "height", "posint"},
		{"bad url", func(f *testForm) { f.Link = "not a url" }, "url", "url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validTestForm()
			tt.mutate(&form)

			err := ValidateStruct(&form)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if len(err.Errors()) != 1 {
				t.Fatalf("expected 1 error, got %d: %v", len(err.Errors()), err)
			}
			got := err.Errors()[0]
			if got.Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", got.Field(), tt.wantField)
			}
			if got.Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", got.Tag(), tt.wantTag)
			}
			if got.Error() == "" {
				t.Error("Error() should not be empty")
			}
		})
	}
}

func TestFieldMessages(t *testing.T) {
	form := testForm{}
	err := ValidateStruct(&form)
	if err == nil {
		t.Fatal("expected validation error for zero-value form")
	}

	msgs := err.FieldMessages()
	for _, field := range []string{"title", "date_taken", "width", "url"} {
		if len(msgs[field]) == 0 {
			t.Errorf("expected messages for field %q, got %v", field, msgs)
		}
	}
	if msgs["title"][0] != "title is required" {
		t.Errorf("title message = %q, want %q", msgs["title"][0], "title is required")
	}
}

func TestRequestValidationError_Error(t *testing.T) {
	empty := &RequestValidationError{}
	if empty.Error() != "validation failed" {
		t.Errorf("empty Error() = %q", empty.Error())
	}

	form := validTestForm()
	form.Title = ""
	form.Width = "0"
	err := ValidateStruct(&form)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "; ") {
		t.Errorf("combined message should join errors with '; ', got %q", err.Error())
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		mutate func(f *testForm)
		want   string
	}{
		{func(f *testForm) { f.Date = "x" }, "date_taken must be a date in YYYY-MM-DD format"},
		{func(f *testForm) { f.Width = "x" }, "width must be a positive integer"},
		{func(f *testForm) { f.Title = strings.Repeat("x", 11) }, "title must be at most 10 characters"},
		{func(f *testForm) { f.Link = "x" }, "url must be a valid URL"},
	}

	for _, tt := range tests {
		form := validTestForm()
		tt.mutate(&form)
		err := ValidateStruct(&form)
		if err == nil {
			t.Fatalf("expected error for %q", tt.want)
		}
		if got := err.Errors()[0].Error(); got != tt.want {
			t.Errorf("message = %q, want %q", got, tt.want)
		}
	}
}

func TestValidateStruct_DateMatchesModelLayout(t *testing.T) {
	form := validTestForm()
	form.Date = time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC).Format(models.DateLayout)
	if err := ValidateStruct(&form); err != nil {
		t.Fatalf("date formatted with models.DateLayout should pass, got %v", err)
	}
}
