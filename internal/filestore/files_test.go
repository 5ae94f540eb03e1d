// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

package filestore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestValidName(t *testing.T) {
	valid := []string{"photos.json", "batch-2024.JSON", "a b.json"}
	invalid := []string{"", ".json", "../photos.json", "dir/photos.json", `dir\photos.json`, ".hidden.json", "photos.txt", "photos"}

	for _, name := range valid {
		if err := ValidName(name); err != nil {
			t.Errorf("ValidName(%q) = %v, want nil", name, err)
		}
	}
	for _, name := range invalid {
		if err := ValidName(name); !errors.Is(err, ErrInvalidName) {
			t.Errorf("ValidName(%q) = %v, want ErrInvalidName", name, err)
		}
	}
}

func TestNew_RejectsBadName(t *testing.T) {
	if _, err := New(t.TempDir(), "../escape.json"); !errors.Is(err, ErrInvalidName) {
		t.Errorf("New err = %v, want ErrInvalidName", err)
	}
}

func TestListFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.json", "a.json", "notes.txt", ".a.json.123.tmp"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("[]"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0o750); err != nil {
		t.Fatal(err)
	}

	files, err := ListFiles(dir)
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if len(files) != 2 || files[0].Name != "a.json" || files[1].Name != "b.json" {
		t.Errorf("ListFiles = %+v", files)
	}
	if files[0].Size != 2 {
		t.Errorf("Size = %d, want 2", files[0].Size)
	}
}

func TestListFiles_MissingDir(t *testing.T) {
	files, err := ListFiles(filepath.Join(t.TempDir(), "absent"))
	if err != nil || len(files) != 0 {
		t.Errorf("files=%v err=%v", files, err)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "one.json"), []byte(`[{"title":"A"},{"title":"B"}]`), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte(`nope`), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "empty.json"), nil, 0o600); err != nil {
		t.Fatal(err)
	}

	records, err := ReadFile(dir, "one.json")
	if err != nil || len(records) != 2 {
		t.Fatalf("records=%v err=%v", records, err)
	}

	if _, err := ReadFile(dir, "bad.json"); !errors.Is(err, ErrCorrupt) {
		t.Errorf("bad.json err = %v, want ErrCorrupt", err)
	}
	if _, err := ReadFile(dir, "missing.json"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing.json err = %v, want ErrNotExist", err)
	}
	if _, err := ReadFile(dir, "../one.json"); !errors.Is(err, ErrInvalidName) {
		t.Errorf("traversal err = %v, want ErrInvalidName", err)
	}
	empty, err := ReadFile(dir, "empty.json")
	if err != nil || empty == nil || len(empty) != 0 {
		t.Errorf("empty.json: records=%v err=%v", empty, err)
	}
}
