// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

package filestore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/photometa/internal/models"
)

// ErrInvalidName is returned for file names that are not a plain *.json base name.
var ErrInvalidName = errors.New("invalid JSON file name")

// FileInfo describes one JSON file in the store directory.
type FileInfo struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// ValidName accepts base names ending in .json that cannot leave the directory.
func ValidName(name string) error {
	switch {
	case name == "", name == ".json":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case filepath.Base(name) != name, strings.ContainsAny(name, `/\`), strings.HasPrefix(name, "."):
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case !strings.EqualFold(filepath.Ext(name), ".json"):
		return fmt.Errorf("%w: %q must end in .json", ErrInvalidName, name)
	}
	return nil
}

// ListFiles returns the JSON files directly inside dir, sorted by name.
// A missing directory holds no files.
func ListFiles(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return []FileInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list JSON directory: %w", err)
	}

	files := make([]FileInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || ValidName(e.Name()) != nil {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{Name: e.Name(), Size: info.Size(), ModTime: info.ModTime().UTC()})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// ReadFile returns the records of one JSON file in dir. It returns
// os.ErrNotExist (wrapped) if the file is absent and ErrCorrupt if it does
// not hold JSON records.
func ReadFile(dir, name string) ([]models.RawRecord, error) {
	if err := ValidName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	records, err := decodeRecords(data)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.RawRecord{}
	}
	return records, nil
}
