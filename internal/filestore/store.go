// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

package filestore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/photometa/internal/ingest"
	"github.com/tomtom215/photometa/internal/logging"
	"github.com/tomtom215/photometa/internal/models"
)

// ErrCorrupt is returned when the store file is not a JSON object or an
// array of objects. The file is left untouched.
var ErrCorrupt = errors.New("store file is not a JSON array of objects")

// Store is the file backend: one UTF-8 JSON array file, rewritten whole on
// every change. Writes go to a temporary file in the same directory that is
// then renamed over the original, so readers never see a partial file.
//
// Store does not serialize writers itself; ingest.Coordinator holds a
// per-backend lock across read-modify-write.
type Store struct {
	dir  string
	name string
	path string
	now  func() time.Time
}

// New returns a store for dir/name, creating dir if needed. The file itself
// is created on the first write.
func New(dir, name string) (*Store, error) {
	if err := ValidName(name); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create JSON directory: %w", err)
	}
	return &Store{
		dir:  dir,
		name: name,
		path: filepath.Join(dir, name),
		now:  func() time.Time { return time.Now().UTC().Truncate(time.Second) },
	}, nil
}

// Backend implements ingest.Store.
func (s *Store) Backend() ingest.Backend {
	return ingest.BackendFile
}

// Path returns the store file path.
func (s *Store) Path() string {
	return s.path
}

// Name returns the store file base name.
func (s *Store) Name() string {
	return s.name
}

// Read returns every record in the file. A missing or blank file holds no
// records; a bare object is read as a one-element list.
func (s *Store) Read(ctx context.Context) ([]models.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.name, err)
	}
	return decodeRecords(data)
}

// Write replaces the file contents with records. An empty slice writes "[]".
func (s *Store) Write(ctx context.Context, records []models.RawRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodeRecords(records)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, "."+s.name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// No-op once renamed.
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.name, err)
	}

	logging.Debug().Str("file", s.path).Int("records", len(records)).Msg("JSON store rewritten")
	return nil
}

// Snapshot implements ingest.Store.
func (s *Store) Snapshot(ctx context.Context) ([]ingest.Record, error) {
	records, err := s.Read(ctx)
	if err != nil {
		return nil, err
	}
	return ingest.Mappings(records), nil
}

// Candidates implements ingest.Store. The whole file is the candidate set.
func (s *Store) Candidates(ctx context.Context, _ ingest.NaturalKey) ([]ingest.Record, error) {
	return s.Snapshot(ctx)
}

// Get implements ingest.Store.
func (s *Store) Get(ctx context.Context, id string) (models.PhotoMetadata, error) {
	records, err := s.Read(ctx)
	if err != nil {
		return models.PhotoMetadata{}, err
	}
	i := indexOf(records, id)
	if i < 0 {
		return models.PhotoMetadata{}, ingest.ErrNotFound
	}
	return toPhoto(records[i]), nil
}

// List returns every record as an entity, in file order.
func (s *Store) List(ctx context.Context) ([]models.PhotoMetadata, error) {
	records, err := s.Read(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.PhotoMetadata, len(records))
	for i, r := range records {
		out[i] = toPhoto(r)
	}
	return out, nil
}

// Insert implements ingest.Store. New records get a UUID and created_at.
func (s *Store) Insert(ctx context.Context, photos []models.PhotoMetadata) ([]models.PhotoMetadata, error) {
	records, err := s.Read(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]models.PhotoMetadata, len(photos))
	for i, p := range photos {
		p.ID = uuid.NewString()
		p.CreatedAt = now
		records = append(records, p.ToRawRecord())
		out[i] = p
	}

	if err := s.Write(ctx, records); err != nil {
		return nil, err
	}
	return out, nil
}

// Replace implements ingest.Store. The stored id and created_at are kept.
func (s *Store) Replace(ctx context.Context, id string, photo models.PhotoMetadata) (models.PhotoMetadata, error) {
	records, err := s.Read(ctx)
	if err != nil {
		return models.PhotoMetadata{}, err
	}
	i := indexOf(records, id)
	if i < 0 {
		return models.PhotoMetadata{}, ingest.ErrNotFound
	}

	prev := toPhoto(records[i])
	photo.ID = id
	photo.CreatedAt = prev.CreatedAt
	replacement := photo.ToRawRecord()
	if raw, ok := records[i][models.FieldCreatedAt]; ok && prev.CreatedAt.IsZero() {
		replacement[models.FieldCreatedAt] = raw
	}
	records[i] = replacement

	if err := s.Write(ctx, records); err != nil {
		return models.PhotoMetadata{}, err
	}
	return photo, nil
}

// Delete implements ingest.Store.
func (s *Store) Delete(ctx context.Context, id string) error {
	records, err := s.Read(ctx)
	if err != nil {
		return err
	}
	i := indexOf(records, id)
	if i < 0 {
		return ingest.ErrNotFound
	}
	records = append(records[:i], records[i+1:]...)
	return s.Write(ctx, records)
}

func indexOf(records []models.RawRecord, id string) int {
	if id == "" {
		return -1
	}
	for i, r := range records {
		if rid, ok := r.String(models.FieldID); ok && rid == id {
			return i
		}
	}
	return -1
}

// decodeRecords parses a store file. Numbers stay json.Number so the
// duplicate key sees the literal text that was written.
func decodeRecords(data []byte) ([]models.RawRecord, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var root interface{}
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	switch v := root.(type) {
	case map[string]interface{}:
		return []models.RawRecord{v}, nil
	case []interface{}:
		out := make([]models.RawRecord, 0, len(v))
		for i, elem := range v {
			obj, ok := elem.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("%w: element %d is %T", ErrCorrupt, i+1, elem)
			}
			out = append(out, obj)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: root is %T", ErrCorrupt, root)
	}
}

// encodeRecords renders records as a 4-space indented array with non-ASCII
// text and HTML characters written verbatim.
func encodeRecords(records []models.RawRecord) ([]byte, error) {
	if records == nil {
		records = []models.RawRecord{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("failed to encode records: %w", err)
	}
	return buf.Bytes(), nil
}

// toPhoto reads a stored mapping into an entity. Stored files may be edited
// by hand, so wrong-typed values become zero values instead of errors.
func toPhoto(r models.RawRecord) models.PhotoMetadata {
	str := func(f string) string {
		s, _ := r.String(f)
		return s
	}
	p := models.PhotoMetadata{
		ID:           str(models.FieldID),
		Title:        str(models.FieldTitle),
		Photographer: str(models.FieldPhotographer),
		DateTaken:    str(models.FieldDateTaken),
		URL:          str(models.FieldURL),
		Description:  str(models.FieldDescription),
		Location:     str(models.FieldLocation),
		Tags:         str(models.FieldTags),
		Width:        intValue(r[models.FieldWidth]),
		Height:       intValue(r[models.FieldHeight]),
		Camera:       str(models.FieldCamera),
		License:      str(models.FieldLicense),
	}
	if ts := str(models.FieldCreatedAt); ts != "" {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			p.CreatedAt = t
		}
	}
	return p
}

func intValue(v interface{}) int {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
		if f, err := n.Float64(); err == nil {
			return int(f)
		}
	case float64:
		return int(n)
	case int:
		return n
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
	}
	return 0
}
