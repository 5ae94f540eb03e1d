// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/photometa/internal/ingest"
	"github.com/tomtom215/photometa/internal/models"
)

// photoColumns is the SELECT list shared by every read. date_taken is read
// back as text so it keeps the YYYY-MM-DD form.
const photoColumns = `id, title, photographer, CAST(date_taken AS VARCHAR), url, description,
	location, tags, width, height, camera, license, created_at`

// searchColumns are matched by Search, case-insensitively.
var searchColumns = []string{
	"title", "photographer", "description", "location", "camera", "license", "tags",
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPhoto(s rowScanner) (models.PhotoMetadata, error) {
	var (
		p  models.PhotoMetadata
		id int64
	)
	err := s.Scan(&id, &p.Title, &p.Photographer, &p.DateTaken, &p.URL, &p.Description,
		&p.Location, &p.Tags, &p.Width, &p.Height, &p.Camera, &p.License, &p.CreatedAt)
	if err != nil {
		return models.PhotoMetadata{}, err
	}
	p.ID = strconv.FormatInt(id, 10)
	p.CreatedAt = p.CreatedAt.UTC()
	return p, nil
}

// queryPhotos runs a SELECT and scans every row.
func (db *DB) queryPhotos(ctx context.Context, query string, args ...interface{}) ([]models.PhotoMetadata, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query photos: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var photos []models.PhotoMetadata
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate photos: %w", err)
	}
	return photos, nil
}

// parseID converts a public identifier to a row id. Anything that is not a
// positive integer cannot name a row.
func parseID(id string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// AllPhotos returns every stored row in id order.
func (db *DB) AllPhotos(ctx context.Context) ([]models.PhotoMetadata, error) {
	return db.queryPhotos(ctx, `SELECT `+photoColumns+` FROM photo_metadata ORDER BY id`)
}

// PhotoCandidates returns rows sharing the natural key's date whose title and
// photographer contain the key's parts, ignoring case. The result is a
// superset of the rows whose canonical key could equal one with this natural key.
func (db *DB) PhotoCandidates(ctx context.Context, nk ingest.NaturalKey) ([]models.PhotoMetadata, error) {
	return db.queryPhotos(ctx, `SELECT `+photoColumns+` FROM photo_metadata
		WHERE date_taken = CAST(? AS DATE)
		  AND contains(lower(title), lower(?))
		  AND contains(lower(photographer), lower(?))
		ORDER BY id`,
		nk.DateTaken, nk.Title, nk.Photographer)
}

// GetPhoto returns one row, or ingest.ErrNotFound.
func (db *DB) GetPhoto(ctx context.Context, id string) (models.PhotoMetadata, error) {
	rowID, ok := parseID(id)
	if !ok {
		return models.PhotoMetadata{}, ingest.ErrNotFound
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	row := db.conn.QueryRowContext(ctx, `SELECT `+photoColumns+` FROM photo_metadata WHERE id = ?`, rowID)
	p, err := scanPhoto(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PhotoMetadata{}, ingest.ErrNotFound
	}
	if err != nil {
		return models.PhotoMetadata{}, fmt.Errorf("failed to get photo %s: %w", id, err)
	}
	return p, nil
}

// InsertPhotos writes all photos in one transaction and returns them with
// id and created_at assigned.
func (db *DB) InsertPhotos(ctx context.Context, photos []models.PhotoMetadata) ([]models.PhotoMetadata, error) {
	if len(photos) == 0 {
		return nil, nil
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollbackQuietly(tx)

	// TIMESTAMP holds microseconds; truncating keeps the returned value equal to a read-back.
	createdAt := db.now().UTC().Truncate(time.Microsecond)

	out := make([]models.PhotoMetadata, len(photos))
	for i := range photos {
		p := photos[i]
		var id int64
		err := tx.QueryRowContext(ctx, `INSERT INTO photo_metadata (
				title, photographer, date_taken, url, description, location,
				tags, width, height, camera, license, created_at
			) VALUES (?, ?, CAST(? AS DATE), ?, ?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING id`,
			p.Title, p.Photographer, p.DateTaken, p.URL, p.Description, p.Location,
			p.Tags, p.Width, p.Height, p.Camera, p.License, createdAt,
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("failed to insert photo %d: %w", i+1, err)
		}
		p.ID = strconv.FormatInt(id, 10)
		p.CreatedAt = createdAt
		out[i] = p
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit photos: %w", err)
	}
	return out, nil
}

// ReplacePhoto overwrites every semantic column of one row.
func (db *DB) ReplacePhoto(ctx context.Context, id string, p models.PhotoMetadata) (models.PhotoMetadata, error) {
	rowID, ok := parseID(id)
	if !ok {
		return models.PhotoMetadata{}, ingest.ErrNotFound
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	res, err := db.conn.ExecContext(ctx, `UPDATE photo_metadata SET
			title = ?, photographer = ?, date_taken = CAST(? AS DATE), url = ?,
			description = ?, location = ?, tags = ?, width = ?, height = ?,
			camera = ?, license = ?
		WHERE id = ?`,
		p.Title, p.Photographer, p.DateTaken, p.URL, p.Description, p.Location,
		p.Tags, p.Width, p.Height, p.Camera, p.License, rowID)
	if err != nil {
		return models.PhotoMetadata{}, fmt.Errorf("failed to update photo %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.PhotoMetadata{}, fmt.Errorf("failed to read update result: %w", err)
	}
	if n == 0 {
		return models.PhotoMetadata{}, ingest.ErrNotFound
	}

	return db.GetPhoto(ctx, id)
}

// DeletePhoto removes one row.
func (db *DB) DeletePhoto(ctx context.Context, id string) error {
	rowID, ok := parseID(id)
	if !ok {
		return ingest.ErrNotFound
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	res, err := db.conn.ExecContext(ctx, `DELETE FROM photo_metadata WHERE id = ?`, rowID)
	if err != nil {
		return fmt.Errorf("failed to delete photo %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if n == 0 {
		return ingest.ErrNotFound
	}
	return nil
}

// ListPhotos returns up to limit rows, newest first.
func (db *DB) ListPhotos(ctx context.Context, limit int) ([]models.PhotoMetadata, error) {
	if limit <= 0 {
		return nil, nil
	}
	return db.queryPhotos(ctx, `SELECT `+photoColumns+` FROM photo_metadata
		ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
}

// SearchPhotos returns up to limit rows, newest first, where any text column
// contains q ignoring case. A blank query matches nothing.
func (db *DB) SearchPhotos(ctx context.Context, q string, limit int) ([]models.PhotoMetadata, error) {
	q = strings.TrimSpace(q)
	if q == "" || limit <= 0 {
		return nil, nil
	}

	conds := make([]string, len(searchColumns))
	args := make([]interface{}, 0, len(searchColumns)+1)
	for i, col := range searchColumns {
		conds[i] = "contains(lower(" + col + "), lower(?))"
		args = append(args, q)
	}
	args = append(args, limit)

	return db.queryPhotos(ctx, `SELECT `+photoColumns+` FROM photo_metadata
		WHERE `+strings.Join(conds, " OR ")+`
		ORDER BY created_at DESC, id DESC LIMIT ?`, args...)
}

// CountPhotos returns the number of stored rows.
func (db *DB) CountPhotos(ctx context.Context) (int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var n int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM photo_metadata`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count photos: %w", err)
	}
	return n, nil
}
