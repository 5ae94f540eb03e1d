// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

package ingest

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by stores when an identifier does not resolve.
	ErrNotFound = errors.New("record not found")

	// ErrMalformedInput marks uploaded content that is not a JSON object or array of objects.
	ErrMalformedInput = errors.New("malformed input")

	// ErrUnknownBackend is returned when no store is registered for a backend.
	ErrUnknownBackend = errors.New("unknown backend")
)

// StorageError wraps a failure of the underlying file or table storage.
type StorageError struct {
	Backend Backend
	Op      string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s store: %s failed: %v", e.Backend, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// storageErr wraps err unless it is nil or already a not-found result.
func storageErr(backend Backend, op string, err error) error {
	if err == nil || errors.Is(err, ErrNotFound) {
		return err
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Backend: backend, Op: op, Err: err}
}
