// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/photometa/internal/logging"
	"github.com/tomtom215/photometa/internal/metrics"
	"github.com/tomtom215/photometa/internal/models"
	"github.com/tomtom215/photometa/internal/validation"
)

// Options tunes coordinator behavior.
type Options struct {
	// IntraBatchDedup also rejects a batch record that duplicates a record
	// admitted earlier in the same batch. When false, each record is checked
	// only against the population as it stood before the batch.
	IntraBatchDedup bool
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{IntraBatchDedup: true}
}

// Coordinator runs validate -> deduplicate -> admit against a chosen backend.
//
// Each backend has its own mutex held from the snapshot read through the
// write, so concurrent submissions to one store cannot lose updates.
type Coordinator struct {
	opts   Options
	stores map[Backend]Store
	locks  map[Backend]*sync.Mutex
}

// NewCoordinator registers one store per backend.
func NewCoordinator(opts Options, stores ...Store) (*Coordinator, error) {
	c := &Coordinator{
		opts:   opts,
		stores: make(map[Backend]Store, len(stores)),
		locks:  make(map[Backend]*sync.Mutex, len(stores)),
	}
	for _, s := range stores {
		if s == nil {
			return nil, errors.New("nil store")
		}
		b := s.Backend()
		if _, dup := c.stores[b]; dup {
			return nil, fmt.Errorf("store for backend %q registered twice", b)
		}
		c.stores[b] = s
		c.locks[b] = &sync.Mutex{}
	}
	return c, nil
}

// Backends returns the registered backends.
func (c *Coordinator) Backends() []Backend {
	out := make([]Backend, 0, len(c.stores))
	for _, b := range []Backend{BackendTable, BackendFile} {
		if _, ok := c.stores[b]; ok {
			out = append(out, b)
		}
	}
	return out
}

// Submit admits a typed form submission. Struct-level form rules run first,
// then the same record rules as every other path.
func (c *Coordinator) Submit(ctx context.Context, backend Backend, form models.PhotoForm) *Outcome {
	if verr := validation.ValidateStruct(&form); verr != nil {
		var diags Diagnostics
		for _, fe := range verr.Errors() {
			diags = append(diags, Diagnostic{Index: 1, Field: fe.Field(), Message: fe.Error()})
		}
		out := &Outcome{
			Status:      StatusInvalid,
			Backend:     backend,
			Message:     "Please correct the errors in the form.",
			Diagnostics: diags,
			FieldErrors: verr.FieldMessages(),
		}
		return c.finish(ctx, "submit", out)
	}
	return c.SubmitRecord(ctx, backend, form.ToRawRecord())
}

// SubmitRecord admits one untrusted record.
func (c *Coordinator) SubmitRecord(ctx context.Context, backend Backend, raw models.RawRecord) *Outcome {
	const op = "submit"

	store, mu, out := c.lookup(backend)
	if out != nil {
		return c.finish(ctx, op, out)
	}

	photo, diags := ValidateRecord(raw)
	if len(diags) > 0 {
		return c.finish(ctx, op, invalid(backend, diags))
	}

	mu.Lock()
	defer mu.Unlock()

	candidates, err := c.candidates(ctx, store, NaturalKeyOf(&photo))
	if err != nil {
		return c.finish(ctx, op, failure(backend, err))
	}
	if IsDuplicate(candidates, EntityRecord{Photo: photo}) {
		return c.finish(ctx, op, &Outcome{
			Status:  StatusDuplicate,
			Backend: backend,
			Message: "Record already exists; duplicate not added.",
			Skipped: 1,
		})
	}

	inserted, err := c.insert(ctx, store, []models.PhotoMetadata{photo})
	if err != nil {
		return c.finish(ctx, op, failure(backend, err))
	}
	return c.finish(ctx, op, &Outcome{
		Status:  StatusAdmitted,
		Backend: backend,
		Message: "Record saved.",
		Added:   len(inserted),
		Records: inserted,
	})
}

// SubmitBatch admits an uploaded JSON document holding an array of records
// or a single record object. Any invalid record rejects the whole batch with
// zero writes. Valid records that duplicate the existing population are
// skipped; the rest are written together.
func (c *Coordinator) SubmitBatch(ctx context.Context, backend Backend, data []byte) *Outcome {
	const op = "batch"

	store, mu, out := c.lookup(backend)
	if out != nil {
		return c.finish(ctx, op, out)
	}

	records, err := ParseBatch(data)
	if err != nil {
		return c.finish(ctx, op, &Outcome{
			Status:  StatusMalformed,
			Backend: backend,
			Message: "Invalid JSON file.",
			Err:     err,
		})
	}
	metrics.RecordBatchSize(string(backend), len(records))

	accepted, diags := ValidateBatch(records)
	if len(diags) > 0 {
		o := invalid(backend, diags)
		o.Message = fmt.Sprintf("Batch rejected: %d of %d records are invalid.", len(records)-len(accepted), len(records))
		return c.finish(ctx, op, o)
	}

	mu.Lock()
	defer mu.Unlock()

	existing, err := c.snapshot(ctx, store)
	if err != nil {
		return c.finish(ctx, op, failure(backend, err))
	}

	index := NewIndex(existing)
	var fresh []models.PhotoMetadata
	skipped := 0
	for _, photo := range accepted {
		rec := EntityRecord{Photo: photo}
		if index.Contains(rec) {
			skipped++
			continue
		}
		fresh = append(fresh, photo)
		if c.opts.IntraBatchDedup {
			index.Add(rec)
		}
	}

	var inserted []models.PhotoMetadata
	if len(fresh) > 0 {
		inserted, err = c.insert(ctx, store, fresh)
		if err != nil {
			return c.finish(ctx, op, failure(backend, err))
		}
	}

	o := &Outcome{
		Backend: backend,
		Added:   len(inserted),
		Skipped: skipped,
		Records: inserted,
		Message: fmt.Sprintf("Added %d new records, skipped %d duplicates.", len(inserted), skipped),
	}
	// A batch whose records were all skipped still succeeds with zero added.
	if skipped == 0 {
		o.Status = StatusAdmitted
	} else {
		o.Status = StatusPartiallyAdmitted
	}
	return c.finish(ctx, op, o)
}

// Update replaces every semantic field of an existing record. The
// replacement must be valid and must not duplicate any other record.
func (c *Coordinator) Update(ctx context.Context, backend Backend, id string, raw models.RawRecord) *Outcome {
	const op = "update"

	store, mu, out := c.lookup(backend)
	if out != nil {
		return c.finish(ctx, op, out)
	}

	mu.Lock()
	defer mu.Unlock()

	if _, err := c.get(ctx, store, id); err != nil {
		return c.finish(ctx, op, lookupFailure(backend, id, err))
	}

	photo, diags := ValidateRecord(raw)
	if len(diags) > 0 {
		return c.finish(ctx, op, invalid(backend, diags))
	}

	existing, err := c.snapshot(ctx, store)
	if err != nil {
		return c.finish(ctx, op, failure(backend, err))
	}
	others := make([]Record, 0, len(existing))
	for _, rec := range existing {
		if rec.RecordID() != id {
			others = append(others, rec)
		}
	}
	if IsDuplicate(others, EntityRecord{Photo: photo}) {
		return c.finish(ctx, op, &Outcome{
			Status:  StatusConflict,
			Backend: backend,
			Message: "Duplicate found; update cancelled.",
		})
	}

	start := time.Now()
	updated, err := store.Replace(ctx, id, photo)
	metrics.RecordStoreOperation(string(backend), "replace", time.Since(start), err)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.finish(ctx, op, lookupFailure(backend, id, err))
		}
		return c.finish(ctx, op, failure(backend, storageErr(backend, "replace", err)))
	}
	return c.finish(ctx, op, &Outcome{
		Status:  StatusUpdated,
		Backend: backend,
		Message: "Record updated.",
		Records: []models.PhotoMetadata{updated},
	})
}

// Delete removes a record unconditionally if it exists.
func (c *Coordinator) Delete(ctx context.Context, backend Backend, id string) *Outcome {
	const op = "delete"

	store, mu, out := c.lookup(backend)
	if out != nil {
		return c.finish(ctx, op, out)
	}

	mu.Lock()
	defer mu.Unlock()

	start := time.Now()
	err := store.Delete(ctx, id)
	metrics.RecordStoreOperation(string(backend), "delete", time.Since(start), err)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.finish(ctx, op, lookupFailure(backend, id, err))
		}
		return c.finish(ctx, op, failure(backend, storageErr(backend, "delete", err)))
	}
	return c.finish(ctx, op, &Outcome{
		Status:  StatusDeleted,
		Backend: backend,
		Message: "Record deleted.",
	})
}

// Get fetches one record. It returns ErrNotFound, ErrUnknownBackend or a *StorageError.
func (c *Coordinator) Get(ctx context.Context, backend Backend, id string) (models.PhotoMetadata, error) {
	store, ok := c.stores[backend]
	if !ok {
		return models.PhotoMetadata{}, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
	return c.get(ctx, store, id)
}

// ParseBatch decodes an uploaded document into records. The root must be a
// JSON array of objects or a single object, which is treated as a batch of
// one. Numbers are kept as json.Number so integral values keep their text.
func ParseBatch(data []byte) ([]models.RawRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var root interface{}
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: unexpected data after JSON value", ErrMalformedInput)
	}

	switch v := root.(type) {
	case map[string]interface{}:
		return []models.RawRecord{v}, nil
	case []interface{}:
		records := make([]models.RawRecord, 0, len(v))
		for i, elem := range v {
			obj, ok := elem.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("%w: element %d is not an object", ErrMalformedInput, i+1)
			}
			records = append(records, obj)
		}
		return records, nil
	default:
		return nil, fmt.Errorf("%w: root must be an object or an array of objects", ErrMalformedInput)
	}
}

func (c *Coordinator) lookup(backend Backend) (Store, *sync.Mutex, *Outcome) {
	store, ok := c.stores[backend]
	if !ok {
		return nil, nil, &Outcome{
			Status:  StatusInvalid,
			Backend: backend,
			Message: "Unknown data source.",
			Err:     fmt.Errorf("%w: %q", ErrUnknownBackend, backend),
		}
	}
	return store, c.locks[backend], nil
}

func (c *Coordinator) snapshot(ctx context.Context, store Store) ([]Record, error) {
	start := time.Now()
	recs, err := store.Snapshot(ctx)
	metrics.RecordStoreOperation(string(store.Backend()), "snapshot", time.Since(start), err)
	return recs, storageErr(store.Backend(), "snapshot", err)
}

func (c *Coordinator) candidates(ctx context.Context, store Store, nk NaturalKey) ([]Record, error) {
	start := time.Now()
	recs, err := store.Candidates(ctx, nk)
	metrics.RecordStoreOperation(string(store.Backend()), "candidates", time.Since(start), err)
	return recs, storageErr(store.Backend(), "candidates", err)
}

func (c *Coordinator) insert(ctx context.Context, store Store, photos []models.PhotoMetadata) ([]models.PhotoMetadata, error) {
	start := time.Now()
	inserted, err := store.Insert(ctx, photos)
	metrics.RecordStoreOperation(string(store.Backend()), "insert", time.Since(start), err)
	return inserted, storageErr(store.Backend(), "insert", err)
}

func (c *Coordinator) get(ctx context.Context, store Store, id string) (models.PhotoMetadata, error) {
	start := time.Now()
	photo, err := store.Get(ctx, id)
	if !errors.Is(err, ErrNotFound) {
		metrics.RecordStoreOperation(string(store.Backend()), "get", time.Since(start), err)
	}
	return photo, storageErr(store.Backend(), "get", err)
}

// finish logs and counts the outcome before handing it back.
func (c *Coordinator) finish(ctx context.Context, op string, o *Outcome) *Outcome {
	metrics.RecordIngestOutcome(string(o.Backend), op, string(o.Status))
	metrics.RecordBatchResult(string(o.Backend), string(o.Status), o.Added, o.Skipped)

	var event *zerolog.Event
	switch o.Status {
	case StatusStorageFailure:
		event = logging.CtxErr(ctx, o.Err)
	case StatusAdmitted, StatusPartiallyAdmitted, StatusUpdated, StatusDeleted:
		event = logging.CtxInfo(ctx)
	default:
		event = logging.CtxWarn(ctx)
		if o.Err != nil {
			event = event.Err(o.Err)
		}
	}
	event.
		Str("operation", op).
		Str("backend", string(o.Backend)).
		Str("status", string(o.Status)).
		Int("added", o.Added).
		Int("skipped", o.Skipped).
		Int("diagnostics", len(o.Diagnostics)).
		Msg("Ingestion outcome")

	return o
}

func invalid(backend Backend, diags Diagnostics) *Outcome {
	return &Outcome{
		Status:      StatusInvalid,
		Backend:     backend,
		Message:     "Record failed validation.",
		Diagnostics: diags,
		FieldErrors: fieldErrors(diags),
	}
}

func failure(backend Backend, err error) *Outcome {
	return &Outcome{
		Status:  StatusStorageFailure,
		Backend: backend,
		Message: "Storage error: " + err.Error(),
		Err:     err,
	}
}

func lookupFailure(backend Backend, id string, err error) *Outcome {
	if errors.Is(err, ErrNotFound) {
		return &Outcome{
			Status:  StatusNotFound,
			Backend: backend,
			Message: fmt.Sprintf("Record %q not found.", id),
			Err:     err,
		}
	}
	return failure(backend, err)
}
