// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

// Package ingest validates untrusted photo metadata records, reduces them to a
// canonical comparison key and decides their admission into a file-backed or
// table-backed store.
//
// # Components
//
//   - normalize.go: Key, NaturalKey and the Record interface with its table
//     (EntityRecord) and mapping (MapRecord) adapters
//   - validate.go: ValidateBatch / ValidateRecord producing structured
//     Diagnostics tied to 1-based input positions
//   - duplicate.go: IsDuplicate linear scan and the equivalent Index set
//   - coordinator.go: Submit, SubmitRecord, SubmitBatch, Update and Delete
//
// # Duplicate Semantics
//
// Two records are duplicates iff all 11 semantic fields are equal after
// normalization. Text fields compare trimmed and case-insensitively; date
// and dimension fields compare by their literal text. Storage-assigned id
// and created_at are never compared.
//
// # Batch Policy
//
// A batch is all-or-nothing on validation: a single invalid record rejects
// the batch with zero writes. Valid records that duplicate the existing
// population are skipped. With Options.IntraBatchDedup (the default) a record
// identical to one admitted earlier in the same batch is skipped as well.
//
// # Concurrency
//
// The Coordinator serializes operations per backend. Files are rewritten
// atomically by the file store; the lock prevents lost updates between the
// snapshot read and the rewrite.
package ingest
