// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

package ingest

// IsDuplicate reports whether any existing record has the same canonical key
// as candidate. It stops at the first match.
func IsDuplicate(existing []Record, candidate Record) bool {
	key := candidate.Key()
	for _, rec := range existing {
		if rec.Key() == key {
			return true
		}
	}
	return false
}

// Index is a set of canonical keys. Contains answers the same question as
// IsDuplicate over the records added so far, in constant time.
type Index struct {
	keys map[Key]struct{}
}

// NewIndex builds an index over the given records.
func NewIndex(records []Record) *Index {
	idx := &Index{keys: make(map[Key]struct{}, len(records))}
	for _, rec := range records {
		idx.Add(rec)
	}
	return idx
}

// Add inserts the record's key.
func (i *Index) Add(rec Record) {
	i.keys[rec.Key()] = struct{}{}
}

// Contains reports whether a record with an equal key has been added.
func (i *Index) Contains(rec Record) bool {
	_, ok := i.keys[rec.Key()]
	return ok
}

// Len returns the number of distinct keys.
func (i *Index) Len() int {
	return len(i.keys)
}
