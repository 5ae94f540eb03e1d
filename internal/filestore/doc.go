// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

// Package filestore implements the JSON file backend.
//
// A Store is an explicit handle on one file (directory plus base name). The
// file holds a pretty-printed UTF-8 JSON array; a bare object is read as a
// one-element array. Every change rewrites the whole file through a
// temporary file and rename. Records written by the store carry a UUID id
// and an RFC 3339 created_at; neither takes part in duplicate detection.
//
// ListFiles and ReadFile expose the other JSON files of the directory for
// browsing.
package filestore
