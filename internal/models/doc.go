// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

// Package models defines the photo metadata record shared by the ingestion
// core, both storage backends and the HTTP layer.
//
// PhotoMetadata is the typed, validated entity. RawRecord is the untyped
// mapping that arrives from uploads and lives in JSON store files; it keeps
// decoded JSON types so duplicate comparison sees values as written.
// PhotoForm is the typed single-record form submission.
package models
