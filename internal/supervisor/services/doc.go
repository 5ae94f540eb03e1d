// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

// Package services adapts long-running components to suture.Service.
//
//   - HTTPServerService: the API server, with graceful shutdown
//   - CheckpointService: periodic DuckDB checkpoints for the table backend
//
// Every service returns when its context is canceled and implements
// fmt.Stringer so supervisor events name it.
package services
