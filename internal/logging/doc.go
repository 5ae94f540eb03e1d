// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

// Package logging provides the process-wide zerolog logger.
//
// Init configures level, format (json or console), caller and timestamp
// output. Ctx attaches the HTTP request ID carried in a context, and
// SlogHandler bridges libraries that log through log/slog.
//
//	logging.Init(logging.Config{Level: "debug", Format: "console"})
//	logging.Info().Str("addr", addr).Msg("Server starting")
//	logging.CtxWarn(ctx).Str("backend", "file").Msg("Duplicate skipped")
//
// Always finish an event with Msg or Send; an unfinished event is never written.
package logging
