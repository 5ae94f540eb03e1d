// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

/*
Package api exposes the ingestion coordinator over HTTP.

Handlers are thin: they decode the request, pick a backend from the
?backend= query parameter (db or file, defaulting to the configured
backend) and hand the work to ingest.Coordinator. Coordinator outcomes map
to status codes as follows:

	admitted, partially_admitted    201
	updated, deleted                200
	invalid, malformed              400
	not_found                       404
	duplicate, conflict             409
	storage_failure                 500

All responses use the APIResponse envelope. Failed outcomes are returned as
the error details so clients can render per-field diagnostics.

Routing uses go-chi/chi with go-chi/cors and go-chi/httprate; see SetupChi
for the middleware order.
*/
package api
