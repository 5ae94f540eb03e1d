// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

/*
Package middleware provides HTTP middleware components for the application.

Key Components:

  - Request ID: per-request identifier in the X-Request-ID header and the
    logging context
  - Prometheus Metrics: request count, latency and in-flight gauge, labelled
    by chi route pattern; requests slower than SlowRequestThreshold are
    logged at warn

Both are written as func(http.HandlerFunc) http.HandlerFunc and adapted to
chi with api.chiMiddleware:

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))
*/
package middleware
