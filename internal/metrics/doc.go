// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

/*
Package metrics provides Prometheus collectors for ingestion, storage and the HTTP API.

All collectors are registered on the default registry through promauto and
exposed at /metrics by the API router.

# Available Metrics

Ingestion:
  - photometa_ingest_outcomes_total{backend,operation,status}
  - photometa_ingest_batch_size{backend}
  - photometa_ingest_records_admitted_total{backend}
  - photometa_ingest_records_skipped_total{backend}

Storage:
  - photometa_store_operation_duration_seconds{backend,operation}
  - photometa_store_operation_errors_total{backend,operation}

HTTP:
  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}

System:
  - app_info{version,go_version}
*/
package metrics
