// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - Ingestion outcomes per backend and operation
// - Store (DuckDB table / JSON file) operation latency
// - API endpoint latency and throughput

var (
	// Ingestion Metrics
	IngestOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photometa_ingest_outcomes_total",
			Help: "Total coordinator outcomes by backend, operation and status",
		},
		[]string{"backend", "operation", "status"},
	)

	IngestBatchSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "photometa_ingest_batch_size",
			Help:    "Number of records per uploaded batch",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"backend"},
	)

	IngestRecordsAdmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photometa_ingest_records_admitted_total",
			Help: "Total records written to a backend",
		},
		[]string{"backend"},
	)

	IngestRecordsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photometa_ingest_records_skipped_total",
			Help: "Total valid records skipped as duplicates",
		},
		[]string{"backend"},
	)

	// Store Metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "photometa_store_operation_duration_seconds",
			Help:    "Duration of store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend", "operation"},
	)

	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photometa_store_operation_errors_total",
			Help: "Total failed store operations",
		},
		[]string{"backend", "operation"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// Outcome statuses that carry counts. Kept as literals so this package does
// not import ingest.
const (
	statusAdmitted          = "admitted"
	statusPartiallyAdmitted = "partially_admitted"
)

// RecordIngestOutcome counts one coordinator outcome.
func RecordIngestOutcome(backend, operation, status string) {
	IngestOutcomes.WithLabelValues(backend, operation, status).Inc()
}

// RecordBatchResult records admitted and skipped counts of a finished batch
// or single submission.
func RecordBatchResult(backend, status string, added, skipped int) {
	if status == statusAdmitted || status == statusPartiallyAdmitted {
		IngestRecordsAdmitted.WithLabelValues(backend).Add(float64(added))
	}
	IngestRecordsSkipped.WithLabelValues(backend).Add(float64(skipped))
}

// RecordBatchSize observes the record count of an uploaded batch.
func RecordBatchSize(backend string, size int) {
	IngestBatchSize.WithLabelValues(backend).Observe(float64(size))
}

// RecordStoreOperation records a store call and whether it failed.
func RecordStoreOperation(backend, operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(backend, operation).Observe(duration.Seconds())
	if err != nil {
		StoreOperationErrors.WithLabelValues(backend, operation).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordRateLimitHit counts a request rejected by the rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// SetAppInfo publishes the running version.
func SetAppInfo(version string) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
}
