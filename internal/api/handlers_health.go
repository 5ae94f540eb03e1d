// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/photometa/internal/ingest"
	"github.com/tomtom215/photometa/internal/logging"
)

const healthCheckTimeout = 2 * time.Second

// HealthStatus is the payload of the health endpoint.
type HealthStatus struct {
	Status         string           `json:"status"`
	Version        string           `json:"version,omitempty"`
	Uptime         float64          `json:"uptime_seconds"`
	Backends       []ingest.Backend `json:"backends"`
	DefaultBackend ingest.Backend   `json:"default_backend"`
	Database       *DatabaseHealth  `json:"database,omitempty"`
}

// DatabaseHealth reports table backend reachability.
type DatabaseHealth struct {
	Connected  bool   `json:"connected"`
	PhotoCount *int   `json:"photo_count,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Health reports process and backend status. A configured but unreachable
// table backend degrades the status and answers 503.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:         "healthy",
		Version:        h.cfg.Version,
		Uptime:         time.Since(h.startTime).Seconds(),
		Backends:       h.coord.Backends(),
		DefaultBackend: h.cfg.DefaultBackend,
	}

	code := http.StatusOK
	if h.index != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		dbHealth := &DatabaseHealth{Connected: true}
		if err := h.index.Ping(ctx); err != nil {
			logging.CtxWarn(r.Context()).Err(err).Msg("Health check: database ping failed")
			dbHealth.Connected = false
			dbHealth.Error = "database unreachable"
			status.Status = "degraded"
			code = http.StatusServiceUnavailable
		} else if n, err := h.index.CountPhotos(ctx); err == nil {
			dbHealth.PhotoCount = &n
		}
		status.Database = dbHealth
	}

	NewResponseWriter(w, r).SuccessWithStatus(code, status, nil)
}
