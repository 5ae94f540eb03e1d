// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

package services

import (
	"context"
	"time"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/photometa/internal/logging"
)

// Checkpointer flushes buffered writes to durable storage. *database.DB implements it.
type Checkpointer interface {
	Checkpoint(ctx context.Context) error
}

// CheckpointService checkpoints the table backend on a fixed interval.
// Checkpoint failures are logged and retried on the next tick; they do
// not restart the service.
type CheckpointService struct {
	db       Checkpointer
	interval time.Duration
	name     string
}

// NewCheckpointService creates a checkpoint loop. interval must be positive.
func NewCheckpointService(db Checkpointer, interval time.Duration) *CheckpointService {
	return &CheckpointService{
		db:       db,
		interval: interval,
		name:     "duckdb-checkpoint",
	}
}

// Serve implements suture.Service.
func (s *CheckpointService) Serve(ctx context.Context) error {
	if s.interval <= 0 {
		return suture.ErrDoNotRestart
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log := logging.WithComponent(s.name)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := s.db.Checkpoint(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				log.Warn().Err(err).Msg("Periodic checkpoint failed")
				continue
			}
			log.Debug().Dur("duration", time.Since(start)).Msg("Checkpoint complete")
		}
	}
}

// String implements fmt.Stringer for suture event logs.
func (s *CheckpointService) String() string {
	return s.name
}
