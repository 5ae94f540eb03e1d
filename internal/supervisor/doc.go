// Photometa - Photo Metadata Ingestion and Deduplication
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/photometa

/*
Package supervisor runs the long-lived parts of the server under a
thejerf/suture supervisor tree.

	photometa (root)
	├── storage-layer
	│   └── duckdb-checkpoint   (services.CheckpointService)
	└── api-layer
	    └── http-server         (services.HTTPServerService)

Supervisor events are logged through sutureslog, bridged to zerolog by
logging.NewSlogLogger. Failed services restart with suture's backoff; a
canceled context stops the tree and every service returns within
TreeConfig.ShutdownTimeout.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return err
	}
	tree.AddAPIService(services.NewHTTPServerService(srv, cfg.Server.ShutdownTimeout))
	return tree.Serve(ctx)
*/
package supervisor
