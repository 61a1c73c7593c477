// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

/*
Package supervisor provides process supervision for Storelens using suture v4.

# Overview

Long-running services are organized into two layers:

	RootSupervisor ("storelens")
	├── DataSupervisor ("data-layer")
	│   └── ReloadService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services restart with backoff. A reload loop that keeps failing
backs off on its own while the HTTP server continues to serve the last
good snapshot.

# Logging

Supervisor events go through sutureslog to an slog.Logger, normally the
zerolog bridge from logging.NewSlogLogger("supervisor").

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
		return err
	}
	tree.AddDataService(services.NewReloadService(st, cfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	return tree.Serve(ctx)
*/
package supervisor
