// Storelens - E-Commerce Customer and Sales Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/storelens

/*
Package main is the entry point for the Storelens analytics server.

Storelens loads an e-commerce transaction table into memory and serves sales
KPIs, RFM customer segments, cohort retention and item-similarity
recommendations over a JSON REST API.

# Application Architecture

	RootSupervisor ("storelens")
	├── DataSupervisor ("data-layer")
	│   └── ReloadService (startup load + periodic refresh)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Startup order:

 1. .env file (optional, godotenv)
 2. Configuration: Koanf v2 with defaults, config.yaml and environment
 3. Logging: zerolog, JSON or console
 4. Source: DuckDB over a CSV file or table, PostgreSQL or MySQL, wrapped
    in a circuit breaker
 5. Store: snapshot holder with a TTL view cache
 6. Supervisor tree with the reload service and HTTP server

The HTTP server starts before the first snapshot is loaded. Until then
analytics endpoints answer 503 NOT_LOADED and /health/ready reports not
ready.

# Example Usage

	export SOURCE_DRIVER=duckdb
	export SOURCE_CSV_PATH=./data/transactions.csv
	export HTTP_PORT=8080
	./storelens

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree. In-flight requests get the
shutdown timeout to finish before the source connection is closed.
*/
package main
