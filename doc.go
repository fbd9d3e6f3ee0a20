// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Canvass API server.

Canvass is a campaign field-tracking service: assistants record
supporting voters for their candidate, electoral cards are deduplicated
across the whole party, and dashboards aggregate progress by candidate,
district, and week.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=canvass.db go run main.go

Or with flags:

	go run main.go -p 3419 -d "canvass.db" -t sqlite

A .env file in the working directory is loaded when present.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string

Optional settings:

  - PORT (-p): Server port (default: 3419)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - BASE_URL (--base-url): Public base URL used in assistant join links

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (voters, assistants, progress, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - ident: ID and link token generation
  - db: Schema creation and SQL dialect helpers
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
