// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly SMS API server.

Quickly SMS keeps phone contacts grouped into categories and records the
history and delivery status of text messages sent to them.

# Starting the Server

With no configuration the server uses the SQLite store at prisma/dev.db,
creating it if needed:

	go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

Settings may also come from a .env file in the working directory.

# Configuration

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - TWILIO_AUTH_TOKEN (-webhook-token): enables webhook signature checks
  - PUBLIC_URL (-public-url): external base URL used for signature checks

# Bootstrapping Only

The setup-database command creates the store and seeds default categories
without starting the server:

	go run ./cmd/setup-database

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (categories, contacts, sms, dashboard)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, request IDs, JSON helpers
  - models: Request/response types
  - auth: Webhook signature validation
  - db: Connections, schema creation, and seeding
  - logging: Default slog handler selection
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
