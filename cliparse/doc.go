// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration for
the API server. The setup-database command takes no configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: sqlite (default) or postgres
  - DatabaseURL: SQLite file path (default: prisma/dev.db) or PostgreSQL connection string
  - WebhookToken: Twilio auth token; when set, webhook signatures are verified
  - PublicURL: Base URL Twilio calls, used to rebuild the signed URL behind proxies

# CLI Flags

	-p              Server port
	-t              Database type
	-d              Database URL
	-env            dotenv file (default: .env)
	-webhook-token  Twilio auth token
	-public-url     Public base URL

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	DATABASE_TYPE     → -t
	DATABASE_URL      → -d
	TWILIO_AUTH_TOKEN → -webhook-token
	PUBLIC_URL        → -public-url

The dotenv file is loaded before the fallback and never overrides variables
that are already set. CLI flags take precedence over both.

# Validation

ParseFlags returns an error if:

  - PORT is not a number or out of range
  - DATABASE_TYPE is not sqlite or postgres
  - DATABASE_URL is missing for postgres
*/
package cliparse
