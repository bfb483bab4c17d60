// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db owns the store: opening connections, schema creation and the
bootstrap that seeds reference data.

# Setup

Setup is the whole bootstrap against a SQLite file:

	report, err := db.Setup(ctx, db.DefaultPath, os.Stdout)

It creates the parent directory and the file if missing, creates the schema,
reports how many users exist and seeds the default categories when the
Category table is empty. Running it again is safe and changes nothing.

Initialize performs the same steps on an already open connection and is what
the API server calls at startup:

	conn, err := db.Open(ctx, db.Postgres, cfg.DatabaseURL)
	report, err := db.Initialize(ctx, conn, db.Postgres, nil)

# Dialects

Two backends are supported, each with its own embedded DDL:

  - sqlite (modernc.org/sqlite, default; foreign keys enabled on every connection)
  - postgres (github.com/lib/pq)

Application queries use $N placeholders and quote "User", so the same SQL
runs on both.

# Tables

  - User: email (unique), passwordHash
  - Category: name (unique)
  - Contact: phoneNumber, categoryId
  - SmsLog: recipient, message, status, categoryId, sentAt, twilioSid

# Relationships

	Category 1──* Contact   (ON DELETE CASCADE)
	Category 1──* SmsLog    (ON DELETE SET NULL)

Logs outlive the category they were sent to; contacts do not.

# Indexes

  - Contact.categoryId
  - SmsLog.categoryId
  - SmsLog.sentAt

# Errors

IsUniqueViolation and IsForeignKeyViolation classify constraint failures
from either driver.
*/
package db
