// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly SMS API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - CategoryHandler: list, create, and delete categories
  - ContactHandler: list, create, bulk import, and delete contacts
  - SmsHandler: message history and provider status callbacks
  - DashboardHandler: aggregate counts for the dashboard

Handlers are created via constructor functions that accept *sql.DB and Config:

	contactHandler := handlers.NewContactHandler(db, cfg)

All queries use $N placeholders, so the same handlers serve SQLite and
PostgreSQL stores.

# Categories

	GET    /categories      → ListCategories (ordered by name)
	POST   /categories      → CreateCategory (409 on duplicate name)
	DELETE /categories/{id} → DeleteCategory

Deleting a category deletes its contacts and detaches its SMS logs.

# Contacts

	GET    /contacts      → ListContacts (newest first, with category)
	POST   /contacts      → CreateContact
	POST   /contacts/bulk → BulkCreateContacts
	DELETE /contacts/{id} → DeleteContact

Phone numbers are normalized with FormatPhoneNumber and must pass
ValidatePhoneNumber (E.164). Bulk imports skip invalid entries, unknown
categories, and numbers already present in the same category.

# SMS

	GET  /sms/history → GetHistory (at most 100, newest first)
	POST /sms/webhook → Webhook

History accepts categoryId, startDate and endDate query parameters. The
webhook checks the X-Twilio-Signature header when a webhook token is
configured.

# Dashboard

	GET /dashboard/stats → GetStats

Reports totals, messages sent since local midnight, the delivered share,
the five newest logs, and per-category counts.
*/
package handlers
