// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly SMS API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Categories:

	GET    /categories      - List categories by name
	POST   /categories      - Create category
	DELETE /categories/{id} - Delete category and its contacts

Contacts:

	GET    /contacts      - List contacts with category
	POST   /contacts      - Create contact
	POST   /contacts/bulk - Import many contacts
	DELETE /contacts/{id} - Delete contact

SMS:

	GET  /sms/history - Filtered message history
	POST /sms/webhook - Delivery status callback

Dashboard:

	GET /dashboard/stats - Totals and per-category counts

Every route except /health and / is wrapped with middleware.WithLogging.
*/
package router
