// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

JSON field names are camelCase and match the column names in the store.

# Request Types

Types for parsing incoming JSON:

  - CreateCategoryRequest: name
  - CreateContactRequest: phoneNumber, categoryId
  - BulkContactsRequest: contacts

categoryId is an ID, which accepts both numbers and numeric strings.

# Response Types

Types for JSON responses:

  - SuccessResponse: success
  - BulkContactsResponse: success, count
  - DashboardStats: totals, delivery rate, recent logs, per-category counts
  - ErrorResponse: error, message

# Domain Types

Rows of the tables the API serves (User rows are only counted, never
served):

  - Category: unique name
  - Contact: phone number bound to a category
  - SmsLog: sent message with status; categoryId and twilioSid may be null

# Constants

Status values:

	StatusQueued      = "queued"
	StatusSent        = "sent"
	StatusDelivered   = "delivered"
	StatusUndelivered = "undelivered"
	StatusFailed      = "failed"

Limits:

	MaxHistory = 100
	RecentLogs = 5
*/
package models
