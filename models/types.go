package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SMS status values reported by the provider
const (
	StatusQueued      = "queued"
	StatusSent        = "sent"
	StatusDelivered   = "delivered"
	StatusUndelivered = "undelivered"
	StatusFailed      = "failed"
)

// Listing limits
const (
	MaxHistory = 100
	RecentLogs = 5
)

// ID is a row id that accepts both 7 and "7" in request bodies.
type ID int64

func (id *ID) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*id = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %s", b)
	}
	*id = ID(n)
	return nil
}

// Request types

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type CreateContactRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	CategoryID  ID     `json:"categoryId"`
}

type BulkContactsRequest struct {
	Contacts []CreateContactRequest `json:"contacts"`
}

// Response types

type SuccessResponse struct {
	Success bool `json:"success"`
}

type BulkContactsResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}

// Domain types

type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type Contact struct {
	ID          int64     `json:"id"`
	PhoneNumber string    `json:"phoneNumber"`
	CategoryID  int64     `json:"categoryId"`
	CreatedAt   time.Time `json:"createdAt"`
	Category    *Category `json:"category,omitempty"`
}

type SmsLog struct {
	ID         int64     `json:"id"`
	Recipient  string    `json:"recipient"`
	Message    string    `json:"message"`
	Status     string    `json:"status"`
	CategoryID *int64    `json:"categoryId"` // nil once the category is deleted
	SentAt     time.Time `json:"sentAt"`
	TwilioSid  *string   `json:"twilioSid"`
	Category   *Category `json:"category"`
}

// Dashboard types

type CategoryStats struct {
	Name         string `json:"name"`
	ContactCount int64  `json:"contactCount"`
	MessageCount int64  `json:"messageCount"`
}

type DashboardStats struct {
	TotalContacts int64           `json:"totalContacts"`
	TotalSent     int64           `json:"totalSent"`
	SentToday     int64           `json:"sentToday"`
	DeliveryRate  int             `json:"deliveryRate"` // percent of logs with status delivered
	RecentLogs    []SmsLog        `json:"recentLogs"`
	CategoryStats []CategoryStats `json:"categoryStats"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
