// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-sms/cliparse"
	"github.com/danielhkuo/quickly-sms/db"
)

// SetupTestDB creates a fresh SQLite store in a temp directory with the full
// schema and the default categories. It uses a single connection.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn := SetupPooledTestDB(t)
	conn.SetMaxOpenConns(1)
	return conn
}

// SetupPooledTestDB is SetupTestDB with an unbounded connection pool, as the
// server runs it, so concurrent requests contend for SQLite locks.
func SetupPooledTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	conn, err := db.Open(context.Background(), db.SQLite, path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if _, err := db.Initialize(context.Background(), conn, db.SQLite, nil); err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         cliparse.DefaultPort,
		DatabaseType: string(db.SQLite),
		DatabaseURL:  ":memory:",
	}
}

// CategoryID returns the id of the named category
func CategoryID(t *testing.T, conn *sql.DB, name string) int64 {
	t.Helper()

	var id int64
	if err := conn.QueryRow("SELECT id FROM Category WHERE name = $1", name).Scan(&id); err != nil {
		t.Fatalf("Failed to find category %q: %v", name, err)
	}
	return id
}

// CreateTestCategory inserts a category and returns its id
func CreateTestCategory(t *testing.T, conn *sql.DB, name string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow("INSERT INTO Category (name) VALUES ($1) RETURNING id", name).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test category: %v", err)
	}
	return id
}

// CreateTestContact inserts a contact and returns its id
func CreateTestContact(t *testing.T, conn *sql.DB, phone string, categoryID int64) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO Contact (phoneNumber, categoryId)
		VALUES ($1, $2)
		RETURNING id
	`, phone, categoryID).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test contact: %v", err)
	}
	return id
}

// SmsLogOptions describes a log row for CreateTestSmsLog. Zero values mean
// no category, no provider sid, and a sentAt of now.
type SmsLogOptions struct {
	Recipient  string
	Status     string
	CategoryID int64
	TwilioSid  string
	SentAt     time.Time
}

// CreateTestSmsLog inserts an SMS log and returns its id
func CreateTestSmsLog(t *testing.T, conn *sql.DB, opts SmsLogOptions) int64 {
	t.Helper()

	if opts.Recipient == "" {
		opts.Recipient = "+15551234567"
	}
	if opts.Status == "" {
		opts.Status = "sent"
	}
	if opts.SentAt.IsZero() {
		opts.SentAt = time.Now()
	}

	var categoryID, sid any
	if opts.CategoryID != 0 {
		categoryID = opts.CategoryID
	}
	if opts.TwilioSid != "" {
		sid = opts.TwilioSid
	}

	var id int64
	err := conn.QueryRow(`
		INSERT INTO SmsLog (recipient, message, status, categoryId, sentAt, twilioSid)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, opts.Recipient, "Test message", opts.Status, categoryID, db.FormatTime(opts.SentAt), sid).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test sms log: %v", err)
	}
	return id
}

// CountRows returns the number of rows in table
func CountRows(t *testing.T, conn *sql.DB, table string) int64 {
	t.Helper()

	var n int64
	if err := conn.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
