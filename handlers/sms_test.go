// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-sms/auth"
	"github.com/danielhkuo/quickly-sms/models"
	"github.com/danielhkuo/quickly-sms/testutil"
)

func TestGetHistory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewSmsHandler(db, testutil.GetTestConfig())

	general := testutil.CategoryID(t, db, "General")
	business := testutil.CategoryID(t, db, "Business")

	day := func(d, h int) time.Time { return time.Date(2024, 1, d, h, 0, 0, 0, time.Local) }
	jan5 := testutil.CreateTestSmsLog(t, db, testutil.SmsLogOptions{CategoryID: general, SentAt: day(5, 12)})
	jan10 := testutil.CreateTestSmsLog(t, db, testutil.SmsLogOptions{CategoryID: business, SentAt: day(10, 12), TwilioSid: "SM10"})
	jan11 := testutil.CreateTestSmsLog(t, db, testutil.SmsLogOptions{SentAt: day(11, 12)})

	tests := []struct {
		name        string
		query       string
		expectedIDs []int64
	}{
		{"all logs newest first", "", []int64{jan11, jan10, jan5}},
		{"category all", "?categoryId=all", []int64{jan11, jan10, jan5}},
		{"single category", "?categoryId=" + strconv.FormatInt(general, 10), []int64{jan5}},
		{"start date", "?startDate=2024-01-10", []int64{jan11, jan10}},
		{"end date covers whole day", "?endDate=2024-01-10", []int64{jan10, jan5}},
		{"date range", "?startDate=2024-01-06&endDate=2024-01-10", []int64{jan10}},
		{"rfc3339 bound", "?endDate=" + url.QueryEscape(day(10, 11).Format(time.RFC3339)), []int64{jan5}},
		{"no matches", "?categoryId=9999", []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/sms/history"+tt.query, nil)
			w := httptest.NewRecorder()

			handler.GetHistory(w, req)

			testutil.AssertStatus(t, w, http.StatusOK)

			var logs []models.SmsLog
			testutil.AssertJSON(t, w, &logs)

			if len(logs) != len(tt.expectedIDs) {
				t.Fatalf("Expected %d logs, got %d", len(tt.expectedIDs), len(logs))
			}
			for i, id := range tt.expectedIDs {
				if logs[i].ID != id {
					t.Errorf("logs[%d].id = %d, want %d", i, logs[i].ID, id)
				}
			}
		})
	}

	t.Run("embedded category and nullable fields", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/sms/history", nil)
		w := httptest.NewRecorder()
		handler.GetHistory(w, req)

		var logs []models.SmsLog
		testutil.AssertJSON(t, w, &logs)

		byID := make(map[int64]models.SmsLog)
		for _, l := range logs {
			byID[l.ID] = l
		}

		withCat := byID[jan10]
		if withCat.Category == nil || withCat.Category.Name != "Business" {
			t.Errorf("Expected category Business, got %+v", withCat.Category)
		}
		if withCat.TwilioSid == nil || *withCat.TwilioSid != "SM10" {
			t.Errorf("Expected twilioSid SM10, got %v", withCat.TwilioSid)
		}
		if !withCat.SentAt.Equal(day(10, 12)) {
			t.Errorf("Expected sentAt %v, got %v", day(10, 12), withCat.SentAt)
		}

		noCat := byID[jan11]
		if noCat.Category != nil || noCat.CategoryID != nil {
			t.Errorf("Expected no category, got %+v / %v", noCat.Category, noCat.CategoryID)
		}
		if noCat.TwilioSid != nil {
			t.Errorf("Expected null twilioSid, got %s", *noCat.TwilioSid)
		}
	})
}

func TestGetHistory_Limit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewSmsHandler(db, testutil.GetTestConfig())

	base := time.Now().Add(-time.Hour)
	for i := 0; i < models.MaxHistory+5; i++ {
		testutil.CreateTestSmsLog(t, db, testutil.SmsLogOptions{SentAt: base.Add(time.Duration(i) * time.Second)})
	}

	req := httptest.NewRequest("GET", "/sms/history", nil)
	w := httptest.NewRecorder()
	handler.GetHistory(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var logs []models.SmsLog
	testutil.AssertJSON(t, w, &logs)
	if len(logs) != models.MaxHistory {
		t.Errorf("Expected %d logs, got %d", models.MaxHistory, len(logs))
	}
}

func TestGetHistory_BadInput(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewSmsHandler(db, testutil.GetTestConfig())

	for _, query := range []string{
		"?categoryId=abc",
		"?startDate=yesterday",
		"?endDate=2024-13-01",
	} {
		t.Run(query, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/sms/history"+query, nil)
			w := httptest.NewRecorder()

			handler.GetHistory(w, req)

			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}
}

func webhookRequest(form url.Values) *http.Request {
	req := httptest.NewRequest("POST", "/sms/webhook", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestWebhook(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewSmsHandler(db, testutil.GetTestConfig())

	first := testutil.CreateTestSmsLog(t, db, testutil.SmsLogOptions{TwilioSid: "SM123", Status: models.StatusQueued})
	second := testutil.CreateTestSmsLog(t, db, testutil.SmsLogOptions{TwilioSid: "SM123", Status: models.StatusSent})
	other := testutil.CreateTestSmsLog(t, db, testutil.SmsLogOptions{TwilioSid: "SM999", Status: models.StatusSent})

	w := httptest.NewRecorder()
	handler.Webhook(w, webhookRequest(url.Values{
		"MessageSid":    {"SM123"},
		"MessageStatus": {models.StatusDelivered},
	}))

	testutil.AssertStatus(t, w, http.StatusOK)

	status := func(id int64) string {
		var s string
		if err := db.QueryRow("SELECT status FROM SmsLog WHERE id = $1", id).Scan(&s); err != nil {
			t.Fatalf("Failed to query status: %v", err)
		}
		return s
	}

	if s := status(first); s != models.StatusDelivered {
		t.Errorf("Expected first log delivered, got %s", s)
	}
	if s := status(second); s != models.StatusDelivered {
		t.Errorf("Expected second log delivered, got %s", s)
	}
	if s := status(other); s != models.StatusSent {
		t.Errorf("Expected other log unchanged, got %s", s)
	}
}

func TestWebhook_MissingFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewSmsHandler(db, testutil.GetTestConfig())

	tests := []struct {
		name string
		form url.Values
	}{
		{"missing sid", url.Values{"MessageStatus": {"delivered"}}},
		{"missing status", url.Values{"MessageSid": {"SM1"}}},
		{"empty form", url.Values{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.Webhook(w, webhookRequest(tt.form))
			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}
}

func TestWebhook_Signature(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	cfg.WebhookToken = "test-auth-token"
	cfg.PublicURL = "https://sms.example.com"
	handler := NewSmsHandler(db, cfg)

	id := testutil.CreateTestSmsLog(t, db, testutil.SmsLogOptions{TwilioSid: "SM42", Status: models.StatusSent})

	form := url.Values{
		"MessageSid":    {"SM42"},
		"MessageStatus": {models.StatusFailed},
	}
	valid := auth.ComputeSignature(cfg.WebhookToken, "https://sms.example.com/sms/webhook", form)

	tests := []struct {
		name           string
		signature      string
		expectedStatus int
	}{
		{"missing signature", "", http.StatusForbidden},
		{"wrong signature", "bm90LXRoZS1yaWdodC1vbmU=", http.StatusForbidden},
		{"valid signature", valid, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := webhookRequest(form)
			if tt.signature != "" {
				req.Header.Set(auth.SignatureHeader, tt.signature)
			}
			w := httptest.NewRecorder()

			handler.Webhook(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	var status string
	if err := db.QueryRow("SELECT status FROM SmsLog WHERE id = $1", id).Scan(&status); err != nil {
		t.Fatalf("Failed to query status: %v", err)
	}
	if status != models.StatusFailed {
		t.Errorf("Expected status failed after signed request, got %s", status)
	}
}
