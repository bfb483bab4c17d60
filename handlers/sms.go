// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/quickly-sms/auth"
	"github.com/danielhkuo/quickly-sms/cliparse"
	"github.com/danielhkuo/quickly-sms/db"
	"github.com/danielhkuo/quickly-sms/middleware"
	"github.com/danielhkuo/quickly-sms/models"
)

const dateOnly = "2006-01-02"

type SmsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewSmsHandler(db *sql.DB, cfg cliparse.Config) *SmsHandler {
	return &SmsHandler{db: db, cfg: cfg}
}

const smsLogSelect = `
	SELECT l.id, l.recipient, l.message, l.status, l.categoryId, l.sentAt, l.twilioSid,
		cat.id, cat.name, cat.createdAt
	FROM SmsLog l
	LEFT JOIN Category cat ON cat.id = l.categoryId
`

// GetHistory handles GET /sms/history
// Optional query parameters: categoryId ("all" for every category),
// startDate and endDate (RFC 3339 or YYYY-MM-DD; a bare endDate covers the
// whole day).
func (h *SmsHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if raw := q.Get("categoryId"); raw != "" && raw != "all" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid categoryId")
			return
		}
		add("l.categoryId = $%d", id)
	}

	if raw := q.Get("startDate"); raw != "" {
		start, _, err := parseDate(raw)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid startDate")
			return
		}
		add("l.sentAt >= $%d", db.FormatTime(start))
	}

	if raw := q.Get("endDate"); raw != "" {
		end, dayOnly, err := parseDate(raw)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid endDate")
			return
		}
		if dayOnly {
			add("l.sentAt < $%d", db.FormatTime(end.AddDate(0, 0, 1)))
		} else {
			add("l.sentAt <= $%d", db.FormatTime(end))
		}
	}

	query := smsLogSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY l.sentAt DESC, l.id DESC LIMIT %d", models.MaxHistory)

	logs, err := queryLogs(r.Context(), h.db, query, args...)
	if err != nil {
		slog.Error("failed to query sms history", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, logs)
}

// Webhook handles POST /sms/webhook
// Twilio posts MessageSid and MessageStatus as a form; every log with that
// sid takes the new status.
func (h *SmsHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid form body")
		return
	}

	if h.cfg.WebhookToken != "" {
		signature := r.Header.Get(auth.SignatureHeader)
		fullURL := auth.RequestURL(r, h.cfg.PublicURL)
		if err := auth.ValidateSignature(h.cfg.WebhookToken, fullURL, r.PostForm, signature); err != nil {
			slog.Warn("rejected webhook", "error", err, "remote", middleware.GetClientIP(r))
			middleware.ErrorResponse(w, http.StatusForbidden, "Invalid signature")
			return
		}
	}

	messageSid := r.PostForm.Get("MessageSid")
	messageStatus := r.PostForm.Get("MessageStatus")
	if messageSid == "" || messageStatus == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	result, err := h.db.ExecContext(r.Context(),
		"UPDATE SmsLog SET status = $1 WHERE twilioSid = $2",
		messageStatus, messageSid,
	)
	if err != nil {
		slog.Error("failed to update sms status", "error", err, "sid", messageSid)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	n, _ := result.RowsAffected()
	slog.Info("sms status updated", "sid", messageSid, "status", messageStatus, "rows", n)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

func queryLogs(ctx context.Context, conn *sql.DB, query string, args ...any) ([]models.SmsLog, error) {
	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []models.SmsLog{}
	for rows.Next() {
		l, err := scanSmsLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func scanSmsLog(row scanner) (models.SmsLog, error) {
	var (
		l          models.SmsLog
		categoryID sql.NullInt64
		twilioSid  sql.NullString
		catID      sql.NullInt64
		catName    sql.NullString
		catCreated sql.NullTime
	)
	err := row.Scan(&l.ID, &l.Recipient, &l.Message, &l.Status, &categoryID, &l.SentAt, &twilioSid,
		&catID, &catName, &catCreated)
	if err != nil {
		return models.SmsLog{}, err
	}

	if categoryID.Valid {
		l.CategoryID = &categoryID.Int64
	}
	if twilioSid.Valid {
		l.TwilioSid = &twilioSid.String
	}
	if catID.Valid {
		l.Category = &models.Category{ID: catID.Int64, Name: catName.String, CreatedAt: catCreated.Time}
	}
	return l, nil
}

// parseDate accepts RFC 3339 timestamps and bare dates. Bare dates are
// midnight local time; dayOnly reports which form was given.
func parseDate(s string) (t time.Time, dayOnly bool, err error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, false, nil
	}
	if t, err := time.ParseInLocation(dateOnly, s, time.Local); err == nil {
		return t, true, nil
	}
	return time.Time{}, false, errors.New("date must be RFC 3339 or YYYY-MM-DD")
}
