// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/danielhkuo/quickly-sms/cliparse"
	"github.com/danielhkuo/quickly-sms/db"
	"github.com/danielhkuo/quickly-sms/middleware"
	"github.com/danielhkuo/quickly-sms/models"
)

type DashboardHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	now func() time.Time
}

func NewDashboardHandler(db *sql.DB, cfg cliparse.Config) *DashboardHandler {
	return &DashboardHandler{db: db, cfg: cfg, now: time.Now}
}

// GetStats handles GET /dashboard/stats
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.computeStats(r.Context())
	if err != nil {
		slog.Error("failed to compute dashboard stats", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, stats)
}

func (h *DashboardHandler) computeStats(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats

	now := h.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var delivered int64
	err := h.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM Contact),
			(SELECT COUNT(*) FROM SmsLog),
			(SELECT COUNT(*) FROM SmsLog WHERE sentAt >= $1),
			(SELECT COUNT(*) FROM SmsLog WHERE status = $2)
	`, db.FormatTime(midnight), models.StatusDelivered).Scan(
		&stats.TotalContacts, &stats.TotalSent, &stats.SentToday, &delivered,
	)
	if err != nil {
		return stats, fmt.Errorf("failed to count messages: %w", err)
	}

	if stats.TotalSent > 0 {
		stats.DeliveryRate = int(math.Round(float64(delivered) / float64(stats.TotalSent) * 100))
	}

	stats.RecentLogs, err = queryLogs(ctx, h.db,
		smsLogSelect+fmt.Sprintf(" ORDER BY l.sentAt DESC, l.id DESC LIMIT %d", models.RecentLogs))
	if err != nil {
		return stats, fmt.Errorf("failed to query recent logs: %w", err)
	}

	catRows, err := h.db.QueryContext(ctx, `
		SELECT cat.name,
			(SELECT COUNT(*) FROM Contact c WHERE c.categoryId = cat.id),
			(SELECT COUNT(*) FROM SmsLog l WHERE l.categoryId = cat.id)
		FROM Category cat
		ORDER BY cat.id
	`)
	if err != nil {
		return stats, fmt.Errorf("failed to query category stats: %w", err)
	}
	defer catRows.Close()

	stats.CategoryStats = []models.CategoryStats{}
	for catRows.Next() {
		var cs models.CategoryStats
		if err := catRows.Scan(&cs.Name, &cs.ContactCount, &cs.MessageCount); err != nil {
			return stats, fmt.Errorf("failed to scan category stats: %w", err)
		}
		stats.CategoryStats = append(stats.CategoryStats, cs)
	}
	if err := catRows.Err(); err != nil {
		return stats, fmt.Errorf("failed to iterate category stats: %w", err)
	}

	return stats, nil
}
