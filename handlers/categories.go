// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/danielhkuo/quickly-sms/cliparse"
	"github.com/danielhkuo/quickly-sms/db"
	"github.com/danielhkuo/quickly-sms/middleware"
	"github.com/danielhkuo/quickly-sms/models"
)

type CategoryHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewCategoryHandler(db *sql.DB, cfg cliparse.Config) *CategoryHandler {
	return &CategoryHandler{db: db, cfg: cfg}
}

// ListCategories handles GET /categories
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.QueryContext(r.Context(), `
		SELECT id, name, createdAt
		FROM Category
		ORDER BY name ASC
	`)
	if err != nil {
		slog.Error("failed to query categories", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			slog.Error("failed to scan category", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate categories", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, categories)
}

// CreateCategory handles POST /categories
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCategoryRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Category name is required")
		return
	}

	var id int64
	err := h.db.QueryRowContext(r.Context(), `
		INSERT INTO Category (name)
		VALUES ($1)
		RETURNING id
	`, name).Scan(&id)
	if db.IsUniqueViolation(err) {
		middleware.ErrorResponse(w, http.StatusConflict, "Category already exists")
		return
	}
	if err != nil {
		slog.Error("failed to insert category", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	category, err := getCategory(r.Context(), h.db, id)
	if err != nil {
		slog.Error("failed to load category", "error", err, "category_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("category created", "category_id", id, "name", name)

	middleware.JSONResponse(w, http.StatusCreated, category)
}

// DeleteCategory handles DELETE /categories/{id}
// Contacts in the category are removed; its SMS logs keep a null categoryId.
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Category")
	if !ok {
		return
	}

	result, err := h.db.ExecContext(r.Context(), "DELETE FROM Category WHERE id = $1", id)
	if err != nil {
		slog.Error("failed to delete category", "error", err, "category_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete category")
		return
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Category not found")
		return
	}

	slog.Info("category deleted", "category_id", id)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

func getCategory(ctx context.Context, conn *sql.DB, id int64) (models.Category, error) {
	var c models.Category
	err := conn.QueryRowContext(ctx,
		"SELECT id, name, createdAt FROM Category WHERE id = $1", id,
	).Scan(&c.ID, &c.Name, &c.CreatedAt)
	return c, err
}

// pathID parses the {id} path value and writes a 400 when it is not a
// positive integer.
func pathID(w http.ResponseWriter, r *http.Request, kind string) (int64, bool) {
	raw := r.PathValue("id")
	if raw == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, kind+" ID is required")
		return 0, false
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid "+strings.ToLower(kind)+" ID")
		return 0, false
	}

	return id, true
}
