// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-sms/cliparse"
	"github.com/danielhkuo/quickly-sms/db"
	"github.com/danielhkuo/quickly-sms/middleware"
	"github.com/danielhkuo/quickly-sms/models"
)

const invalidPhoneMessage = "Invalid phone number format. Use E.164 format (e.g., +1234567890)"

type ContactHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewContactHandler(db *sql.DB, cfg cliparse.Config) *ContactHandler {
	return &ContactHandler{db: db, cfg: cfg}
}

const contactSelect = `
	SELECT c.id, c.phoneNumber, c.categoryId, c.createdAt,
		cat.id, cat.name, cat.createdAt
	FROM Contact c
	JOIN Category cat ON cat.id = c.categoryId
`

// ListContacts handles GET /contacts
func (h *ContactHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.QueryContext(r.Context(), contactSelect+`
		ORDER BY c.createdAt DESC, c.id DESC
	`)
	if err != nil {
		slog.Error("failed to query contacts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	contacts := []models.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			slog.Error("failed to scan contact", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate contacts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, contacts)
}

// CreateContact handles POST /contacts
func (h *ContactHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var req models.CreateContactRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.PhoneNumber == "" || req.CategoryID == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Phone number and category are required")
		return
	}

	phone := FormatPhoneNumber(req.PhoneNumber)
	if !ValidatePhoneNumber(phone) {
		middleware.ErrorResponse(w, http.StatusBadRequest, invalidPhoneMessage)
		return
	}

	var id int64
	err := h.db.QueryRowContext(r.Context(), `
		INSERT INTO Contact (phoneNumber, categoryId)
		VALUES ($1, $2)
		RETURNING id
	`, phone, int64(req.CategoryID)).Scan(&id)
	if db.IsForeignKeyViolation(err) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Category not found")
		return
	}
	if err != nil {
		slog.Error("failed to insert contact", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create contact")
		return
	}

	contact, err := getContact(r.Context(), h.db, id)
	if err != nil {
		slog.Error("failed to load contact", "error", err, "contact_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("contact created", "contact_id", id, "category_id", contact.CategoryID)

	middleware.JSONResponse(w, http.StatusCreated, contact)
}

// BulkCreateContacts handles POST /contacts/bulk
// Entries with an invalid phone number, an unknown category, or a phone
// number already present in the same category are skipped.
func (h *ContactHandler) BulkCreateContacts(w http.ResponseWriter, r *http.Request) {
	var req models.BulkContactsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Contacts) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Contacts array is required")
		return
	}

	type key struct {
		phone      string
		categoryID int64
	}
	seen := make(map[key]bool)
	valid := make([]key, 0, len(req.Contacts))
	for _, c := range req.Contacts {
		phone := FormatPhoneNumber(c.PhoneNumber)
		if c.PhoneNumber == "" || !ValidatePhoneNumber(phone) || c.CategoryID <= 0 {
			continue
		}
		k := key{phone: phone, categoryID: int64(c.CategoryID)}
		if seen[k] {
			continue
		}
		seen[k] = true
		valid = append(valid, k)
	}

	tx, err := h.db.BeginTx(r.Context(), nil)
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	inserted := 0
	for _, k := range valid {
		var categories, existing int
		err := tx.QueryRowContext(r.Context(), `
			SELECT
				(SELECT COUNT(*) FROM Category WHERE id = $1),
				(SELECT COUNT(*) FROM Contact WHERE categoryId = $1 AND phoneNumber = $2)
		`, k.categoryID, k.phone).Scan(&categories, &existing)
		if err != nil {
			slog.Error("failed to check contact", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if categories == 0 || existing > 0 {
			continue
		}

		_, err = tx.ExecContext(r.Context(), `
			INSERT INTO Contact (phoneNumber, categoryId)
			VALUES ($1, $2)
		`, k.phone, k.categoryID)
		if err != nil {
			slog.Error("failed to insert contact", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create contacts")
			return
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit contacts", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create contacts")
		return
	}

	slog.Info("contacts imported", "requested", len(req.Contacts), "inserted", inserted)

	middleware.JSONResponse(w, http.StatusCreated, models.BulkContactsResponse{
		Success: true,
		Count:   inserted,
	})
}

// DeleteContact handles DELETE /contacts/{id}
func (h *ContactHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Contact")
	if !ok {
		return
	}

	result, err := h.db.ExecContext(r.Context(), "DELETE FROM Contact WHERE id = $1", id)
	if err != nil {
		slog.Error("failed to delete contact", "error", err, "contact_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete contact")
		return
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Contact not found")
		return
	}

	slog.Info("contact deleted", "contact_id", id)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

func getContact(ctx context.Context, conn *sql.DB, id int64) (models.Contact, error) {
	return scanContact(conn.QueryRowContext(ctx, contactSelect+" WHERE c.id = $1", id))
}

type scanner interface {
	Scan(dest ...any) error
}

func scanContact(row scanner) (models.Contact, error) {
	var c models.Contact
	var cat models.Category
	err := row.Scan(&c.ID, &c.PhoneNumber, &c.CategoryID, &c.CreatedAt,
		&cat.ID, &cat.Name, &cat.CreatedAt)
	if err != nil {
		return models.Contact{}, err
	}
	c.Category = &cat
	return c, nil
}
