// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/quickly-sms/cliparse"
	"github.com/danielhkuo/quickly-sms/handlers"
	"github.com/danielhkuo/quickly-sms/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	categoryHandler := handlers.NewCategoryHandler(db, cfg)
	contactHandler := handlers.NewContactHandler(db, cfg)
	smsHandler := handlers.NewSmsHandler(db, cfg)
	dashboardHandler := handlers.NewDashboardHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Categories
	mux.HandleFunc("GET /categories", middleware.WithLogging(categoryHandler.ListCategories))
	mux.HandleFunc("POST /categories", middleware.WithLogging(categoryHandler.CreateCategory))
	mux.HandleFunc("DELETE /categories/{id}", middleware.WithLogging(categoryHandler.DeleteCategory))

	// Contacts
	mux.HandleFunc("GET /contacts", middleware.WithLogging(contactHandler.ListContacts))
	mux.HandleFunc("POST /contacts", middleware.WithLogging(contactHandler.CreateContact))
	mux.HandleFunc("POST /contacts/bulk", middleware.WithLogging(contactHandler.BulkCreateContacts))
	mux.HandleFunc("DELETE /contacts/{id}", middleware.WithLogging(contactHandler.DeleteContact))

	// SMS history and provider callbacks
	mux.HandleFunc("GET /sms/history", middleware.WithLogging(smsHandler.GetHistory))
	mux.HandleFunc("POST /sms/webhook", middleware.WithLogging(smsHandler.Webhook))

	// Dashboard
	mux.HandleFunc("GET /dashboard/stats", middleware.WithLogging(dashboardHandler.GetStats))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-sms API v1"))
	})

	return mux
}
