package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/danielhkuo/quickly-sms/cliparse"
	"github.com/danielhkuo/quickly-sms/db"
	"github.com/danielhkuo/quickly-sms/logging"
	"github.com/danielhkuo/quickly-sms/middleware"
	"github.com/danielhkuo/quickly-sms/router"
)

func main() {
	var err error

	logging.Setup(os.Stderr, slog.LevelInfo)

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Connect to the store (creates the SQLite file if needed)
	dbConn, err := db.Open(ctx, cfg.Dialect(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema and seed default categories
	report, err := db.Initialize(ctx, dbConn, cfg.Dialect(), nil)
	if err != nil {
		slog.Error("database initialization failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready",
		"type", cfg.DatabaseType,
		"users", report.Users,
		"categories", report.Categories,
		"seeded", len(report.Seeded),
	)
	if cfg.WebhookToken == "" {
		slog.Warn("webhook signature checks disabled; set TWILIO_AUTH_TOKEN to enable")
	}

	// Create router
	mux := router.NewRouter(dbConn, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
