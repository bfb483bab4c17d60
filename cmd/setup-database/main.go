// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command setup-database bootstraps the local SQLite store at prisma/dev.db:
// it creates the directory, the file, all tables and indexes, and seeds the
// default categories when there are none. It takes no flags and is safe to
// run any number of times.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/danielhkuo/quickly-sms/db"
	"github.com/danielhkuo/quickly-sms/logging"
)

func main() {
	logging.Setup(os.Stderr, slog.LevelInfo)

	if _, err := db.Setup(context.Background(), db.DefaultPath, os.Stdout); err != nil {
		slog.Error("database setup failed", "path", db.DefaultPath, "error", err)
		os.Exit(1)
	}
}
