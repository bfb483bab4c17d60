// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Foreign key enforcement is per connection in SQLite and off by default, so
// it rides on the DSN and every pooled connection gets it. Times are written
// in SQLite's own format so they compare cleanly with CURRENT_TIMESTAMP.
// Transactions begin IMMEDIATE: two deferred read-then-write transactions
// deadlock on their shared locks and fail with SQLITE_BUSY without waiting
// out busy_timeout.
var sqliteParams = []string{
	"_pragma=foreign_keys(1)",
	"_pragma=busy_timeout(5000)",
	"_time_format=sqlite",
	"_txlock=immediate",
}

// Open connects to the store and verifies the connection. For SQLite the
// directory holding the database file is created first and the file itself is
// created by the driver if missing.
func Open(ctx context.Context, d Dialect, dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("empty %s connection string", d)
	}

	if d == SQLite {
		if err := EnsureDir(dsn); err != nil {
			return nil, err
		}
		dsn = sqliteDSN(dsn)
	}

	conn, err := sql.Open(d.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", d, err)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w", d, err)
	}

	return conn, nil
}

// EnsureDir creates the directory that will hold the SQLite file at path.
// An existing directory is not an error.
func EnsureDir(path string) error {
	if isMemoryPath(path) {
		return nil
	}

	dir := filepath.Dir(sqliteFilePath(path))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create database directory %s: %w", dir, err)
	}
	return nil
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + strings.Join(sqliteParams, "&")
}

// sqliteFilePath strips a file: scheme and any query string.
func sqliteFilePath(dsn string) string {
	if i := strings.IndexByte(dsn, '?'); i >= 0 {
		dsn = dsn[:i]
	}
	return strings.TrimPrefix(dsn, "file:")
}

func isMemoryPath(dsn string) bool {
	p := sqliteFilePath(dsn)
	return p == ":memory:" || p == "" || strings.Contains(dsn, "mode=memory")
}
