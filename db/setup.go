// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
)

// DefaultPath is where the setup program keeps the SQLite store, relative to
// the working directory.
const DefaultPath = "prisma/dev.db"

// DefaultCategories are inserted, in this order, into an empty Category table.
var DefaultCategories = []string{"General", "Business", "Personal", "Marketing"}

// Report summarizes what an initialization run found and did.
type Report struct {
	Users      int64
	Categories int64    // after seeding
	Seeded     []string // empty when the table already had rows
}

// Setup runs the full bootstrap against the SQLite file at path: it creates
// the directory and file if needed, creates the schema, reports the user
// count, seeds default categories into an empty table and closes the
// connection. Progress lines are written to out.
func Setup(ctx context.Context, path string, out io.Writer) (Report, error) {
	if out == nil {
		out = io.Discard
	}

	fmt.Fprintf(out, "Setting up SQLite database at %s\n", path)

	conn, err := Open(ctx, SQLite, path)
	if err != nil {
		return Report{}, err
	}
	defer conn.Close()

	// One connection for the whole run.
	conn.SetMaxOpenConns(1)

	report, err := Initialize(ctx, conn, SQLite, out)
	if err != nil {
		return report, err
	}

	if err := conn.Close(); err != nil {
		return report, fmt.Errorf("failed to close database: %w", err)
	}

	if info, err := os.Stat(sqliteFilePath(path)); err == nil {
		fmt.Fprintf(out, "\n✓ Database setup complete! (%s)\n", humanize.Bytes(uint64(info.Size())))
	} else {
		fmt.Fprintln(out, "\n✓ Database setup complete!")
	}

	return report, nil
}

// Initialize creates the schema on an open connection, counts users and
// seeds the default categories when none exist. Every step is idempotent.
func Initialize(ctx context.Context, conn *sql.DB, d Dialect, out io.Writer) (Report, error) {
	if out == nil {
		out = io.Discard
	}

	var report Report

	if err := CreateSchema(ctx, conn, d); err != nil {
		return report, err
	}
	fmt.Fprintln(out, "✓ Database tables created successfully")

	users, err := CountUsers(ctx, conn)
	if err != nil {
		return report, err
	}
	report.Users = users

	if users == 0 {
		fmt.Fprintln(out, "\nNo users found. Please create your first user via the login page")
	} else {
		fmt.Fprintf(out, "\n✓ Database has %s user(s)\n", humanize.Comma(users))
	}

	seeded, categories, err := SeedCategories(ctx, conn)
	if err != nil {
		return report, err
	}
	report.Seeded = seeded
	report.Categories = categories

	if len(seeded) > 0 {
		fmt.Fprintln(out, "\nCreating default categories...")
		fmt.Fprintf(out, "✓ Created %d default categories\n", len(seeded))
	} else {
		fmt.Fprintf(out, "\n✓ Database has %s categories\n", humanize.Comma(categories))
	}

	return report, nil
}

// CountUsers returns the number of User rows. It never writes.
func CountUsers(ctx context.Context, conn *sql.DB) (int64, error) {
	var n int64
	if err := conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM "User"`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

// SeedCategories inserts DefaultCategories when the Category table is empty
// and leaves it alone otherwise. It returns the names inserted and the
// resulting row count.
func SeedCategories(ctx context.Context, conn *sql.DB) ([]string, int64, error) {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	var count int64
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM Category`).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		return nil, count, nil
	}

	for _, name := range DefaultCategories {
		if _, err := tx.ExecContext(ctx, `INSERT INTO Category (name) VALUES ($1)`, name); err != nil {
			return nil, 0, fmt.Errorf("failed to insert category %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("failed to commit default categories: %w", err)
	}

	seeded := make([]string, len(DefaultCategories))
	copy(seeded, DefaultCategories)
	return seeded, int64(len(seeded)), nil
}
