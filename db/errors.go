// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"errors"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// IsUniqueViolation reports whether err is a UNIQUE constraint failure from
// either backend.
func IsUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}

	var pe *pq.Error
	if errors.As(err, &pe) {
		return pe.Code.Name() == "unique_violation"
	}

	return false
}

// IsForeignKeyViolation reports whether err is a FOREIGN KEY constraint
// failure from either backend.
func IsForeignKeyViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
	}

	var pe *pq.Error
	if errors.As(err, &pe) {
		return pe.Code.Name() == "foreign_key_violation"
	}

	return false
}
