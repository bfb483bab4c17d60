// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import "time"

// TimeLayout is the text form of CURRENT_TIMESTAMP. Times bound as query
// parameters use it, in UTC, so they compare correctly with column defaults.
const TimeLayout = "2006-01-02 15:04:05"

// FormatTime renders t for use as a query parameter.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}
