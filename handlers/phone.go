// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"regexp"
	"strings"
)

var e164Pattern = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)

// FormatPhoneNumber keeps digits and '+' and assumes a US number when no
// country code is given.
func FormatPhoneNumber(phone string) string {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '+' {
			return r
		}
		return -1
	}, phone)

	if !strings.HasPrefix(cleaned, "+") {
		cleaned = "+1" + cleaned
	}
	return cleaned
}

// ValidatePhoneNumber reports whether phone is in E.164 form
func ValidatePhoneNumber(phone string) bool {
	return e164Pattern.MatchString(phone)
}
