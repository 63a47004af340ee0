package util

import (
	"strconv"
	"time"
)

// ParseDay parses a calendar date. Upstream dates are YYYY-MM-DD but day and
// month are not always zero padded, so "2025-09-1" must parse too.
func ParseDay(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-1-2", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// ParseDayDefault parses a calendar date or returns default if empty/invalid.
func ParseDayDefault(s string, def time.Time) time.Time {
	if t, ok := ParseDay(s); ok {
		return t
	}
	return def
}

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
