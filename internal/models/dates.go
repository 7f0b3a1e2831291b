package models

import (
	"strings"
	"time"
)

// DateLayout is the calendar-date format used by every date field on the form
const DateLayout = "2006-01-02"

// ParseDate parses a form date into midnight UTC of the same calendar day.
// Full timestamps keep the calendar day of their own offset so that a value
// like "2026-03-01T00:00:00+05:30" does not shift to the previous day.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, true
	}

	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
		}
	}

	return time.Time{}, false
}

// FormatDate renders t as a form date
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
