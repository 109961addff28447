package utils

import (
	"fmt"
	"time"
)

// DayFormat is the canonical day-granularity date key.
const DayFormat = "2006-01-02"

var dateLayouts = []string{
	DayFormat,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// NormalizeDate truncates any supported date or datetime string to
// YYYY-MM-DD. Two bookings on the same calendar day must always share the
// same key, whatever time-of-day noise the client sent.
func NormalizeDate(raw string) (string, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(DayFormat), nil
		}
	}
	return "", fmt.Errorf("invalid date format: %q", raw)
}

// TruncateDay is NormalizeDate for values already trusted to be dates;
// unparseable input is returned as-is so a malformed legacy record can
// never aggregate with a real day.
func TruncateDay(raw string) string {
	if day, err := NormalizeDate(raw); err == nil {
		return day
	}
	return raw
}
