// Package timeutil converts between wall-clock components and the naive
// local-time strings used by the task API. Timestamps are deliberately stored
// without a timezone offset so the displayed start/finish time matches what
// the user typed regardless of device timezone.
package timeutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	layoutLocal  = "2006-01-02T15:04:05"
	layoutMinute = "2006-01-02T15:04"
	layoutDate   = "2006-01-02"
	layoutClock  = "15:04"
)

var ErrEmptyDate = errors.New("empty date")

// FormatLocal renders t as YYYY-MM-DDTHH:mm:00, zero-padded, seconds
// truncated. No timezone conversion is applied.
func FormatLocal(t time.Time) string {
	return t.Truncate(time.Minute).Format(layoutLocal)
}

// ParseLocal parses a naive local timestamp. Minute precision, second
// precision and RFC 3339 inputs are accepted; any "Z" suffix or UTC offset is
// stripped rather than converted, keeping the wall-clock reading intact.
func ParseLocal(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrEmptyDate
	}

	s = strings.TrimSuffix(s, "Z")
	if len(s) > 10 {
		// Offsets can only appear after the date part, which itself
		// contains dashes.
		if i := strings.IndexAny(s[10:], "+-"); i >= 0 {
			s = s[:10+i]
		}
	}

	for _, layout := range []string{layoutLocal, layoutMinute} {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid local timestamp: %q", s)
}

// ComposeLocal builds a local timestamp string from separately entered date
// and clock fields. An empty clock falls back to defaultClock, so a bare
// start date defaults to 00:00 and a bare finish date to 23:59.
func ComposeLocal(date, clock, defaultClock string) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return "", ErrEmptyDate
	}
	if _, err := time.ParseInLocation(layoutDate, date, time.Local); err != nil {
		return "", fmt.Errorf("invalid date: %q", date)
	}

	clock = strings.TrimSpace(clock)
	if clock == "" {
		clock = defaultClock
	}
	if _, err := time.ParseInLocation(layoutClock, clock, time.Local); err != nil {
		return "", fmt.Errorf("invalid time: %q", clock)
	}

	return date + "T" + clock + ":00", nil
}
