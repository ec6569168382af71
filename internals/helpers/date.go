// file: internals/helpers/date.go
package helper

import (
	"strings"
	"time"
)

// ParseLocalDate accepts YYYY-MM-DD (preferred) or RFC3339 and anchors
// the result to midnight UTC — session dates carry no time component.
func ParseLocalDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, err
		}
	}
	return DateOnly(t), nil
}

// DateOnly strips the time-of-day portion.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a date the way the API speaks it (YYYY-MM-DD).
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// WholeDaysBetween returns the signed day count from a to b.
func WholeDaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}
