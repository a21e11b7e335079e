package market

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDate is returned by ParseDate for input not in DateLayout.
var ErrInvalidDate = errors.New("invalid date")

// DateLayout is the calendar date format used on the command line and in CSV files.
const DateLayout = "2006-01-02"

// ParseDate parses a yyyy-mm-dd date as a UTC calendar day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q (want yyyy-mm-dd)", ErrInvalidDate, strings.TrimSpace(s))
	}
	return t, nil
}

// Day truncates t to its UTC calendar day.
func Day(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatRange renders a date range the way it is shown to the user.
func FormatRange(start, end time.Time) string {
	return start.Format(DateLayout) + " - " + end.Format(DateLayout)
}
