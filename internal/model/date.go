package model

import (
	"fmt"
	"time"
)

// dateLayout is the canonical calendar-day format. Lexicographic order on
// the string form matches chronological order.
const dateLayout = "2006-01-02"

// Date is a calendar day with no time-of-day component
type Date string

// DateOf returns the calendar day of the given instant
func DateOf(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

// ParseDate parses a YYYY-MM-DD string into a Date
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Time returns the Date as midnight UTC
func (d Date) Time() time.Time {
	t, _ := time.Parse(dateLayout, string(d))
	return t
}

// AddDays returns the Date offset by the given number of days
func (d Date) AddDays(days int) Date {
	return DateOf(d.Time().AddDate(0, 0, days))
}

// Before reports whether d is chronologically before other
func (d Date) Before(other Date) bool {
	return d < other
}

func (d Date) String() string {
	return string(d)
}
