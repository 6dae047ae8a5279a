package model

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Date is a calendar day with no time or zone, kept as its YYYY-MM-DD text.
// Dates compare as strings; that is only sound because the layout is fixed width.
type Date string

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// Today is the local calendar day at now in loc.
func Today(now time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	return DateOf(now.In(loc))
}

// ParseDate validates a user supplied date. Blank input yields the zero Date.
func ParseDate(raw string) (Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if _, err := time.Parse(DateLayout, raw); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return Date(raw), nil
}

func (d Date) IsZero() bool           { return d == "" }
func (d Date) String() string         { return string(d) }
func (d Date) Before(other Date) bool { return d < other }
func (d Date) After(other Date) bool  { return d > other }

// Label is the human text shown next to a due date.
func (d Date) Label(today Date) string {
	switch {
	case d.IsZero():
		return ""
	case d == today:
		return "Due today"
	case d.Before(today):
		return "Overdue: " + d.pretty()
	default:
		return "Due " + d.pretty()
	}
}

func (d Date) pretty() string {
	tm, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return string(d)
	}
	return tm.Format("Jan 2, 2006")
}
