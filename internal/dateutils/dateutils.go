// Package dateutils provides common calendar-date operations used throughout
// the application. The ledger works with pure calendar dates; times are
// normalized away as early as possible.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Common date format constants used throughout the application
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutEuropean = "02.01.2006"
	DateLayoutSlashed  = "02/01/2006"
	DateLayoutFull     = "2006-01-02 15:04:05"
)

// CommonFormats is the list of layouts tried when parsing dates from
// external records. ISO comes first; day-first layouts are preferred over
// month-first for the ambiguous slashed forms.
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutEuropean,
	DateLayoutSlashed,
	"02-01-2006",
	DateLayoutFull,
	"2006/01/02",
	"2.1.2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// ParseDate attempts to parse a date string using the common layouts.
// The result is normalized to a pure calendar date in UTC.
func ParseDate(dateStr string) (time.Time, error) {
	cleaned := strings.TrimSpace(dateStr)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, cleaned); err == nil {
			return Normalize(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// Normalize strips the time-of-day and location from t, leaving a calendar
// date at midnight UTC. All dates stored in the ledger pass through here.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD).
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// Range is an inclusive calendar-date interval. A zero From or To leaves
// that side unbounded.
type Range struct {
	From time.Time
	To   time.Time
}

// NewRange builds a Range from two dates, normalizing both ends.
// Returns an error when both ends are set and From is after To.
func NewRange(from, to time.Time) (Range, error) {
	r := Range{}
	if !from.IsZero() {
		r.From = Normalize(from)
	}
	if !to.IsZero() {
		r.To = Normalize(to)
	}
	if !r.From.IsZero() && !r.To.IsZero() && r.From.After(r.To) {
		return Range{}, fmt.Errorf("invalid date range: %s is after %s", ToISODate(r.From), ToISODate(r.To))
	}
	return r, nil
}

// Contains reports whether date falls inside the range, inclusive on both
// ends.
func (r Range) Contains(date time.Time) bool {
	d := Normalize(date)
	if !r.From.IsZero() && d.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && d.After(r.To) {
		return false
	}
	return true
}

// StartOfMonth returns the first day of the month for a given date.
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// EndOfMonth returns the last day of the month for a given date.
func EndOfMonth(date time.Time) time.Time {
	return StartOfMonth(date).AddDate(0, 1, -1)
}

// MonthRange returns the inclusive range covering the month of date.
func MonthRange(date time.Time) Range {
	return Range{From: StartOfMonth(date), To: EndOfMonth(date)}
}
