// Package timestamp merges normalized times of day with explicit calendar
// dates. The date is always supplied by the caller; nothing here falls back
// to an ambient reference year.
package timestamp

import (
	"fmt"
	"time"

	"github.com/skysift/skysift/core/timeofday"
)

// DateLayout is the calendar date format accepted by ParseDate.
const DateLayout = "2006-01-02"

// Date is a calendar date without a time component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a "2006-01-02" date string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// Validate checks that the date denotes a real calendar day.
func (d Date) Validate() error {
	if d.Year == 0 {
		return fmt.Errorf("date requires an explicit year")
	}
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	if t.Year() != d.Year || t.Month() != d.Month || t.Day() != d.Day {
		return fmt.Errorf("invalid calendar date %04d-%02d-%02d", d.Year, d.Month, d.Day)
	}
	return nil
}

// String returns the date in DateLayout form.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Compose combines a date and a time of day into a full timestamp in loc.
// A nil location means UTC.
func Compose(d Date, tod timeofday.TimeOfDay, loc *time.Location) (time.Time, error) {
	if err := d.Validate(); err != nil {
		return time.Time{}, err
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, tod.Hour, tod.Minute, 0, 0, loc), nil
}
