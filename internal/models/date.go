package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Date is a calendar day without a time-of-day component. Readings and
// checklist entries are keyed by Date, and slot existence checks compare
// dates exactly, so the zone and clock portion are always stripped.
type Date struct {
	t time.Time
}

// NewDate builds a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an instant to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses the canonical YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

func (d Date) String() string { return d.t.Format(time.DateOnly) }

// Time returns the midnight instant of the day in UTC.
func (d Date) Time() time.Time { return d.t }

// IsZero reports whether the date was never set.
func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

func (d Date) After(other Date) bool { return d.t.After(other.t) }

// AddDays returns the date shifted by the given number of days.
func (d Date) AddDays(n int) Date { return DateOf(d.t.AddDate(0, 0, n)) }

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
