package entity

import (
	"fmt"
	"time"
)

const dayLayout = "2006-01-02"

// Day is a calendar day, stored as midnight UTC. The zero value is the zero
// time and reports IsZero.
type Day struct {
	t time.Time
}

// ParseDay parses a "YYYY-MM-DD" string into a Day.
func ParseDay(s string) (Day, error) {
	t, err := time.ParseInLocation(dayLayout, s, time.UTC)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Day{t: t}, nil
}

// DayOf truncates t to its calendar day in UTC.
func DayOf(t time.Time) Day {
	u := t.UTC()
	return Day{t: time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)}
}

// String returns the day as "YYYY-MM-DD".
func (d Day) String() string {
	return d.t.Format(dayLayout)
}

// Next returns the following calendar day. Month and year boundaries roll
// over through the time package, never through string arithmetic.
func (d Day) Next() Day {
	return Day{t: d.t.AddDate(0, 0, 1)}
}

// Before reports whether d is earlier than other.
func (d Day) Before(other Day) bool {
	return d.t.Before(other.t)
}

// Equal reports whether d and other are the same calendar day.
func (d Day) Equal(other Day) bool {
	return d.t.Equal(other.t)
}

// IsZero reports whether d is the zero Day.
func (d Day) IsZero() bool {
	return d.t.IsZero()
}

// Time returns the underlying midnight-UTC time.
func (d Day) Time() time.Time {
	return d.t
}

// MarshalJSON encodes the day as a "YYYY-MM-DD" JSON string.
func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a "YYYY-MM-DD" JSON string.
func (d *Day) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date JSON: %s", s)
	}
	parsed, err := ParseDay(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
