package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire format of every date the API reads or writes.
const DateLayout = time.DateOnly

// Date is a calendar day carried over JSON as DateLayout. Inputs may also be
// a full RFC 3339 timestamp, of which only the day is kept. An empty string
// decodes to the zero Date, which callers treat as "no date".
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar day in UTC.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts DateLayout or RFC 3339.
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return NewDate(t), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("date %q is not %s or RFC 3339", s, DateLayout)
	}
	return NewDate(t), nil
}

// DateFromPtr returns nil for a nil or zero time.
func DateFromPtr(t *time.Time) *Date {
	if t == nil || t.IsZero() {
		return nil
	}
	d := NewDate(*t)
	return &d
}

// Ptr returns the day as a *time.Time, nil for the zero Date.
func (d Date) Ptr() *time.Time {
	if d.IsZero() {
		return nil
	}
	t := NewDate(d.Time).Time
	return &t
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}

	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}
