// Package task defines the task model, batch validation, and the
// dependency graph that priority scoring operates on.
package task

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire format for due dates.
const DateLayout = "2006-01-02"

// Validation bounds for task fields.
const (
	MinEstimatedHours = 0.1
	MaxAdvisoryHours  = 1000.0
	MinImportance     = 1
	MaxImportance     = 10
)

// Task is one unit of work submitted for scoring.
type Task struct {
	ID             int64   `json:"task_id"`
	Title          string  `json:"title"`
	DueDate        Date    `json:"due_date"`
	EstimatedHours float64 `json:"estimated_hours"`
	Importance     int     `json:"importance"`
	Dependencies   []int64 `json:"dependencies,omitempty"`
}

// Date is a calendar day without time-of-day or zone.
// The zero value means "not set".
type Date struct {
	t time.Time
}

// NewDate creates a Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a date in YYYY-MM-DD format.
func ParseDate(value string) (Date, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date format, use YYYY-MM-DD: %w", err)
	}
	return Date{t: t}, nil
}

// DateOf returns the calendar day of the given instant in its location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Time returns the date as midnight UTC.
func (d Date) Time() time.Time {
	return d.t
}

// Equal reports whether two dates are the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// Before reports whether d is an earlier calendar day than other.
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// DaysUntil returns the number of whole days from d to other.
// The result is negative when other is earlier than d.
func (d Date) DaysUntil(other Date) int {
	return int(other.t.Sub(d.t) / (24 * time.Hour))
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// MarshalJSON encodes the date as a YYYY-MM-DD string, or null when unset.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.t.Format(DateLayout) + `"`), nil
}

// UnmarshalJSON decodes a YYYY-MM-DD string. Null and the empty string
// leave the date unset so validation can report it as missing.
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid date: %w", err)
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
