package models

import (
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Timestamp is a time.Time that also decodes a bare calendar date
// (YYYY-MM-DD, read as midnight UTC) from JSON.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string")
	}
	parsed, err := parseTimestamp(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// NullTimestamp is a patch field that tells an absent key apart from an
// explicit null, so nullable columns can be cleared.
type NullTimestamp struct {
	Set   bool
	Valid bool
	Time  time.Time
}

// NewNullTimestamp returns a set, non-null value.
func NewNullTimestamp(t time.Time) NullTimestamp {
	return NullTimestamp{Set: true, Valid: true, Time: t}
}

func (n *NullTimestamp) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Valid, n.Time = false, time.Time{}
		return nil
	}
	var ts Timestamp
	if err := ts.UnmarshalJSON(b); err != nil {
		return err
	}
	n.Valid, n.Time = true, ts.Time
	return nil
}

// DateError reports a date field that is neither RFC 3339 nor YYYY-MM-DD.
type DateError struct {
	Value string
}

func (e *DateError) Error() string {
	return fmt.Sprintf("invalid date %q: use RFC 3339 or YYYY-MM-DD", e.Value)
}

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	return time.Time{}, &DateError{Value: s}
}
