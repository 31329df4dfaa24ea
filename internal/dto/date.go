package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date accepts either a calendar date (YYYY-MM-DD) or a full RFC 3339 timestamp.
// Calendar dates are interpreted as midnight UTC unless the service re-anchors them.
type Date struct {
	time.Time
	DateOnly bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, dateOnly, err := ParseDate(s, time.UTC)
	if err != nil {
		return err
	}
	d.Time, d.DateOnly = parsed, dateOnly
	return nil
}

// ParseDate parses YYYY-MM-DD in loc, or an RFC 3339 timestamp.
func ParseDate(s string, loc *time.Location) (time.Time, bool, error) {
	if t, err := time.ParseInLocation(dateLayout, s, loc); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid date %q, expected YYYY-MM-DD or RFC 3339", s)
	}
	return t, false, nil
}

// In returns the date in loc. A calendar date keeps its day and becomes midnight in loc.
func (d *Date) In(loc *time.Location) time.Time {
	if d.DateOnly {
		y, m, day := d.Time.Date()
		return time.Date(y, m, day, 0, 0, 0, 0, loc)
	}
	return d.Time.In(loc)
}
