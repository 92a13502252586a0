package utils

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const DayLayout = "2006-01-02"

// Day is a calendar day. Every Day is keyed by its UTC midnight, which is
// also the value persisted in date columns.
type Day struct {
	t time.Time
}

// DayOf converts t to UTC and drops the time of day.
func DayOf(t time.Time) Day {
	u := t.UTC()
	return Day{t: time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)}
}

func Today() Day { return DayOf(time.Now()) }

// ParseDay accepts YYYY-MM-DD or an RFC 3339 timestamp.
func ParseDay(s string) (Day, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Day{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if t, err := time.Parse(DayLayout, s); err == nil {
		return DayOf(t), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return DayOf(t), nil
	}
	return Day{}, fmt.Errorf("%w: invalid date format %q, expected YYYY-MM-DD", ErrInvalidInput, s)
}

// ParseOptionalDay returns nil for an empty string.
func ParseOptionalDay(s string) (*Day, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := ParseDay(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (d Day) Time() time.Time { return d.t }

func (d Day) IsZero() bool { return d.t.IsZero() }

func (d Day) String() string { return d.t.Format(DayLayout) }

func (d Day) Before(o Day) bool { return d.t.Before(o.t) }

func (d Day) After(o Day) bool { return d.t.After(o.t) }

func (d Day) Equal(o Day) bool { return d.t.Equal(o.t) }

func (d Day) AddDays(n int) Day { return Day{t: d.t.AddDate(0, 0, n)} }

// DaysSince counts whole days elapsed between t and now, floored.
func DaysSince(t time.Time, now time.Time) int {
	if now.Before(t) {
		return 0
	}
	return int(now.Sub(t) / (24 * time.Hour))
}

func (d Day) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Day) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: date must be a string", ErrInvalidInput)
	}
	parsed, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
