package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/conquista/internal/constants"
)

// Clock answers "what day is it" in a fixed timezone. The zero value uses
// the system clock in local time.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// NewClock returns a clock for an IANA timezone name; "" and "Local" mean
// the system timezone.
func NewClock(timezone string) (Clock, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return Clock{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return Clock{loc: loc, now: time.Now}, nil
}

// FixedClock always reports t. Used by tests and by replays of past days.
func FixedClock(t time.Time) Clock {
	return Clock{loc: t.Location(), now: func() time.Time { return t }}
}

// Now returns the current instant in the clock's timezone.
func (c Clock) Now() time.Time {
	now := time.Now
	if c.now != nil {
		now = c.now
	}
	loc := c.loc
	if loc == nil {
		loc = time.Local
	}
	return now().In(loc)
}

// Today returns the current calendar day (YYYY-MM-DD).
func (c Clock) Today() string {
	return c.Now().Format(constants.DateFormat)
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == constants.DefaultTimezone {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}

// ParseDate parses a calendar day (YYYY-MM-DD) at midnight UTC. Day
// arithmetic stays in UTC so DST transitions never skip or repeat a day.
func ParseDate(day string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", day)
	}
	return t, nil
}

// ValidateDate reports whether day is a real YYYY-MM-DD calendar day.
func ValidateDate(day string) bool {
	_, err := ParseDate(day)
	return err == nil
}

// AddDays shifts a calendar day by n days (negative moves backward).
func AddDays(day string, n int) (string, error) {
	t, err := ParseDate(day)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(constants.DateFormat), nil
}

// MonthBounds returns the first and last day of a YYYY-MM month.
func MonthBounds(month string) (string, string, error) {
	t, err := time.Parse(constants.MonthFormat, month)
	if err != nil {
		return "", "", fmt.Errorf("invalid month %q (expected YYYY-MM)", month)
	}
	first := t.Format(constants.DateFormat)
	last := t.AddDate(0, 1, -1).Format(constants.DateFormat)
	return first, last, nil
}
