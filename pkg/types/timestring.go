package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay number of minutes in a day
const MinutesPerDay = 24 * 60

var (
	// ErrInvalidTimeFormat returned when a value is not HH:MM
	ErrInvalidTimeFormat = errors.New("types: invalid time format, expected HH:MM")

	// ErrTimeOverflow returned when arithmetic leaves the 00:00-24:00 range
	ErrTimeOverflow = errors.New("types: time out of day range")
)

// TimeString is a time of day in "HH:MM" form.
// "24:00" is accepted as the end-of-day boundary for closing hours.
type TimeString string

// NewTimeString returns the time of day of t, truncated to minutes
func NewTimeString(t time.Time) TimeString {
	return FromMinutes(t.Hour()*60 + t.Minute())
}

// NewTimeStringFromString parses and normalizes s ("9:00" becomes "09:00")
func NewTimeStringFromString(s string) (TimeString, error) {
	minutes, err := parseMinutes(s)
	if err != nil {
		return "", err
	}
	return FromMinutes(minutes), nil
}

// MustTimeString panics on malformed input. Intended for constants and tests.
func MustTimeString(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// FromMinutes builds a TimeString from minutes since midnight
func FromMinutes(minutes int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60))
}

// Minutes returns minutes since midnight. Malformed values yield -1.
func (t TimeString) Minutes() int {
	minutes, err := parseMinutes(string(t))
	if err != nil {
		return -1
	}
	return minutes
}

// Validate checks the HH:MM format
func (t TimeString) Validate() error {
	_, err := parseMinutes(string(t))
	return err
}

// IsZero reports whether the value is empty
func (t TimeString) IsZero() bool {
	return t == ""
}

// String implements fmt.Stringer
func (t TimeString) String() string {
	return string(t)
}

// AddMinutes shifts the time, failing when the result leaves the day
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	current, err := parseMinutes(string(t))
	if err != nil {
		return "", err
	}

	result := current + minutes
	if result < 0 || result > MinutesPerDay {
		return "", fmt.Errorf("%w: %s%+d min", ErrTimeOverflow, t, minutes)
	}

	return FromMinutes(result), nil
}

// IsBefore reports whether t is strictly earlier than other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter reports whether t is strictly later than other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// Scan implements sql.Scanner. Postgres TIME arrives as "HH:MM:SS" or time.Time.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeFormat, src)
	}
}

func (t *TimeString) scanString(s string) error {
	// "HH:MM:SS" -> "HH:MM"
	if parts := strings.Split(s, ":"); len(parts) == 3 {
		s = parts[0] + ":" + parts[1]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value implements driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

func parseMinutes(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[1]) != 2 || len(parts[0]) == 0 || len(parts[0]) > 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	if hours < 0 || minutes < 0 || minutes > 59 || hours > 24 || (hours == 24 && minutes != 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	return hours*60 + minutes, nil
}
