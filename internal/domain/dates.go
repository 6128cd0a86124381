package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateOnly truncates t to midnight UTC of its calendar day
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses YYYY-MM-DD into a UTC date
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, s, time.UTC)
}

// SameDay reports whether both times fall on the same calendar day
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// WeekdayName lowercase english name used in the API ("monday")
func WeekdayName(day time.Weekday) string {
	return strings.ToLower(day.String())
}

// ParseWeekday parses a lowercase or capitalized english weekday name
func ParseWeekday(s string) (time.Weekday, error) {
	for _, day := range Weekdays {
		if strings.EqualFold(day.String(), s) {
			return day, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}
