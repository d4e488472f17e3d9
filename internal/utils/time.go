package utils

import (
	"fmt"
	"math"
	"time"

	"github.com/julianstephens/vitalit/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}

// FormatDate returns the calendar date of t (YYYY-MM-DD) in t's location.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// FormatTime returns the time of day of t (HH:MM:SS) in t's location.
func FormatTime(t time.Time) string {
	return t.Format(constants.TimeFormat)
}

// ParseDate parses a date string (YYYY-MM-DD) as midnight UTC.
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(constants.DateFormat, dateStr)
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) in the specified timezone.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// ValidateDate checks if the string is a calendar date in the standard format.
func ValidateDate(dateStr string) bool {
	_, err := ParseDate(dateStr)
	return err == nil
}

// DaysBetween returns the number of whole calendar days from a to b (b - a).
// Both arguments must be in the standard date format.
func DaysBetween(a, b string) (int, error) {
	ta, err := ParseDate(a)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", a, err)
	}
	tb, err := ParseDate(b)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", b, err)
	}
	// Both are midnight UTC so the difference is an exact multiple of 24h.
	return int(math.Round(tb.Sub(ta).Hours() / 24)), nil
}

// AddDays shifts a date string by n calendar days.
func AddDays(dateStr string, n int) (string, error) {
	t, err := ParseDate(dateStr)
	if err != nil {
		return "", err
	}
	return FormatDate(t.AddDate(0, 0, n)), nil
}
