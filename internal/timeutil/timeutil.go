// Package timeutil validates the date and clock-time strings used by the
// appointment store and converts clock times to minute-of-day offsets for
// interval math.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// IsValidDate reports whether s is structurally a YYYY-MM-DD date.
// Calendar validity is not checked; stored records use the same lax format,
// and tightening it would reject input the store already accepts.
func IsValidDate(s string) bool {
	return dateRe.MatchString(s)
}

// IsValidTime reports whether s is structurally an HH:MM clock time.
// Range validity is not checked, for the same reason as IsValidDate.
func IsValidTime(s string) bool {
	return timeRe.MatchString(s)
}

// ToMinutes converts an HH:MM string to minutes since midnight.
// It handles same-day intervals only; there is no day rollover.
func ToMinutes(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time format: %s", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour: %w", err)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute: %w", err)
	}

	return hour*60 + minute, nil
}

// FromMinutes formats minutes since midnight back to an HH:MM string.
func FromMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
