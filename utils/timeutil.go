package utils

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/bookwell/bookwell-api/apperr"
)

var timePattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// TimeToMinutes converts an "HH:MM" string to minutes since midnight.
func TimeToMinutes(t string) (int, error) {
	m := timePattern.FindStringSubmatch(t)
	if m == nil {
		return 0, apperr.Validation("invalid time format %q, expected HH:MM", t)
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return hours*60 + minutes, nil
}

// MinutesToTime converts minutes since midnight to a zero-padded
// "HH:MM" string. No 24h wraparound is applied; callers keep minutes
// below 1440 for valid output.
func MinutesToTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
