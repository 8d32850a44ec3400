package services

import (
	"fmt"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// parseClock converts a strict 24h "HH:MM" string to minutes since
// midnight. Loose inputs like "9:30" are rejected.
func parseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func parseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return d, nil
}

// intervalsOverlap reports whether [startA, startA+durA) and
// [startB, startB+durB) intersect, all in minutes since midnight.
func intervalsOverlap(startA, durA, startB, durB int) bool {
	return startA < startB+durB && startB < startA+durA
}

// slotStartsAt combines a calendar date with a minutes-since-midnight
// offset into a concrete local instant.
func slotStartsAt(date time.Time, minutes int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, time.Local)
}
