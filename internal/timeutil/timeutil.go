package timeutil

import (
	"fmt"
	"time"
)

// MaxClockDuration is the largest duration expressible on a 24h clock
// face, used as the default upper bound for duration filters.
const MaxClockDuration = 23*time.Hour + 59*time.Minute + 59*time.Second

// FormatHMS formats a duration as HH:MM:SS. Hours are not wrapped at
// 24, so aggregated totals render correctly.
func FormatHMS(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	seconds := int64(d / time.Second)
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// ParseHMS parses a HH:MM:SS string into a duration. Hours may exceed
// 23; minutes and seconds must be below 60.
func ParseHMS(s string) (time.Duration, error) {
	var h, m, sec int64
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if h < 0 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return 0, fmt.Errorf("invalid duration %q: component out of range", s)
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second, nil
}

// HMS folds independently entered hour/minute/second components into a
// duration. Components are validated against the 24h clock (0-23 hours,
// 0-59 minutes and seconds); an out-of-range component is an error so
// the caller can reject the input rather than show a corrected value.
func HMS(h, m, s int) (time.Duration, error) {
	if h < 0 || h > 23 {
		return 0, fmt.Errorf("hours %d out of range 0-23", h)
	}
	if m < 0 || m > 59 {
		return 0, fmt.Errorf("minutes %d out of range 0-59", m)
	}
	if s < 0 || s > 59 {
		return 0, fmt.Errorf("seconds %d out of range 0-59", s)
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second, nil
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59 of the same day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
