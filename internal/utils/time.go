package utils

import (
	"strings"
	"time"
)

const (
	LayoutDate  = "2006-01-02"
	LayoutClock = "15:04"
)

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(LayoutDate, strings.TrimSpace(s), time.Local)
}

// ParseClock parses HH:MM.
func ParseClock(s string) (time.Time, error) {
	return time.Parse(LayoutClock, strings.TrimSpace(s))
}

// FormatDate formats time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(LayoutDate)
}

// DateOnly cuts a timestamp-ish string down to its date part.
func DateOnly(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 10 {
		return v[:10]
	}
	return v
}

// TimeHM cuts "15:04:05" down to "15:04".
func TimeHM(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 5 {
		return v[:5]
	}
	return v
}
