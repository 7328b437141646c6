package utils

import (
	"fmt"
	"strings"
)

// FormatPrice renders a route price the way route cards show it: whole
// units followed by the currency code, e.g. "120 USD".
func FormatPrice(amount float64, currency string) string {
	out := fmt.Sprintf("%d", int64(amount))
	if c := strings.TrimSpace(currency); c != "" {
		out += " " + c
	}
	return out
}

// FormatDuration renders minutes as "2h" or "2h 15m". Zero or negative
// durations render as "".
func FormatDuration(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	out := fmt.Sprintf("%dh", minutes/60)
	if m := minutes % 60; m > 0 {
		out += fmt.Sprintf(" %dm", m)
	}
	return out
}
