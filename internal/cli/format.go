// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Currency is the symbol prefixed by FormatMoney.
var Currency = "₹"

// FormatMoney formats a whole-rupee amount with the currency symbol and
// Indian digit grouping.
// e.g., 175000 -> "₹1,75,000", -1200 -> "-₹1,200"
func FormatMoney(n int64) string {
	if n < 0 {
		return "-" + Currency + FormatNumber(-n)
	}
	return Currency + FormatNumber(n)
}

// FormatNumber adds lakh/crore separators to an integer: the last three
// digits form one group, every group before that has two.
// e.g., 1234567 -> "12,34,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	head, tail := s[:len(s)-3], s[len(s)-3:]

	var result strings.Builder
	remainder := len(head) % 2
	if remainder > 0 {
		result.WriteString(head[:remainder])
	}
	for i := remainder; i < len(head); i += 2 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(head[i : i+2])
	}
	result.WriteByte(',')
	result.WriteString(tail)
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatDelta formats a money delta with an explicit sign.
func FormatDelta(delta int64) string {
	if delta >= 0 {
		return "+" + FormatMoney(delta)
	}
	return "-" + FormatMoney(-delta)
}

// FormatSafeSpend renders the optional safe-to-spend figure.
func FormatSafeSpend(v *int64) string {
	if v == nil {
		return "n/a"
	}
	return FormatMoney(*v)
}

// FormatDate formats a timestamp for table cells.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}
