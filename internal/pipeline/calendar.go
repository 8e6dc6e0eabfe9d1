package pipeline

import "time"

// ymdLayout is the calendar-day key used for per-day buckets.
const ymdLayout = "2006-01-02"

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns Monday 00:00 of the ISO week containing t.
func StartOfWeek(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, -weekdayOffset(t))
}

// weekdayOffset counts days since Monday: Monday is 0, Sunday is 6.
func weekdayOffset(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// DaysInMonth returns the number of days in t's calendar month.
func DaysInMonth(t time.Time) int {
	y, m, _ := t.Date()
	return time.Date(y, m+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// SameDay reports whether a falls on b's calendar day, judged in b's location.
func SameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// SameMonth reports whether a falls in b's calendar month, judged in b's location.
func SameMonth(a, b time.Time) bool {
	a = a.In(b.Location())
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// YMD formats t as a calendar-day key.
func YMD(t time.Time) string {
	return t.Format(ymdLayout)
}
