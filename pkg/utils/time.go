package utils

import "time"

// DayFormat is the wire format for calendar-day query parameters and
// follow-up date comparisons.
const DayFormat = "2006-01-02"

// Now returns the current time in UTC timezone
func Now() time.Time {
	return time.Now().UTC()
}

// Today returns the start of the current calendar day in UTC
func Today() time.Time {
	return StartOfDay(Now())
}

// StartOfDay truncates t to midnight UTC of the same calendar day
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// NextDay returns midnight UTC of the calendar day after t
func NextDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1)
}

// SameDay reports whether a and b fall on the same UTC calendar day
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// ParseDay parses a yyyy-mm-dd string into midnight UTC of that day
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DayFormat, s, time.UTC)
}

// FormatDay formats a time as yyyy-mm-dd in UTC
func FormatDay(t time.Time) string {
	return t.UTC().Format(DayFormat)
}

// FormatISO8601 formats a time.Time to ISO8601 format in UTC
func FormatISO8601(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
