package timeutil

import "time"

func StartOfDay(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, value.Location())
}

func StartOfMonth(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), 1, 0, 0, 0, 0, value.Location())
}

// EndOfMonth returns the last day of the month containing value, at midnight.
func EndOfMonth(value time.Time) time.Time {
	return StartOfMonth(value).AddDate(0, 1, -1)
}

func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// MonthsBetween returns consecutive first-of-month values from the month of
// from through the month of to, inclusive. Empty when to precedes from.
func MonthsBetween(from, to time.Time) []time.Time {
	start := StartOfMonth(from)
	end := StartOfMonth(to)
	if end.Before(start) {
		return []time.Time{}
	}

	out := make([]time.Time, 0, 12)
	for month := start; !month.After(end); month = month.AddDate(0, 1, 0) {
		out = append(out, month)
	}
	return out
}
