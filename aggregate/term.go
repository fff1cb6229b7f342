package aggregate

import (
	"fmt"
	"time"
)

// The business year runs May through April. A date in January–April belongs
// to the term that started the previous May.
const termStartMonth = time.May

// TermStartYear returns the start year of the fiscal term containing date.
func TermStartYear(date time.Time) int {
	if date.Month() < termStartMonth {
		return date.Year() - 1
	}
	return date.Year()
}

// TermLabel renders the fixed term label, e.g. "2024年5月～2025年4月".
func TermLabel(startYear int) string {
	return fmt.Sprintf("%d年5月～%d年4月", startYear, startYear+1)
}

// TermBounds returns the first and last day of the term starting in
// startYear: May 1 through April 30 of the following year.
func TermBounds(startYear int) (time.Time, time.Time) {
	from := time.Date(startYear, termStartMonth, 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(1, 0, -1)
	return from, to
}
