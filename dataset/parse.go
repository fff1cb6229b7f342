package dataset

import (
	"strconv"
	"strings"
	"time"
)

var numberCleaner = strings.NewReplacer(",", "", "，", "", "￥", "", "¥", "", "円", "")

// parseNumber coerces a numeric cell. Failures report ok=false so the row
// can be dropped instead of defaulting to zero.
func parseNumber(raw string) (float64, bool) {
	cleaned := strings.TrimSpace(numberCleaner.Replace(raw))
	if cleaned == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	if value < 0 {
		return 0, false
	}
	return value, true
}

var dateLayouts = []string{
	"2006/01/02",
	"2006-01-02",
	"2006/1/2",
	"2006-1-2",
	"2006年1月2日",
	"2006/01/02 15:04",
	"2006-01-02 15:04:05",
}

// parseDate coerces a date cell in the formats the portal has exported over
// time. Failures report ok=false.
func parseDate(raw string) (time.Time, bool) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.ParseInLocation(layout, cleaned, time.Local); err == nil {
			return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.Local), true
		}
	}
	return time.Time{}, false
}
