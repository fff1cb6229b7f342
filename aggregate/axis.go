package aggregate

import (
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"

	"kousu/internal/timeutil"
	"kousu/record"
)

// Bucket is one position on a month axis.
type Bucket struct {
	Year  int
	Month time.Month
	Key   string
	Label string
}

// BucketKey is the canonical month key a date groups under.
func BucketKey(date time.Time) string {
	return date.Format("2006-01")
}

// MonthAxis builds the ordered month buckets for the selection: exactly 12
// for a fiscal term (May through April), one for an explicit month, and
// start..end inclusive for a range. Bucket labels carry the year only when
// the axis can span multiple years.
func MonthAxis(sel Selection) []Bucket {
	from, to := sel.Bounds()
	months := timeutil.MonthsBetween(from, to)

	return lo.Map(months, func(month time.Time, _ int) Bucket {
		label := fmt.Sprintf("%d月", int(month.Month()))
		if sel.Mode == ModeRange {
			label = fmt.Sprintf("%d年%d月", month.Year(), int(month.Month()))
		}
		return Bucket{
			Year:  month.Year(),
			Month: month.Month(),
			Key:   BucketKey(month),
			Label: label,
		}
	})
}

// CategoryAxis lists the distinct observed categories in ascending order,
// with the subtotal pseudo-category excluded.
func CategoryAxis(entries []record.Work) []string {
	categories := lo.FilterMap(entries, func(entry record.Work, _ int) (string, bool) {
		return entry.Category, entry.Category != "" && entry.Category != record.SubtotalCategory
	})
	categories = lo.Uniq(categories)
	sort.Strings(categories)
	return categories
}

// WorkerAxis lists the distinct observed workers in ascending order.
// Retired workers never appear; FilterWork has already removed them, and
// the guard here keeps unfiltered input safe too.
func WorkerAxis(entries []record.Work) []string {
	workers := lo.FilterMap(entries, func(entry record.Work, _ int) (string, bool) {
		return entry.Worker, entry.Worker != "" && !containsRetired(entry.Worker)
	})
	workers = lo.Uniq(workers)
	sort.Strings(workers)
	return workers
}

// TermAxis lists the distinct observed fiscal-term start years, newest
// first, for term pickers.
func TermAxis(entries []record.Work) []int {
	years := lo.Uniq(lo.Map(entries, func(entry record.Work, _ int) int {
		return TermStartYear(entry.Date)
	}))
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// Reindex aligns a grouped map onto an ordered axis for one series key.
// Axis positions with no group yield an exact zero measure, never absence.
func Reindex(grouped map[Key2]Measure, axisKeys []string, series string) []Measure {
	out := make([]Measure, len(axisKeys))
	for i, key := range axisKeys {
		out[i] = grouped[Key2{A: key, B: series}]
	}
	return out
}
