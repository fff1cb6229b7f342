package aggregate

import (
	"strings"

	"github.com/samber/lo"

	"kousu/record"
)

// BuildCategoryPivot groups the work entries by (month bucket, category)
// and reindexes every requested category onto the month axis. When the
// selection names no categories, all observed categories become series.
// Empty selections still yield the full zero-filled axis.
func BuildCategoryPivot(entries []record.Work, sel Selection) *Pivot {
	axis := MonthAxis(sel)
	filtered := FilterWork(entries, sel)

	seriesKeys := requestedCategories(sel)
	if len(seriesKeys) == 0 {
		seriesKeys = CategoryAxis(filtered)
	}

	grouped := GroupSum2(filtered, func(entry record.Work) Key2 {
		return Key2{A: BucketKey(entry.Date), B: entry.Category}
	}, func(entry record.Work) float64 {
		return entry.Hours
	})

	axisKeys := lo.Map(axis, func(bucket Bucket, _ int) string { return bucket.Key })
	labels := lo.Map(axis, func(bucket Bucket, _ int) string { return bucket.Label })

	series := make([]Series, 0, len(seriesKeys))
	for i, name := range seriesKeys {
		series = append(series, assembleSeries(name, PaletteColor(i), Reindex(grouped, axisKeys, name)))
	}

	return &Pivot{Labels: labels, Series: series, Summary: summarize(series)}
}

// BuildWorkerPivot groups the work entries by (worker, category); the axis
// is the sorted worker list observed in the selection window.
func BuildWorkerPivot(entries []record.Work, sel Selection) *Pivot {
	filtered := FilterWork(entries, sel)
	workers := WorkerAxis(filtered)

	seriesKeys := requestedCategories(sel)
	if len(seriesKeys) == 0 {
		seriesKeys = CategoryAxis(filtered)
	}

	grouped := GroupSum2(filtered, func(entry record.Work) Key2 {
		return Key2{A: entry.Worker, B: entry.Category}
	}, func(entry record.Work) float64 {
		return entry.Hours
	})

	series := make([]Series, 0, len(seriesKeys))
	for i, name := range seriesKeys {
		series = append(series, assembleSeries(name, PaletteColor(i), Reindex(grouped, workers, name)))
	}

	return &Pivot{Labels: workers, Series: series, Summary: summarize(series)}
}

// BuildCategoryTotals groups by category alone: one series of per-category
// totals over the whole selection window.
func BuildCategoryTotals(entries []record.Work, sel Selection) *Pivot {
	filtered := FilterWork(entries, sel)
	categories := CategoryAxis(filtered)

	grouped := GroupSum(filtered, func(entry record.Work) string {
		return entry.Category
	}, func(entry record.Work) float64 {
		return entry.Hours
	})

	measures := make([]Measure, len(categories))
	for i, category := range categories {
		measures[i] = grouped[category]
	}

	series := []Series{assembleSeries("作業時間", PaletteColor(0), measures)}
	return &Pivot{Labels: categories, Series: series, Summary: summarize(series)}
}

func requestedCategories(sel Selection) []string {
	return lo.FilterMap(sel.Categories, func(category string, _ int) (string, bool) {
		category = strings.TrimSpace(category)
		return category, category != "" && category != record.SubtotalCategory
	})
}
