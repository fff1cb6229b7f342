package aggregate

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"kousu/record"
)

// EstimatePivot pairs the estimate and decision series over one month axis.
// The same estimate number can appear in both series under its two key
// dates; the conversion rate compares the deduplicated totals.
type EstimatePivot struct {
	Labels         []string `json:"labels"`
	Estimates      Series   `json:"estimates"`
	Decisions      Series   `json:"decisions"`
	EstimateTotal  float64  `json:"estimateTotal"`
	DecisionTotal  float64  `json:"decisionTotal"`
	EstimateCount  int      `json:"estimateCount"`
	DecisionCount  int      `json:"decisionCount"`
	ConversionRate string   `json:"conversionRate"`
}

// DedupByCreation keeps the most recent row per estimate number, ordered by
// creation date. Portal exports repeat estimates whenever a line changes.
func DedupByCreation(entries []record.Estimate) []record.Estimate {
	sorted := append([]record.Estimate(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedDate.Before(sorted[j].CreatedDate)
	})
	return keepLastByNo(sorted)
}

// DedupByDecision keeps only decided estimates, the most recent row per
// estimate number ordered by decision date.
func DedupByDecision(entries []record.Estimate) []record.Estimate {
	decided := lo.Filter(entries, func(entry record.Estimate, _ int) bool {
		return entry.Decided()
	})
	sort.SliceStable(decided, func(i, j int) bool {
		return decided[i].DecidedDate.Before(decided[j].DecidedDate)
	})
	return keepLastByNo(decided)
}

func keepLastByNo(sorted []record.Estimate) []record.Estimate {
	index := make(map[string]int, len(sorted))
	out := make([]record.Estimate, 0, len(sorted))
	for _, entry := range sorted {
		if pos, ok := index[entry.EstimateNo]; ok {
			out[pos] = entry
			continue
		}
		index[entry.EstimateNo] = len(out)
		out = append(out, entry)
	}
	return out
}

// BuildEstimatePivot aggregates estimate subtotals onto the selection's
// month axis twice: once keyed by creation date, once by decision date.
// The staff filter rides on Selection.Worker.
func BuildEstimatePivot(entries []record.Estimate, sel Selection) *EstimatePivot {
	axis := MonthAxis(sel)
	axisKeys := lo.Map(axis, func(bucket Bucket, _ int) string { return bucket.Key })
	labels := lo.Map(axis, func(bucket Bucket, _ int) string { return bucket.Label })

	created := filterEstimates(DedupByCreation(entries), sel, false)
	decided := filterEstimates(DedupByDecision(entries), sel, true)

	createdGrouped := GroupSum(created, func(entry record.Estimate) string {
		return BucketKey(entry.CreatedDate)
	}, func(entry record.Estimate) float64 {
		return entry.Subtotal
	})
	decidedGrouped := GroupSum(decided, func(entry record.Estimate) string {
		return BucketKey(entry.DecidedDate)
	}, func(entry record.Estimate) float64 {
		return entry.Subtotal
	})

	estimateSeries := assembleSeries("見積", PaletteColor(0), reindexSingle(createdGrouped, axisKeys))
	decisionSeries := assembleSeries("決定", PaletteColor(1), reindexSingle(decidedGrouped, axisKeys))

	pivot := &EstimatePivot{
		Labels:    labels,
		Estimates: estimateSeries,
		Decisions: decisionSeries,
	}
	for i := range axisKeys {
		pivot.EstimateTotal += estimateSeries.Values[i]
		pivot.DecisionTotal += decisionSeries.Values[i]
		pivot.EstimateCount += estimateSeries.Counts[i]
		pivot.DecisionCount += decisionSeries.Counts[i]
	}
	pivot.ConversionRate = ConversionRate(pivot.EstimateTotal, pivot.DecisionTotal)
	return pivot
}

// StaffAxis lists the distinct estimate staff names in ascending order,
// excluding archived staff.
func StaffAxis(entries []record.Estimate) []string {
	staff := lo.FilterMap(entries, func(entry record.Estimate, _ int) (string, bool) {
		return entry.Staff, entry.Staff != "" && !containsRetired(entry.Staff)
	})
	staff = lo.Uniq(staff)
	sort.Strings(staff)
	return staff
}

func filterEstimates(entries []record.Estimate, sel Selection, byDecision bool) []record.Estimate {
	out := make([]record.Estimate, 0, len(entries))
	for _, entry := range entries {
		date := entry.CreatedDate
		if byDecision {
			date = entry.DecidedDate
		}
		if !sel.Contains(date) {
			continue
		}
		if strings.Contains(entry.Staff, record.RetiredMarker) {
			continue
		}
		if sel.Worker != "" && entry.Staff != sel.Worker {
			continue
		}
		out = append(out, entry)
	}
	return out
}

func reindexSingle(grouped map[string]Measure, axisKeys []string) []Measure {
	out := make([]Measure, len(axisKeys))
	for i, key := range axisKeys {
		out[i] = grouped[key]
	}
	return out
}
