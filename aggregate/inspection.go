package aggregate

import (
	"github.com/samber/lo"

	"kousu/record"
)

// DedupInspections collapses duplicate rows for the same (案件ID, item),
// keeping the last occurrence. Repeated portal exports re-list the same
// tasks, and keep-last makes re-aggregation idempotent.
func DedupInspections(entries []record.Inspection) []record.Inspection {
	type key struct {
		id   string
		item record.InspectionItem
	}

	index := make(map[key]int, len(entries))
	out := make([]record.Inspection, 0, len(entries))
	for _, entry := range entries {
		k := key{id: entry.TaskID, item: entry.Item}
		if pos, ok := index[k]; ok {
			out[pos] = entry
			continue
		}
		index[k] = len(out)
		out = append(out, entry)
	}
	return out
}

// AppendInspectionBreakdown enriches a month pivot with the two fixed
// inspection series (statutory first, then internal), using the reserved
// colors. It returns the per-bucket combined totals as an auxiliary lookup
// keyed by bucket key; the combined totals are not charted.
//
// Callers gate this on InspectionTriggered: the breakdown applies only when
// the selection is exactly the inspection singleton.
func AppendInspectionBreakdown(pivot *Pivot, entries []record.Inspection, sel Selection) map[string]Measure {
	axis := MonthAxis(sel)
	axisKeys := lo.Map(axis, func(bucket Bucket, _ int) string { return bucket.Key })

	filtered := FilterInspections(DedupInspections(entries), sel)
	grouped := GroupSum2(filtered, func(entry record.Inspection) Key2 {
		return Key2{A: BucketKey(entry.Date), B: string(entry.Item)}
	}, func(entry record.Inspection) float64 {
		return entry.Hours
	})

	statutory := assembleSeries(string(record.ItemStatutory), statutoryColor, Reindex(grouped, axisKeys, string(record.ItemStatutory)))
	internal := assembleSeries(string(record.ItemInternal), internalColor, Reindex(grouped, axisKeys, string(record.ItemInternal)))
	pivot.Series = append(pivot.Series, statutory, internal)

	totals := make(map[string]Measure, len(axisKeys))
	for i, key := range axisKeys {
		totals[key] = Measure{
			Sum:   statutory.Values[i] + internal.Values[i],
			Count: statutory.Counts[i] + internal.Counts[i],
		}
	}
	return totals
}
