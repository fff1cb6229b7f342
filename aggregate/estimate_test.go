package aggregate

import (
	"testing"
	"time"

	"kousu/record"
)

func estimateEntry(no, created, decided, staff string, subtotal float64) record.Estimate {
	parse := func(value string) time.Time {
		if value == "" {
			return time.Time{}
		}
		parsed, err := time.ParseInLocation("2006-01-02", value, time.Local)
		if err != nil {
			panic(err)
		}
		return parsed
	}
	return record.Estimate{
		EstimateNo:  no,
		CreatedDate: parse(created),
		DecidedDate: parse(decided),
		Staff:       staff,
		Subtotal:    subtotal,
	}
}

func TestEstimateWithoutDecisionOnlyInEstimateSeries(t *testing.T) {
	t.Parallel()

	entries := []record.Estimate{
		estimateEntry("E-100", "2024-06-01", "", "山田", 200000),
	}

	pivot := BuildEstimatePivot(entries, mustTerm(t, 2024))
	if pivot.EstimateTotal != 200000 || pivot.EstimateCount != 1 {
		t.Fatalf("unexpected estimate totals: %+v", pivot)
	}
	if pivot.DecisionTotal != 0 || pivot.DecisionCount != 0 {
		t.Fatalf("undecided estimate leaked into decision series: %+v", pivot)
	}
}

func TestEstimateDedupMostRecentPerNumber(t *testing.T) {
	t.Parallel()

	entries := []record.Estimate{
		estimateEntry("E-100", "2024-06-01", "", "山田", 100000),
		estimateEntry("E-100", "2024-06-20", "", "山田", 150000),
		estimateEntry("E-200", "2024-06-05", "", "山田", 50000),
	}

	pivot := BuildEstimatePivot(entries, mustTerm(t, 2024))
	if pivot.EstimateTotal != 200000 {
		t.Fatalf("expected revised row to win, got total %v", pivot.EstimateTotal)
	}
	if pivot.EstimateCount != 2 {
		t.Fatalf("expected 2 unique estimates, got %d", pivot.EstimateCount)
	}
}

func TestEstimateAppearsInBothSeriesUnderDifferentDates(t *testing.T) {
	t.Parallel()

	entries := []record.Estimate{
		estimateEntry("E-100", "2024-06-01", "2024-08-15", "山田", 300000),
	}

	pivot := BuildEstimatePivot(entries, mustTerm(t, 2024))
	// June is bucket index 1 on the May-first term axis; August is index 3.
	if pivot.Estimates.Values[1] != 300000 {
		t.Fatalf("estimate not bucketed by creation date: %v", pivot.Estimates.Values)
	}
	if pivot.Decisions.Values[3] != 300000 {
		t.Fatalf("decision not bucketed by decision date: %v", pivot.Decisions.Values)
	}
}

func TestConversionRateFormatting(t *testing.T) {
	t.Parallel()

	cases := []struct {
		estimate float64
		decided  float64
		want     string
	}{
		{0, 0, "0%"},
		{200000, 150000, "75.0%"},
		{300000, 100000, "33.3%"},
		{100000, 100000, "100.0%"},
	}
	for _, tc := range cases {
		if got := ConversionRate(tc.estimate, tc.decided); got != tc.want {
			t.Fatalf("ConversionRate(%v, %v): expected %q, got %q", tc.estimate, tc.decided, tc.want, got)
		}
	}
}

func TestEstimateStaffFilterAndRetiredExclusion(t *testing.T) {
	t.Parallel()

	entries := []record.Estimate{
		estimateEntry("E-100", "2024-06-01", "", "山田", 100000),
		estimateEntry("E-200", "2024-06-02", "", "高橋", 200000),
		estimateEntry("E-300", "2024-06-03", "", "井上（退職）", 400000),
	}

	all := BuildEstimatePivot(entries, mustTerm(t, 2024))
	if all.EstimateTotal != 300000 {
		t.Fatalf("retired staff not excluded: %v", all.EstimateTotal)
	}

	one := BuildEstimatePivot(entries, mustTerm(t, 2024).WithWorker("高橋"))
	if one.EstimateTotal != 200000 || one.EstimateCount != 1 {
		t.Fatalf("staff filter failed: %+v", one)
	}
}

func TestStaffAxis(t *testing.T) {
	t.Parallel()

	entries := []record.Estimate{
		estimateEntry("E-1", "2024-06-01", "", "山田", 1),
		estimateEntry("E-2", "2024-06-02", "", "高橋", 1),
		estimateEntry("E-3", "2024-06-03", "", "井上（退職）", 1),
		estimateEntry("E-4", "2024-06-04", "", "山田", 1),
	}

	staff := StaffAxis(entries)
	if len(staff) != 2 {
		t.Fatalf("unexpected staff axis: %v", staff)
	}
}
