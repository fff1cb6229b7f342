package aggregate

import (
	"fmt"
	"strings"

	"kousu/record"
)

// palette is the rotating 10-color series palette; assignment is by series
// ordinal modulo 10.
var palette = [10]string{
	"#4e79a7",
	"#f28e2b",
	"#e15759",
	"#76b7b2",
	"#59a14f",
	"#edc948",
	"#b07aa1",
	"#ff9da7",
	"#9c755f",
	"#bab0ac",
}

// Reserved colors for the inspection breakdown series; both live outside
// the rotating palette.
const (
	statutoryColor = "#1b4f9c"
	internalColor  = "#c53d43"
)

// PaletteColor returns the deterministic color for a series ordinal.
func PaletteColor(ordinal int) string {
	if ordinal < 0 {
		ordinal = 0
	}
	return palette[ordinal%len(palette)]
}

// Series is one chart series: arrays aligned 1:1 with the axis labels.
type Series struct {
	Name   string    `json:"name"`
	Color  string    `json:"color"`
	Values []float64 `json:"values"`
	Counts []int     `json:"counts"`
}

// Summary carries the scalar roll-ups shown beside a chart.
type Summary struct {
	TotalHours   float64 `json:"totalHours"`
	TotalCount   int     `json:"totalCount"`
	AverageHours int     `json:"averageHours"`
}

// Pivot is a fully assembled chart payload: ordered axis labels, one series
// per requested key, and the summary scalars.
type Pivot struct {
	Labels  []string `json:"labels"`
	Series  []Series `json:"series"`
	Summary Summary  `json:"summary"`
}

func assembleSeries(name string, color string, measures []Measure) Series {
	values := make([]float64, len(measures))
	counts := make([]int, len(measures))
	for i, m := range measures {
		values[i] = m.Sum
		counts[i] = m.Count
	}
	return Series{Name: name, Color: color, Values: values, Counts: counts}
}

func summarize(series []Series) Summary {
	var summary Summary
	for _, s := range series {
		for _, v := range s.Values {
			summary.TotalHours += v
		}
		for _, c := range s.Counts {
			summary.TotalCount += c
		}
	}
	if summary.TotalCount > 0 {
		summary.AverageHours = int(summary.TotalHours) / summary.TotalCount
	}
	return summary
}

// ConversionRate renders decided/estimate × 100 with one decimal place,
// or the literal "0%" when the estimate total is zero.
func ConversionRate(estimateTotal, decidedTotal float64) string {
	if estimateTotal == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", decidedTotal/estimateTotal*100)
}

// InspectionTriggered reports whether the selected category set is exactly
// the singleton that enables the inspection breakdown.
func InspectionTriggered(sel Selection) bool {
	if len(sel.Categories) != 1 {
		return false
	}
	return strings.TrimSpace(sel.Categories[0]) == record.InspectionTrigger
}

func containsRetired(worker string) bool {
	return strings.Contains(worker, record.RetiredMarker)
}
