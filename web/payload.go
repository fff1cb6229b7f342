package web

import (
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"kousu/aggregate"
	"kousu/record"
)

type indexPageView struct {
	Title string
	Terms []termOption
}

type termOption struct {
	StartYear int
	Label     string
}

type chartPageView struct {
	Title    string
	Endpoint template.URL
	Stacked  bool
}

type graphResponse struct {
	Title            string             `json:"title"`
	Labels           []string           `json:"labels"`
	Series           []aggregate.Series `json:"series"`
	Summary          aggregate.Summary  `json:"summary"`
	InspectionTotals []float64          `json:"inspectionTotals,omitempty"`
}

type estimateResponse struct {
	Title string `json:"title"`
	*aggregate.EstimatePivot
	Staff []string `json:"staff"`
}

type optionsResponse struct {
	Terms      []int    `json:"terms"`
	Categories []string `json:"categories"`
	Workers    []string `json:"workers"`
	Staff      []string `json:"staff"`
}

// parseSelection turns the request query into an engine selection.
//
//	mode=term&term=2024
//	mode=month&year=2024&month=6
//	mode=range&from=2024-05&to=2024-08
//
// With no mode, the term containing today is selected. category may repeat;
// worker filters work entries, and doubles as the staff filter on /estimate.
func parseSelection(r *http.Request) (aggregate.Selection, error) {
	query := r.URL.Query()
	mode := strings.TrimSpace(query.Get("mode"))

	var (
		sel aggregate.Selection
		err error
	)
	switch mode {
	case "", "term":
		startYear := aggregate.TermStartYear(time.Now())
		if raw := strings.TrimSpace(query.Get("term")); raw != "" {
			startYear, err = strconv.Atoi(raw)
			if err != nil {
				return aggregate.Selection{}, fmt.Errorf("%w: term %q is not a year", aggregate.ErrSelection, raw)
			}
		}
		sel, err = aggregate.NewTermSelection(startYear)
	case "month":
		var year, month int
		year, err = strconv.Atoi(strings.TrimSpace(query.Get("year")))
		if err != nil {
			return aggregate.Selection{}, fmt.Errorf("%w: year %q is not a number", aggregate.ErrSelection, query.Get("year"))
		}
		month, err = strconv.Atoi(strings.TrimSpace(query.Get("month")))
		if err != nil {
			return aggregate.Selection{}, fmt.Errorf("%w: month %q is not a number", aggregate.ErrSelection, query.Get("month"))
		}
		sel, err = aggregate.NewMonthSelection(year, month)
	case "range":
		var from, to time.Time
		from, err = parseMonthValue(query.Get("from"))
		if err != nil {
			return aggregate.Selection{}, err
		}
		to, err = parseMonthValue(query.Get("to"))
		if err != nil {
			return aggregate.Selection{}, err
		}
		sel, err = aggregate.NewRangeSelection(from, to)
	default:
		return aggregate.Selection{}, fmt.Errorf("%w: unknown mode %q", aggregate.ErrSelection, mode)
	}
	if err != nil {
		return aggregate.Selection{}, err
	}

	if categories := query["category"]; len(categories) > 0 {
		sel = sel.WithCategories(categories...)
	}
	if worker := strings.TrimSpace(query.Get("worker")); worker != "" {
		sel = sel.WithWorker(worker)
	}
	return sel, nil
}

func parseMonthValue(value string) (time.Time, error) {
	parsed, err := time.ParseInLocation("2006-01", strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: month %q (expected YYYY-MM)", aggregate.ErrSelection, value)
	}
	return parsed, nil
}

func termOptions(entries []record.Work) []termOption {
	years := aggregate.TermAxis(entries)
	out := make([]termOption, 0, len(years))
	for _, year := range years {
		out = append(out, termOption{StartYear: year, Label: aggregate.TermLabel(year)})
	}
	return out
}

// inspectionTotals aligns the combined statutory+internal totals with the
// selection's month axis for the chart tooltip.
func inspectionTotals(sel aggregate.Selection, totals map[string]aggregate.Measure) []float64 {
	axis := aggregate.MonthAxis(sel)
	out := make([]float64, len(axis))
	for i, bucket := range axis {
		out[i] = totals[bucket.Key].Sum
	}
	return out
}
