// Package output writes assembled pivots to files for offline use.
package output

import (
	"fmt"
	"strings"

	"kousu/aggregate"
)

// Writer renders one pivot as an axis × series matrix: the first column is
// the axis label, one column per series, and a trailing total row.
type Writer interface {
	Write(path string, title string, pivot *aggregate.Pivot) error
}

func WriterForFormat(format string) (Writer, error) {
	switch normalizeFormat(format) {
	case "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &ExcelWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}

// matrix flattens a pivot into rows shared by both writers.
func matrix(pivot *aggregate.Pivot) [][]string {
	header := make([]string, 0, len(pivot.Series)+1)
	header = append(header, "")
	for _, series := range pivot.Series {
		header = append(header, series.Name)
	}

	rows := make([][]string, 0, len(pivot.Labels)+2)
	rows = append(rows, header)

	for i, label := range pivot.Labels {
		row := make([]string, 0, len(pivot.Series)+1)
		row = append(row, label)
		for _, series := range pivot.Series {
			row = append(row, formatValue(series.Values[i]))
		}
		rows = append(rows, row)
	}

	total := make([]string, 0, len(pivot.Series)+1)
	total = append(total, "合計")
	for _, series := range pivot.Series {
		sum := 0.0
		for _, value := range series.Values {
			sum += value
		}
		total = append(total, formatValue(sum))
	}
	rows = append(rows, total)

	return rows
}

func formatValue(value float64) string {
	if value == float64(int64(value)) {
		return fmt.Sprintf("%d", int64(value))
	}
	return fmt.Sprintf("%.1f", value)
}
