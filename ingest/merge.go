// Package ingest merges fresh portal exports into the durable data CSVs.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"

	"kousu/dataset"
)

// Result summarizes one merge.
type Result struct {
	RowsRead    int
	RowsAdded   int
	RowsUpdated int
	RowsTotal   int
}

// WorkKeyColumns identifies a work-hour row across exports.
var WorkKeyColumns = []string{"日付", "作業者", "作業種別"}

// EstimateKeyColumns identifies an estimate line across exports.
var EstimateKeyColumns = []string{"見積番号", "明細"}

// Merge upserts the incoming export into the existing CSV: rows whose key
// already exists replace the existing row in place, new keys append at the
// end, and existing rows without a colliding key are preserved in order.
// The merged file is written back as UTF-8. A missing existing file makes
// the incoming export the new file wholesale.
func Merge(existingPath, incomingPath string, keyColumns []string) (*Result, error) {
	incoming, err := dataset.ReadRows(incomingPath)
	if err != nil {
		return nil, err
	}
	if len(incoming) == 0 {
		return nil, fmt.Errorf("incoming export %s has no header row", incomingPath)
	}

	incomingKey, err := keyIndices(incoming[0], keyColumns)
	if err != nil {
		return nil, fmt.Errorf("incoming export %s: %w", incomingPath, err)
	}

	// Only a genuinely absent file bootstraps from the export wholesale;
	// an unreadable existing file must not be clobbered.
	var existing [][]string
	if _, statErr := os.Stat(existingPath); statErr == nil {
		existing, err = dataset.ReadRows(existingPath)
		if err != nil {
			return nil, err
		}
	} else if !errors.Is(statErr, os.ErrNotExist) {
		return nil, fmt.Errorf("stat %s: %w", existingPath, statErr)
	}

	result := &Result{RowsRead: len(incoming) - 1}

	if len(existing) == 0 {
		result.RowsAdded = len(incoming) - 1
		result.RowsTotal = len(incoming) - 1
		if err := writeRows(existingPath, incoming); err != nil {
			return nil, err
		}
		return result, nil
	}

	existingKey, err := keyIndices(existing[0], keyColumns)
	if err != nil {
		return nil, fmt.Errorf("existing file %s: %w", existingPath, err)
	}

	// Existing rows keep their order; collisions are updated in place.
	merged := append([][]string(nil), existing...)
	position := make(map[string]int, len(existing))
	for i := 1; i < len(merged); i++ {
		position[rowKey(merged[i], existingKey)] = i
	}

	// Incoming rows are re-shaped onto the existing header so unknown
	// historical columns survive the merge.
	project := columnProjection(existing[0], incoming[0])

	for _, row := range incoming[1:] {
		shaped := project(row)
		key := rowKey(row, incomingKey)
		if key == "" {
			merged = append(merged, shaped)
			result.RowsAdded++
			continue
		}

		if pos, ok := position[key]; ok {
			if !equalRows(merged[pos], shaped) {
				merged[pos] = shaped
				result.RowsUpdated++
			}
			continue
		}

		position[key] = len(merged)
		merged = append(merged, shaped)
		result.RowsAdded++
	}

	result.RowsTotal = len(merged) - 1
	if err := writeRows(existingPath, merged); err != nil {
		return nil, err
	}
	return result, nil
}

func keyIndices(header []string, keyColumns []string) ([]int, error) {
	byName := make(map[string]int, len(header))
	for i, name := range header {
		byName[dataset.NormalizeHeader(name)] = i
	}

	out := make([]int, 0, len(keyColumns))
	for _, column := range keyColumns {
		index, ok := byName[dataset.NormalizeHeader(column)]
		if !ok {
			return nil, fmt.Errorf("key column %q not found", column)
		}
		out = append(out, index)
	}
	return out, nil
}

func rowKey(row []string, indices []int) string {
	parts := make([]string, 0, len(indices))
	empty := true
	for _, index := range indices {
		value := ""
		if index < len(row) {
			value = strings.TrimSpace(row[index])
		}
		if value != "" {
			empty = false
		}
		parts = append(parts, value)
	}
	if empty {
		return ""
	}
	return strings.Join(parts, "\x1f")
}

// columnProjection maps an incoming row onto the existing header order,
// matching columns by normalized name. Incoming columns absent from the
// existing header are dropped; existing columns absent from the incoming
// export become empty cells.
func columnProjection(existingHeader, incomingHeader []string) func([]string) []string {
	incomingIndex := make(map[string]int, len(incomingHeader))
	for i, name := range incomingHeader {
		incomingIndex[dataset.NormalizeHeader(name)] = i
	}

	mapping := make([]int, len(existingHeader))
	for i, name := range existingHeader {
		if index, ok := incomingIndex[dataset.NormalizeHeader(name)]; ok {
			mapping[i] = index
		} else {
			mapping[i] = -1
		}
	}

	return func(row []string) []string {
		out := make([]string, len(mapping))
		for i, index := range mapping {
			if index >= 0 && index < len(row) {
				out[i] = row[index]
			}
		}
		return out
	}
}

func equalRows(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func writeRows(path string, rows [][]string) error {
	tmp, err := os.CreateTemp("", "kousu-merge-*.csv")
	if err != nil {
		return fmt.Errorf("create merge temp file: %w", err)
	}
	tmpPath := tmp.Name()

	writer := csv.NewWriter(tmp)
	if err := writer.WriteAll(rows); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write merged csv: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close merge temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		// Rename fails across filesystems; fall back to a copy.
		content, readErr := os.ReadFile(tmpPath)
		if readErr != nil {
			return fmt.Errorf("replace %s: %w", path, err)
		}
		defer os.Remove(tmpPath)
		if writeErr := os.WriteFile(path, content, 0o644); writeErr != nil {
			return fmt.Errorf("replace %s: %w", path, writeErr)
		}
	}
	return nil
}
