package output

import (
	"encoding/csv"
	"fmt"
	"os"

	"kousu/aggregate"
)

type CSVWriter struct{}

func (w *CSVWriter) Write(path string, title string, pivot *aggregate.Pivot) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if title != "" {
		if err := writer.Write([]string{title}); err != nil {
			return fmt.Errorf("write csv title: %w", err)
		}
	}
	for _, row := range matrix(pivot) {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}
