package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"kousu/aggregate"
)

type ExcelWriter struct{}

func (w *ExcelWriter) Write(path string, title string, pivot *aggregate.Pivot) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	startRow := 1

	if title != "" {
		if err := file.SetCellValue(sheet, "A1", title); err != nil {
			return fmt.Errorf("set excel title: %w", err)
		}
		startRow = 2
	}

	for i, row := range matrix(pivot) {
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, startRow+i)
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("set excel value %s: %w", cell, err)
			}
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save excel output %s: %w", path, err)
	}

	return nil
}
