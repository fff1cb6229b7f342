package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"kousu/aggregate"
)

func testPivot() *aggregate.Pivot {
	return &aggregate.Pivot{
		Labels: []string{"5月", "6月"},
		Series: []aggregate.Series{
			{Name: "修理", Color: "#4e79a7", Values: []float64{3, 1.5}, Counts: []int{1, 1}},
			{Name: "点検・整備", Color: "#f28e2b", Values: []float64{0, 2}, Counts: []int{0, 1}},
		},
	}
}

func TestWriterForFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format  string
		want    string
		wantErr bool
	}{
		{format: "csv", want: "*output.CSVWriter"},
		{format: " Excel ", want: "*output.ExcelWriter"},
		{format: "xlsx", want: "*output.ExcelWriter"},
		{format: "pdf", wantErr: true},
	}
	for _, tt := range tests {
		writer, err := WriterForFormat(tt.format)
		if tt.wantErr {
			if err == nil {
				t.Errorf("WriterForFormat(%q) expected error", tt.format)
			}
			continue
		}
		if err != nil {
			t.Errorf("WriterForFormat(%q) error = %v", tt.format, err)
			continue
		}
		if got := fmt.Sprintf("%T", writer); got != tt.want {
			t.Errorf("WriterForFormat(%q) = %s, want %s", tt.format, got, tt.want)
		}
	}
}

func TestCSVWriterMatrix(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pivot.csv")
	writer := &CSVWriter{}
	if err := writer.Write(path, "2024年5月～2025年4月", testPivot()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	// title + header + 2 axis rows + total
	if len(rows) != 5 {
		t.Fatalf("rows = %d: %v", len(rows), rows)
	}
	if rows[0][0] != "2024年5月～2025年4月" {
		t.Errorf("title row = %v", rows[0])
	}
	if rows[1][1] != "修理" || rows[1][2] != "点検・整備" {
		t.Errorf("header row = %v", rows[1])
	}
	if rows[2][0] != "5月" || rows[2][1] != "3" {
		t.Errorf("May row = %v", rows[2])
	}
	if rows[3][1] != "1.5" {
		t.Errorf("June row = %v", rows[3])
	}
	if rows[4][0] != "合計" || rows[4][1] != "4.5" || rows[4][2] != "2" {
		t.Errorf("total row = %v", rows[4])
	}
}

func TestExcelWriterMatrix(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pivot.xlsx")
	writer := &ExcelWriter{}
	if err := writer.Write(path, "", testPivot()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	file, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer file.Close()

	sheet := file.GetSheetName(0)
	header, err := file.GetCellValue(sheet, "B1")
	if err != nil {
		t.Fatalf("read header: %v", err)
	}
	if header != "修理" {
		t.Errorf("B1 = %q, want 修理", header)
	}
	total, err := file.GetCellValue(sheet, "B4")
	if err != nil {
		t.Fatalf("read total: %v", err)
	}
	if total != "4.5" {
		t.Errorf("B4 = %q, want 4.5", total)
	}
}
