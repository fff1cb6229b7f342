package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"kousu/dataset"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestMergeUpsertsByKey(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	existing := writeCSV(t, dir, "工数データ.csv",
		"日付,作業者,作業種別,時間\n"+
			"2024/06/01,佐藤,修理,2\n"+
			"2024/06/02,田中,点検・整備,1\n")
	incoming := writeCSV(t, dir, "export.csv",
		"日付,作業者,作業種別,時間\n"+
			"2024/06/01,佐藤,修理,3\n"+
			"2024/06/03,佐藤,故障対応,4\n")

	result, err := Merge(existing, incoming, WorkKeyColumns)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if result.RowsAdded != 1 || result.RowsUpdated != 1 || result.RowsTotal != 3 {
		t.Fatalf("unexpected result: %+v", result)
	}

	rows, err := dataset.ReadRows(existing)
	if err != nil {
		t.Fatalf("read merged: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(rows))
	}
	// Collision updated in place; non-colliding rows keep their order.
	if rows[1][3] != "3" {
		t.Fatalf("colliding row not updated: %v", rows[1])
	}
	if rows[2][1] != "田中" {
		t.Fatalf("existing row displaced: %v", rows[2])
	}
	if rows[3][2] != "故障対応" {
		t.Fatalf("new row not appended: %v", rows[3])
	}
}

func TestMergeIdempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	existing := writeCSV(t, dir, "data.csv",
		"日付,作業者,作業種別,時間\n2024/06/01,佐藤,修理,2\n")
	incoming := writeCSV(t, dir, "export.csv",
		"日付,作業者,作業種別,時間\n2024/06/01,佐藤,修理,2\n")

	result, err := Merge(existing, incoming, WorkKeyColumns)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if result.RowsAdded != 0 || result.RowsUpdated != 0 {
		t.Fatalf("identical export should be a no-op, got %+v", result)
	}
}

func TestMergeBootstrapsMissingFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	incoming := writeCSV(t, dir, "export.csv",
		"日付,作業者,作業種別,時間\n2024/06/01,佐藤,修理,2\n")

	target := filepath.Join(dir, "fresh.csv")
	result, err := Merge(target, incoming, WorkKeyColumns)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if result.RowsAdded != 1 || result.RowsTotal != 1 {
		t.Fatalf("unexpected bootstrap result: %+v", result)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("target not created: %v", err)
	}
}

func TestMergeMissingKeyColumn(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	existing := writeCSV(t, dir, "data.csv", "日付,時間\n2024/06/01,2\n")
	incoming := writeCSV(t, dir, "export.csv", "日付,時間\n2024/06/01,3\n")

	if _, err := Merge(existing, incoming, WorkKeyColumns); err == nil {
		t.Fatalf("expected missing key column error")
	} else if !strings.Contains(err.Error(), "作業者") {
		t.Fatalf("error should name the missing column: %v", err)
	}
}

func TestFindLatestExport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	older := writeCSV(t, dir, "作業履歴：工数データ_1.csv", "a\n")
	newer := writeCSV(t, dir, "作業履歴：工数データ_2.csv", "b\n")
	writeCSV(t, dir, "unrelated.csv", "c\n")

	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(older, past, past); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	got, err := FindLatestExport(dir, "作業履歴：工数データ")
	if err != nil {
		t.Fatalf("find latest: %v", err)
	}
	if got != newer {
		t.Fatalf("expected %s, got %s", newer, got)
	}
}

func TestFindLatestExportNoMatch(t *testing.T) {
	t.Parallel()

	if _, err := FindLatestExport(t.TempDir(), "作業履歴：工数データ"); err == nil {
		t.Fatalf("expected error when no export matches")
	}
}
