package cmd

import (
	"testing"
	"time"

	"kousu/aggregate"
)

func TestBuildSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mode    string
		term    int
		year    int
		month   int
		from    string
		to      string
		want    string
		wantErr bool
	}{
		{name: "explicit term", mode: "term", term: 2024, want: "2024年5月～2025年4月"},
		{name: "month", mode: "month", year: 2024, month: 6, want: "2024年6月"},
		{name: "range", mode: "range", from: "2024-05", to: "2024-08", want: "2024年5月～2024年8月"},
		{name: "bad month", mode: "month", year: 2024, month: 13, wantErr: true},
		{name: "bad from", mode: "range", from: "May 2024", to: "2024-08", wantErr: true},
		{name: "inverted range", mode: "range", from: "2024-08", to: "2024-05", wantErr: true},
		{name: "unknown mode", mode: "weekly", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sel, err := buildSelection(tt.mode, tt.term, tt.year, tt.month, tt.from, tt.to)
			if tt.wantErr {
				if err == nil {
					t.Fatal("buildSelection() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("buildSelection() error = %v", err)
			}
			if sel.Label() != tt.want {
				t.Fatalf("Label() = %q, want %q", sel.Label(), tt.want)
			}
		})
	}
}

func TestBuildSelectionDefaultsToCurrentTerm(t *testing.T) {
	t.Parallel()

	sel, err := buildSelection("", 0, 0, 0, "", "")
	if err != nil {
		t.Fatalf("buildSelection() error = %v", err)
	}
	if sel.Mode != aggregate.ModeTerm {
		t.Fatalf("Mode = %v, want term", sel.Mode)
	}
	if sel.TermStart != aggregate.TermStartYear(time.Now()) {
		t.Fatalf("TermStart = %d, want the term containing today", sel.TermStart)
	}
}
