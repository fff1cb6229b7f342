package aggregate

import (
	"testing"
	"time"
)

func TestTermStartYearBoundary(t *testing.T) {
	t.Parallel()

	cases := []struct {
		date time.Time
		want int
	}{
		{time.Date(2024, 4, 30, 0, 0, 0, 0, time.Local), 2023},
		{time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local), 2024},
		{time.Date(2025, 1, 15, 0, 0, 0, 0, time.Local), 2024},
		{time.Date(2025, 12, 31, 0, 0, 0, 0, time.Local), 2025},
	}
	for _, tc := range cases {
		if got := TermStartYear(tc.date); got != tc.want {
			t.Fatalf("TermStartYear(%v): expected %d, got %d", tc.date, tc.want, got)
		}
	}
}

func TestTermLabel(t *testing.T) {
	t.Parallel()

	if got := TermLabel(2023); got != "2023年5月～2024年4月" {
		t.Fatalf("unexpected label: %q", got)
	}
	if got := TermLabel(2024); got != "2024年5月～2025年4月" {
		t.Fatalf("unexpected label: %q", got)
	}
}

func TestTermBounds(t *testing.T) {
	t.Parallel()

	from, to := TermBounds(2024)
	if from.Year() != 2024 || from.Month() != time.May || from.Day() != 1 {
		t.Fatalf("unexpected term start: %v", from)
	}
	if to.Year() != 2025 || to.Month() != time.April || to.Day() != 30 {
		t.Fatalf("unexpected term end: %v", to)
	}
}
