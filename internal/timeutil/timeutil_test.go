package timeutil

import (
	"testing"
	"time"
)

func TestStartOfDay(t *testing.T) {
	t.Parallel()

	input := time.Date(2026, 3, 1, 14, 37, 9, 123, time.Local)
	got := StartOfDay(input)

	if got.Year() != 2026 || got.Month() != time.March || got.Day() != 1 {
		t.Fatalf("unexpected date: %v", got)
	}
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
		t.Fatalf("expected midnight, got %v", got)
	}
}

func TestEndOfMonth(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input time.Time
		want  int
	}{
		{time.Date(2024, 2, 10, 9, 0, 0, 0, time.Local), 29},
		{time.Date(2025, 2, 1, 0, 0, 0, 0, time.Local), 28},
		{time.Date(2025, 4, 30, 0, 0, 0, 0, time.Local), 30},
		{time.Date(2025, 12, 5, 0, 0, 0, 0, time.Local), 31},
	}
	for _, tc := range cases {
		if got := EndOfMonth(tc.input); got.Day() != tc.want {
			t.Fatalf("EndOfMonth(%v): expected day %d, got %v", tc.input, tc.want, got)
		}
	}
}

func TestMonthsBetween(t *testing.T) {
	t.Parallel()

	from := time.Date(2024, 11, 15, 0, 0, 0, 0, time.Local)
	to := time.Date(2025, 2, 3, 0, 0, 0, 0, time.Local)

	months := MonthsBetween(from, to)
	if len(months) != 4 {
		t.Fatalf("expected 4 months, got %d", len(months))
	}
	if months[0].Month() != time.November || months[3].Month() != time.February {
		t.Fatalf("unexpected month bounds: %v .. %v", months[0], months[3])
	}
	for _, month := range months {
		if month.Day() != 1 {
			t.Fatalf("expected first-of-month values, got %v", month)
		}
	}
}

func TestMonthsBetweenInverted(t *testing.T) {
	t.Parallel()

	from := time.Date(2025, 5, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2025, 4, 1, 0, 0, 0, 0, time.Local)
	if months := MonthsBetween(from, to); len(months) != 0 {
		t.Fatalf("expected empty result for inverted range, got %d", len(months))
	}
}
