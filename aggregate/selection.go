package aggregate

import (
	"errors"
	"fmt"
	"time"

	"kousu/internal/timeutil"
)

// ErrSelection marks malformed term/month/range input. It is reported
// before any aggregation work happens.
var ErrSelection = errors.New("invalid selection")

type Mode int

const (
	ModeTerm Mode = iota
	ModeMonth
	ModeRange
)

// Selection is the engine-facing query: one time window plus optional
// category and worker filters.
type Selection struct {
	Mode      Mode
	TermStart int
	Year      int
	Month     time.Month
	From      time.Time
	To        time.Time

	Categories []string
	Worker     string
}

// NewTermSelection selects one fiscal term by its start year.
func NewTermSelection(startYear int) (Selection, error) {
	if startYear < 2000 || startYear > 2100 {
		return Selection{}, fmt.Errorf("%w: term start year %d out of range", ErrSelection, startYear)
	}
	return Selection{Mode: ModeTerm, TermStart: startYear}, nil
}

// NewMonthSelection selects one explicit calendar month.
func NewMonthSelection(year int, month int) (Selection, error) {
	if year < 2000 || year > 2100 {
		return Selection{}, fmt.Errorf("%w: year %d out of range", ErrSelection, year)
	}
	if month < 1 || month > 12 {
		return Selection{}, fmt.Errorf("%w: month %d out of range", ErrSelection, month)
	}
	return Selection{Mode: ModeMonth, Year: year, Month: time.Month(month)}, nil
}

// NewRangeSelection selects consecutive months from the month of from
// through the month of to; to is normalized to that month's last day.
func NewRangeSelection(from, to time.Time) (Selection, error) {
	if from.IsZero() || to.IsZero() {
		return Selection{}, fmt.Errorf("%w: missing range bound", ErrSelection)
	}
	start := timeutil.StartOfMonth(from)
	end := timeutil.EndOfMonth(to)
	if end.Before(start) {
		return Selection{}, fmt.Errorf("%w: range end before start", ErrSelection)
	}
	return Selection{Mode: ModeRange, From: start, To: end}, nil
}

// WithCategories returns a copy carrying the selected category set.
func (s Selection) WithCategories(categories ...string) Selection {
	s.Categories = append([]string(nil), categories...)
	return s
}

// WithWorker returns a copy carrying a single-worker filter.
func (s Selection) WithWorker(worker string) Selection {
	s.Worker = worker
	return s
}

// Bounds returns the inclusive date window of the selection.
func (s Selection) Bounds() (time.Time, time.Time) {
	switch s.Mode {
	case ModeMonth:
		from := time.Date(s.Year, s.Month, 1, 0, 0, 0, 0, time.Local)
		return from, timeutil.EndOfMonth(from)
	case ModeRange:
		return s.From, s.To
	default:
		return TermBounds(s.TermStart)
	}
}

// Contains reports whether date falls inside the selection window.
func (s Selection) Contains(date time.Time) bool {
	from, to := s.Bounds()
	return !date.Before(from) && !date.After(to)
}

// Label renders the selection for page titles.
func (s Selection) Label() string {
	switch s.Mode {
	case ModeMonth:
		return fmt.Sprintf("%d年%d月", s.Year, int(s.Month))
	case ModeRange:
		return fmt.Sprintf("%d年%d月～%d年%d月", s.From.Year(), int(s.From.Month()), s.To.Year(), int(s.To.Month()))
	default:
		return TermLabel(s.TermStart)
	}
}
