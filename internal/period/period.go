// Package period resolves reporting and deletion periods to concrete date ranges.
//
// Weeks are fixed partitions of a month (days 1-7, 8-14, 15-21, 22-28, 29-end),
// not ISO weeks. Every caller that needs a "week" goes through this package so labels
// and deletion ranges always agree.
package period

import (
	"fmt"
	"strings"
	"time"

	"github.com/nekogravitycat/courtmaster-backend/internal/pkg/apperror"
)

var (
	ErrInvalidKind  = apperror.Validation("period must be one of weekly, monthly, yearly")
	ErrInvalidYear  = apperror.Validation("year must be between 1 and 9999")
	ErrInvalidMonth = apperror.Validation("month must be between 1 and 12")
	ErrInvalidWeek  = apperror.Validation("week is out of range for the selected month")
	ErrInvalidRange = apperror.Validation("start date must not be after end date")
	ErrUnbounded    = apperror.Validation("overall period has no date range")
)

// Kind is the granularity of a period selector.
type Kind string

const (
	KindWeekly  Kind = "weekly"
	KindMonthly Kind = "monthly"
	KindYearly  Kind = "yearly"
	// KindOverall selects all time. Only dashboard statistics accept it.
	KindOverall Kind = "overall"
)

const (
	DaysPerWeek     = 7
	MaxWeeksInMonth = 5
)

// ParseKind normalizes a user-supplied kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindWeekly, KindMonthly, KindYearly, KindOverall:
		return k, nil
	default:
		return "", ErrInvalidKind
	}
}

// Selector identifies a period. Month is required for weekly and monthly, Week for weekly.
type Selector struct {
	Kind  Kind
	Year  int
	Month int
	Week  int
}

// Range is an inclusive range of calendar days, both ends at midnight UTC.
type Range struct {
	Start time.Time
	End   time.Time
}

// Day truncates t to its calendar day at midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Date builds a calendar day at midnight UTC.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysIn returns the number of days of month in year, leap years included.
func DaysIn(year int, month time.Month) int {
	return Date(year, month+1, 0).Day()
}

// NewRange validates and normalizes an inclusive day range.
func NewRange(start, end time.Time) (Range, error) {
	r := Range{Start: Day(start), End: Day(end)}
	if r.End.Before(r.Start) {
		return Range{}, ErrInvalidRange
	}
	return r, nil
}

// Contains reports whether day falls within the range.
func (r Range) Contains(day time.Time) bool {
	d := Day(day)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days lists every day of the range in order.
func (r Range) Days() []time.Time {
	var out []time.Time
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

func (r Range) String() string {
	return fmt.Sprintf("%s..%s", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
}

// Resolve maps a selector to its inclusive date range.
func Resolve(sel Selector) (Range, error) {
	switch sel.Kind {
	case KindYearly:
		if err := validateYear(sel.Year); err != nil {
			return Range{}, err
		}
		return Range{Start: Date(sel.Year, time.January, 1), End: Date(sel.Year, time.December, 31)}, nil

	case KindMonthly:
		if err := validateMonth(sel.Year, sel.Month); err != nil {
			return Range{}, err
		}
		m := time.Month(sel.Month)
		return Range{Start: Date(sel.Year, m, 1), End: Date(sel.Year, m, DaysIn(sel.Year, m))}, nil

	case KindWeekly:
		if err := validateMonth(sel.Year, sel.Month); err != nil {
			return Range{}, err
		}
		return weekRange(sel.Year, time.Month(sel.Month), sel.Week)

	case KindOverall:
		return Range{}, ErrUnbounded

	default:
		return Range{}, ErrInvalidKind
	}
}

func weekRange(year int, month time.Month, week int) (Range, error) {
	if week < 1 || week > MaxWeeksInMonth {
		return Range{}, ErrInvalidWeek
	}
	days := DaysIn(year, month)
	first := (week-1)*DaysPerWeek + 1
	if first > days {
		return Range{}, ErrInvalidWeek
	}
	last := min(week*DaysPerWeek, days)
	return Range{Start: Date(year, month, first), End: Date(year, month, last)}, nil
}

func validateYear(year int) error {
	if year < 1 || year > 9999 {
		return ErrInvalidYear
	}
	return nil
}

func validateMonth(year, month int) error {
	if err := validateYear(year); err != nil {
		return err
	}
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	return nil
}
