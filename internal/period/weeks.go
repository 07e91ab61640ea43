package period

import (
	"fmt"
	"time"
)

// Week describes one fixed partition of a month.
type Week struct {
	Ordinal int
	Label   string
	Range   Range
}

// Weeks lists every valid week of the month, built with the same partition Resolve uses.
func Weeks(year, month int) ([]Week, error) {
	if err := validateMonth(year, month); err != nil {
		return nil, err
	}

	var out []Week
	for k := 1; k <= MaxWeeksInMonth; k++ {
		r, err := Resolve(Selector{Kind: KindWeekly, Year: year, Month: month, Week: k})
		if err != nil {
			break
		}
		out = append(out, Week{Ordinal: k, Label: weekLabel(k, r), Range: r})
	}
	return out, nil
}

// weekLabel renders "Week 5 (Mar 29-31)".
func weekLabel(ordinal int, r Range) string {
	return fmt.Sprintf("Week %d (%s %d-%d)", ordinal, r.Start.Month().String()[:3], r.Start.Day(), r.End.Day())
}

// WeekOf returns the ordinal of the fixed week containing day.
func WeekOf(day time.Time) int {
	return (day.Day()-1)/DaysPerWeek + 1
}
