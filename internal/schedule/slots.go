// Package schedule builds the bookable time grid of an operating day.
package schedule

import (
	"github.com/nekogravitycat/courtmaster-backend/internal/pkg/apperror"
)

// MaxSlotsPerDay bounds slot generation. A configuration that needs more slots is rejected.
const MaxSlotsPerDay = 100

var ErrTooManySlots = apperror.New(apperror.KindConfiguration, "operating hours configuration does not produce a bounded slot grid")

// Interval is a half-open time range [Start, End) within one day.
type Interval struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Overlaps reports whether two half-open intervals share any minute.
// An interval ending exactly when the other starts does not overlap it.
func Overlaps(s1, e1, s2, e2 TimeOfDay) bool {
	return s1 < e2 && s2 < e1
}

func (i Interval) Overlaps(other Interval) bool {
	return Overlaps(i.Start, i.End, other.Start, other.End)
}

// DurationMinutes returns the length of the interval.
func (i Interval) DurationMinutes() int {
	return int(i.End - i.Start)
}

// GenerateSlots returns the slot start times from openAt, advancing by durationMinutes,
// keeping only starts strictly before closeAt. openAt >= closeAt yields an empty grid.
// Needing more than MaxSlotsPerDay starts (including a zero or negative duration) returns ErrTooManySlots.
func GenerateSlots(openAt, closeAt TimeOfDay, durationMinutes int) ([]TimeOfDay, error) {
	var slots []TimeOfDay
	for current := openAt; current < closeAt; current = current.Add(durationMinutes) {
		if len(slots) == MaxSlotsPerDay {
			return nil, ErrTooManySlots
		}
		slots = append(slots, current)
	}
	return slots, nil
}

// GenerateIntervals is GenerateSlots expanded to [start, start+duration) intervals.
// The last interval may end after closeAt; no trailing slot is dropped or shortened.
func GenerateIntervals(openAt, closeAt TimeOfDay, durationMinutes int) ([]Interval, error) {
	starts, err := GenerateSlots(openAt, closeAt, durationMinutes)
	if err != nil {
		return nil, err
	}
	out := make([]Interval, len(starts))
	for i, s := range starts {
		out[i] = Interval{Start: s, End: s.Add(durationMinutes)}
	}
	return out, nil
}
