package booking

import (
	"time"

	"github.com/nekogravitycat/courtmaster-backend/internal/period"
	"github.com/nekogravitycat/courtmaster-backend/internal/schedule"
)

// HasConflict reports whether [start, end) on the given court and day overlaps any
// existing booking. Bookings on other courts or other days never conflict.
func HasConflict(courtID string, date time.Time, start, end schedule.TimeOfDay, existing []*Booking) bool {
	day := period.Day(date)
	for _, b := range existing {
		if b.CourtID != courtID || !period.Day(b.Date).Equal(day) {
			continue
		}
		if schedule.Overlaps(start, end, b.StartTime, b.EndTime) {
			return true
		}
	}
	return false
}
