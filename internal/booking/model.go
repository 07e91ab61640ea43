package booking

import (
	"strings"
	"time"

	"github.com/nekogravitycat/courtmaster-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/courtmaster-backend/internal/schedule"
)

var (
	ErrNotFound           = apperror.NotFound("booking not found")
	ErrTimeConflict       = apperror.Conflict("court is already booked for the selected time")
	ErrInvalidTimeRange   = apperror.Validation("end time must be after start time")
	ErrInvalidTime        = apperror.Validation("start and end time must fall within a single day")
	ErrDateRequired       = apperror.Validation("date is required")
	ErrNameRequired       = apperror.Validation("customer name is required")
	ErrInvalidCategory    = apperror.Validation("category must be one of booking, coaching, event")
	ErrDurationNotSlotted = apperror.Validation("booking duration must be a multiple of the slot duration")
	ErrHoliday            = apperror.Validation("cannot book on a holiday")
	ErrCourtNotFound      = apperror.Validation("court does not exist")
	ErrCourtInactive      = apperror.Validation("court is not active")
)

// Category classifies what a court is booked for.
type Category string

const (
	CategoryBooking  Category = "booking"
	CategoryCoaching Category = "coaching"
	CategoryEvent    Category = "event"
)

// ParseCategory normalizes a category; empty means CategoryBooking.
func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return CategoryBooking, nil
	case CategoryBooking, CategoryCoaching, CategoryEvent:
		return c, nil
	default:
		return "", ErrInvalidCategory
	}
}

// StatusBooked is the only status a ledger entry carries. Cancelled bookings are removed.
const StatusBooked = "booked"

// Booking is a single reservation of one court for a contiguous [StartTime, EndTime) window.
type Booking struct {
	ID           string
	CourtID      string
	Date         time.Time // calendar day, midnight UTC
	StartTime    schedule.TimeOfDay
	EndTime      schedule.TimeOfDay
	CustomerName string
	Mobile       string
	Category     Category
	Status       string
	CreatedAt    time.Time
}

func (b *Booking) Interval() schedule.Interval {
	return schedule.Interval{Start: b.StartTime, End: b.EndTime}
}

func (b *Booking) DurationMinutes() int {
	return b.Interval().DurationMinutes()
}

// Filter selects ledger entries. Zero values are unconstrained.
type Filter struct {
	Date     time.Time // exact day; takes precedence over From/To
	From     time.Time // inclusive
	To       time.Time // inclusive
	Search   string    // case-insensitive substring of customer name or mobile
	CourtIDs []string
}
