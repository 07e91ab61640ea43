package holiday

import (
	"time"

	"github.com/nekogravitycat/courtmaster-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.NotFound("holiday not found")
	ErrDateRequired = apperror.Validation("date is required")
	ErrDuplicate    = apperror.Conflict("the date is already marked as a holiday")
)

// Holiday is a calendar day on which no new bookings are accepted.
type Holiday struct {
	ID          string
	Date        time.Time
	Description string
	CreatedAt   time.Time
}

// Filter restricts a listing to an inclusive date window. Zero values are unbounded.
type Filter struct {
	From time.Time
	To   time.Time
}
