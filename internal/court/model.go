package court

import (
	"time"

	"github.com/nekogravitycat/courtmaster-backend/internal/pkg/apperror"
)

var (
	ErrNotFound  = apperror.NotFound("court not found")
	ErrEmptyName = apperror.Validation("name cannot be empty")
	ErrNameTaken = apperror.Conflict("a court with this name already exists")
	ErrInUse     = apperror.Conflict("court has bookings and cannot be deleted, deactivate it instead")
)

// Court is a bookable physical court.
// Inactive courts keep their bookings but are hidden from the schedule and refuse new bookings.
type Court struct {
	ID        string
	Name      string
	Active    bool
	CreatedAt time.Time
}

// Filter defines parameters for listing courts.
type Filter struct {
	ActiveOnly bool
}
