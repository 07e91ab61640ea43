package settings

import (
	"errors"
	"time"

	"github.com/nekogravitycat/courtmaster-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/courtmaster-backend/internal/schedule"
)

var (
	ErrInvalidHours        = apperror.Validation("open time must be before close time")
	ErrInvalidSlotDuration = apperror.Validation("slot duration must be a positive number of minutes")
	ErrNegativePrice       = apperror.Validation("price per hour cannot be negative")
	ErrUnboundedGrid       = apperror.Validation("operating hours and slot duration produce too many slots")

	// errNotConfigured is returned by repositories when no row has been saved yet.
	errNotConfigured = errors.New("settings not configured")
)

// Defaults applied until an administrator saves settings.
const (
	DefaultSlotDurationMinutes = 60
	DefaultPricePerHour        = 400
)

var (
	DefaultOpenAt  = schedule.NewTimeOfDay(5, 0)
	DefaultCloseAt = schedule.NewTimeOfDay(12, 0)
)

// OperatingConfig is the singleton operating-hours and pricing configuration.
type OperatingConfig struct {
	OpenAt              schedule.TimeOfDay
	CloseAt             schedule.TimeOfDay
	SlotDurationMinutes int
	PricePerHour        int64
	UpdatedAt           time.Time
}

func Defaults() OperatingConfig {
	return OperatingConfig{
		OpenAt:              DefaultOpenAt,
		CloseAt:             DefaultCloseAt,
		SlotDurationMinutes: DefaultSlotDurationMinutes,
		PricePerHour:        DefaultPricePerHour,
	}
}

// Validate checks the configuration before it is persisted.
func (c OperatingConfig) Validate() error {
	if !c.OpenAt.Valid() || !c.CloseAt.Valid() {
		return schedule.ErrInvalidTimeOfDay
	}
	if c.OpenAt >= c.CloseAt {
		return ErrInvalidHours
	}
	if c.SlotDurationMinutes <= 0 {
		return ErrInvalidSlotDuration
	}
	if c.PricePerHour < 0 {
		return ErrNegativePrice
	}
	if _, err := c.Slots(); err != nil {
		return ErrUnboundedGrid
	}
	return nil
}

// Slots generates the day's slot start times.
func (c OperatingConfig) Slots() ([]schedule.TimeOfDay, error) {
	return schedule.GenerateSlots(c.OpenAt, c.CloseAt, c.SlotDurationMinutes)
}
