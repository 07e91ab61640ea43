// Package events carries domain change notifications out of the booking core.
package events

import (
	"context"
	"errors"
	"time"
)

// Routing keys.
const (
	BookingCreated     = "booking.created"
	BookingCancelled   = "booking.cancelled"
	BookingsBulkDelete = "booking.bulk_deleted"
	SettingsUpdated    = "settings.updated"
)

// Event is the JSON payload published for every ledger or configuration change.
type Event struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"booking_id,omitempty"`
	CourtID    string    `json:"court_id,omitempty"`
	Date       string    `json:"date,omitempty"`
	StartTime  string    `json:"start_time,omitempty"`
	EndTime    string    `json:"end_time,omitempty"`
	RangeStart string    `json:"range_start,omitempty"`
	RangeEnd   string    `json:"range_end,omitempty"`
	Count      int64     `json:"count,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher delivers events. Implementations must not block indefinitely.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(ctx context.Context, e Event) error

func (f PublisherFunc) Publish(ctx context.Context, e Event) error {
	return f(ctx, e)
}

// Noop discards every event.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }

// Multi fans an event out to several publishers. Every publisher is attempted;
// the joined error of all failures is returned.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
