package booking

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/nekogravitycat/courtmaster-backend/internal/court"
	"github.com/nekogravitycat/courtmaster-backend/internal/events"
	"github.com/nekogravitycat/courtmaster-backend/internal/holiday"
	"github.com/nekogravitycat/courtmaster-backend/internal/period"
	"github.com/nekogravitycat/courtmaster-backend/internal/schedule"
	"github.com/nekogravitycat/courtmaster-backend/internal/settings"
)

type CreateRequest struct {
	CourtID      string
	Date         time.Time
	StartTime    schedule.TimeOfDay
	EndTime      schedule.TimeOfDay
	CustomerName string
	Mobile       string
	Category     string
}

// Query narrows a ledger listing. A zero Date lists every day.
type Query struct {
	Date   time.Time
	Search string
}

// BulkDeleteResult reports the outcome of a period deletion.
// Deleting nothing is not an error, but Deleted is false so callers can tell the user.
type BulkDeleteResult struct {
	Range   period.Range
	Count   int64
	Deleted bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	Query(ctx context.Context, q Query) ([]*Booking, error)
	Cancel(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, sel period.Selector) (*BulkDeleteResult, error)
	DistinctYears(ctx context.Context) ([]int, error)
	DaySchedule(ctx context.Context, date time.Time) (*DaySchedule, error)
}

type service struct {
	repo      Repository
	courts    court.Service
	settings  settings.Service
	holidays  holiday.Service
	publisher events.Publisher
	now       func() time.Time
}

func NewService(
	repo Repository,
	courts court.Service,
	settingsService settings.Service,
	holidays holiday.Service,
	publisher events.Publisher,
) Service {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &service{
		repo:      repo,
		courts:    courts,
		settings:  settingsService,
		holidays:  holidays,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	// 1. Validate request fields
	if req.Date.IsZero() {
		return nil, ErrDateRequired
	}
	if !req.StartTime.Valid() || !req.EndTime.Valid() {
		return nil, ErrInvalidTime
	}
	if req.EndTime <= req.StartTime {
		return nil, ErrInvalidTimeRange
	}
	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return nil, ErrNameRequired
	}
	category, err := ParseCategory(req.Category)
	if err != nil {
		return nil, err
	}

	// 2. Validate court
	c, err := s.courts.GetByID(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, court.ErrNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}
	if !c.Active {
		return nil, ErrCourtInactive
	}

	// 3. Duration must cover whole slots under the current configuration
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	duration := req.EndTime.Minutes() - req.StartTime.Minutes()
	if cfg.SlotDurationMinutes <= 0 || duration%cfg.SlotDurationMinutes != 0 {
		return nil, ErrDurationNotSlotted
	}

	// 4. Closed dates
	day := period.Day(req.Date)
	closed, err := s.holidays.IsHoliday(ctx, day)
	if err != nil {
		return nil, err
	}
	if closed {
		return nil, ErrHoliday
	}

	// 5. Fast pre-check; the repository repeats it atomically with the insert
	existing, err := s.repo.List(ctx, Filter{Date: day, CourtIDs: []string{c.ID}})
	if err != nil {
		return nil, err
	}
	if HasConflict(c.ID, day, req.StartTime, req.EndTime, existing) {
		return nil, ErrTimeConflict
	}

	b := &Booking{
		CourtID:      c.ID,
		Date:         day,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		CustomerName: name,
		Mobile:       strings.TrimSpace(req.Mobile),
		Category:     category,
		Status:       StatusBooked,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:      events.BookingCreated,
		BookingID: b.ID,
		CourtID:   b.CourtID,
		Date:      b.Date.Format(time.DateOnly),
		StartTime: b.StartTime.String(),
		EndTime:   b.EndTime.String(),
	})
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Query(ctx context.Context, q Query) ([]*Booking, error) {
	filter := Filter{Search: strings.TrimSpace(q.Search)}
	if !q.Date.IsZero() {
		filter.Date = period.Day(q.Date)
	}
	return s.repo.List(ctx, filter)
}

func (s *service) Cancel(ctx context.Context, id string) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, events.Event{
		Type:      events.BookingCancelled,
		BookingID: b.ID,
		CourtID:   b.CourtID,
		Date:      b.Date.Format(time.DateOnly),
		StartTime: b.StartTime.String(),
		EndTime:   b.EndTime.String(),
	})
	return nil
}

func (s *service) BulkDelete(ctx context.Context, sel period.Selector) (*BulkDeleteResult, error) {
	rng, err := period.Resolve(sel)
	if err != nil {
		return nil, err
	}

	n, err := s.repo.DeleteRange(ctx, rng)
	if err != nil {
		return nil, err
	}

	result := &BulkDeleteResult{Range: rng, Count: n, Deleted: n > 0}
	if result.Deleted {
		s.publish(ctx, events.Event{
			Type:       events.BookingsBulkDelete,
			RangeStart: rng.Start.Format(time.DateOnly),
			RangeEnd:   rng.End.Format(time.DateOnly),
			Count:      n,
		})
	}
	return result, nil
}

func (s *service) DistinctYears(ctx context.Context) ([]int, error) {
	years, err := s.repo.DistinctYears(ctx)
	if err != nil {
		return nil, err
	}
	if years == nil {
		years = []int{}
	}
	return years, nil
}

// publish never fails the caller; the ledger change has already happened.
func (s *service) publish(ctx context.Context, e events.Event) {
	e.OccurredAt = s.now().UTC()
	if err := s.publisher.Publish(ctx, e); err != nil {
		log.Printf("publish %s: %v", e.Type, err)
	}
}
