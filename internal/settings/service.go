package settings

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/nekogravitycat/courtmaster-backend/internal/events"
	"github.com/nekogravitycat/courtmaster-backend/internal/schedule"
)

// UpdateRequest carries a partial update; nil fields keep their current value.
type UpdateRequest struct {
	OpenAt              *schedule.TimeOfDay
	CloseAt             *schedule.TimeOfDay
	SlotDurationMinutes *int
	PricePerHour        *int64
}

type Service interface {
	// Get returns the saved configuration, or the defaults when nothing is saved.
	Get(ctx context.Context) (*OperatingConfig, error)
	Update(ctx context.Context, req UpdateRequest) (*OperatingConfig, error)
}

type service struct {
	repo      Repository
	publisher events.Publisher
}

func NewService(repo Repository, publisher events.Publisher) Service {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &service{repo: repo, publisher: publisher}
}

func (s *service) Get(ctx context.Context) (*OperatingConfig, error) {
	cfg, err := s.repo.Get(ctx)
	if errors.Is(err, errNotConfigured) {
		d := Defaults()
		return &d, nil
	}
	return cfg, err
}

func (s *service) Update(ctx context.Context, req UpdateRequest) (*OperatingConfig, error) {
	cfg, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if req.OpenAt != nil {
		cfg.OpenAt = *req.OpenAt
	}
	if req.CloseAt != nil {
		cfg.CloseAt = *req.CloseAt
	}
	if req.SlotDurationMinutes != nil {
		cfg.SlotDurationMinutes = *req.SlotDurationMinutes
	}
	if req.PricePerHour != nil {
		cfg.PricePerHour = *req.PricePerHour
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, cfg); err != nil {
		return nil, err
	}

	if err := s.publisher.Publish(ctx, events.Event{Type: events.SettingsUpdated, OccurredAt: time.Now().UTC()}); err != nil {
		log.Printf("publish %s: %v", events.SettingsUpdated, err)
	}
	return cfg, nil
}
