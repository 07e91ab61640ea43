package holiday

import (
	"context"
	"strings"
	"time"

	"github.com/nekogravitycat/courtmaster-backend/internal/period"
)

type CreateRequest struct {
	Date        time.Time
	Description string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Holiday, error)
	List(ctx context.Context, filter Filter) ([]*Holiday, error)
	Delete(ctx context.Context, id string) error
	// IsHoliday reports whether bookings are closed on the given calendar day.
	IsHoliday(ctx context.Context, day time.Time) (bool, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Holiday, error) {
	if req.Date.IsZero() {
		return nil, ErrDateRequired
	}

	h := &Holiday{
		Date:        period.Day(req.Date),
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.repo.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Holiday, error) {
	if !filter.From.IsZero() {
		filter.From = period.Day(filter.From)
	}
	if !filter.To.IsZero() {
		filter.To = period.Day(filter.To)
	}
	return s.repo.List(ctx, filter)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) IsHoliday(ctx context.Context, day time.Time) (bool, error) {
	return s.repo.ExistsOn(ctx, period.Day(day))
}
