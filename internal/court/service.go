package court

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Name   string
	Active *bool
}

type UpdateRequest struct {
	Name   *string
	Active *bool
}

// UsageGuard lets the booking ledger veto removal of a court it references.
// RemoveCourtIfUnused returns ErrInUse without calling remove when a booking
// holds the court. Otherwise it calls remove, and no booking for the court can
// be created while remove runs or after it succeeds.
// The booking ledger implements it; courts never import bookings.
type UsageGuard interface {
	RemoveCourtIfUnused(ctx context.Context, courtID string, remove func() error) error
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Court, error)
	GetByID(ctx context.Context, id string) (*Court, error)
	List(ctx context.Context, activeOnly bool) ([]*Court, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Court, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo  Repository
	usage UsageGuard
}

// NewService builds the court service. usage may be nil, in which case deletion
// relies on the storage layer alone to protect referenced courts.
func NewService(repo Repository, usage UsageGuard) Service {
	return &service{repo: repo, usage: usage}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Court, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	c := &Court{Name: name, Active: true}
	if req.Active != nil {
		c.Active = *req.Active
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Court, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, activeOnly bool) ([]*Court, error) {
	return s.repo.List(ctx, Filter{ActiveOnly: activeOnly})
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Court, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrEmptyName
		}
		c.Name = name
	}
	if req.Active != nil {
		c.Active = *req.Active
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	if s.usage == nil {
		return s.repo.Delete(ctx, id)
	}
	return s.usage.RemoveCourtIfUnused(ctx, id, func() error {
		return s.repo.Delete(ctx, id)
	})
}
