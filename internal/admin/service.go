package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nekogravitycat/courtmaster-backend/internal/auth"
)

type Service interface {
	Login(ctx context.Context, username, password string) (*Admin, error)
	GetByID(ctx context.Context, id string) (*Admin, error)
	// EnsureSeed creates the configured admin when it does not exist yet.
	// It reports whether an account was created.
	EnsureSeed(ctx context.Context, username, password string) (bool, error)
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher
}

func NewService(repo Repository, hasher auth.PasswordHasher) Service {
	return &service{repo: repo, hasher: hasher}
}

func (s *service) Login(ctx context.Context, username, password string) (*Admin, error) {
	name := normalizeUsername(username)
	if name == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	a, err := s.repo.GetByUsername(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch admin by username: %w", err)
	}

	if err := s.hasher.Compare(a.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	return a, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Admin, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) EnsureSeed(ctx context.Context, username, password string) (bool, error) {
	name := normalizeUsername(username)
	if name == "" && password == "" {
		return false, nil
	}
	if name == "" || password == "" {
		return false, errSeedIncomplete
	}
	if len(password) < MinPasswordLength {
		return false, ErrPasswordTooShort
	}

	if _, err := s.repo.GetByUsername(ctx, name); err == nil {
		return false, nil
	} else if !errors.Is(err, ErrNotFound) {
		return false, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}

	err = s.repo.Create(ctx, &Admin{Username: name, PasswordHash: hash})
	if errors.Is(err, ErrUsernameTaken) {
		// Another instance seeded it first.
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to create admin: %w", err)
	}
	return true, nil
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
