package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, a *Admin) error
	GetByID(ctx context.Context, id string) (*Admin, error)
	GetByUsername(ctx context.Context, username string) (*Admin, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, a *Admin) error {
	const query = `
		INSERT INTO public.admin_users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query, a.Username, a.PasswordHash).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrUsernameTaken
		}
		return fmt.Errorf("create admin failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Admin, error) {
	const query = `
		SELECT id, username, password_hash, created_at
		FROM public.admin_users
		WHERE id = $1
	`
	return r.getOne(ctx, query, id)
}

func (r *pgxRepository) GetByUsername(ctx context.Context, username string) (*Admin, error) {
	const query = `
		SELECT id, username, password_hash, created_at
		FROM public.admin_users
		WHERE username = $1
	`
	return r.getOne(ctx, query, username)
}

func (r *pgxRepository) getOne(ctx context.Context, query string, arg string) (*Admin, error) {
	var a Admin
	err := r.pool.QueryRow(ctx, query, arg).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get admin failed: %w", err)
	}
	return &a, nil
}

type memoryRepository struct {
	mu     sync.RWMutex
	admins map[string]Admin
}

// NewMemoryRepository returns a process-local Repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{admins: make(map[string]Admin)}
}

func (r *memoryRepository) Create(_ context.Context, a *Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.admins {
		if strings.EqualFold(existing.Username, a.Username) {
			return ErrUsernameTaken
		}
	}
	a.ID = uuid.NewString()
	a.CreatedAt = time.Now().UTC()
	r.admins[a.ID] = *a
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.admins[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (r *memoryRepository) GetByUsername(_ context.Context, username string) (*Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.admins {
		if a.Username == username {
			return &a, nil
		}
	}
	return nil, ErrNotFound
}
