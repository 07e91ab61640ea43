package settings

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/courtmaster-backend/internal/db"
)

type Repository interface {
	Get(ctx context.Context) (*OperatingConfig, error)
	Save(ctx context.Context, cfg *OperatingConfig) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const singletonID = 1

func (r *pgxRepository) Get(ctx context.Context) (*OperatingConfig, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("open_time", "close_time", "slot_duration", "price_per_hour", "updated_at").
		From("public.settings").
		Where(squirrel.Eq{"id": singletonID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get settings query failed: %w", err)
	}

	var (
		cfg             OperatingConfig
		openAt, closeAt pgtype.Time
	)
	err = r.pool.QueryRow(ctx, query, args...).
		Scan(&openAt, &closeAt, &cfg.SlotDurationMinutes, &cfg.PricePerHour, &cfg.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errNotConfigured
		}
		return nil, fmt.Errorf("get settings failed: %w", err)
	}
	cfg.OpenAt = db.TimeOfDay(openAt)
	cfg.CloseAt = db.TimeOfDay(closeAt)
	return &cfg, nil
}

func (r *pgxRepository) Save(ctx context.Context, cfg *OperatingConfig) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.settings").
		Columns("id", "open_time", "close_time", "slot_duration", "price_per_hour").
		Values(singletonID, db.Time(cfg.OpenAt), db.Time(cfg.CloseAt), cfg.SlotDurationMinutes, cfg.PricePerHour).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			slot_duration = EXCLUDED.slot_duration,
			price_per_hour = EXCLUDED.price_per_hour,
			updated_at = now()
		RETURNING updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build save settings query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&cfg.UpdatedAt); err != nil {
		return fmt.Errorf("save settings failed: %w", err)
	}
	return nil
}

type memoryRepository struct {
	mu  sync.RWMutex
	cfg *OperatingConfig
}

// NewMemoryRepository returns a process-local Repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) Get(_ context.Context) (*OperatingConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.cfg == nil {
		return nil, errNotConfigured
	}
	cfg := *r.cfg
	return &cfg, nil
}

func (r *memoryRepository) Save(_ context.Context, cfg *OperatingConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cfg.UpdatedAt = time.Now().UTC()
	saved := *cfg
	r.cfg = &saved
	return nil
}
