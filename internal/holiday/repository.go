package holiday

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/courtmaster-backend/internal/db"
)

type Repository interface {
	Create(ctx context.Context, h *Holiday) error
	List(ctx context.Context, filter Filter) ([]*Holiday, error)
	ExistsOn(ctx context.Context, day time.Time) (bool, error)
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, h *Holiday) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.holidays").
		Columns("date", "description").
		Values(db.Date(h.Date), h.Description).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create holiday query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&h.ID, &h.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("create holiday failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Holiday, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("id", "date", "description", "created_at").
		From("public.holidays").
		OrderBy("date ASC")
	if !filter.From.IsZero() {
		query = query.Where(squirrel.GtOrEq{"date": db.Date(filter.From)})
	}
	if !filter.To.IsZero() {
		query = query.Where(squirrel.LtOrEq{"date": db.Date(filter.To)})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list holidays query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list holidays failed: %w", err)
	}
	defer rows.Close()

	var holidays []*Holiday
	for rows.Next() {
		var (
			h    Holiday
			date pgtype.Date
		)
		if err := rows.Scan(&h.ID, &date, &h.Description, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan holiday failed: %w", err)
		}
		h.Date = date.Time
		holidays = append(holidays, &h)
	}
	return holidays, rows.Err()
}

func (r *pgxRepository) ExistsOn(ctx context.Context, day time.Time) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM public.holidays WHERE date = $1)`, db.Date(day)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check holiday failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM public.holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete holiday failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
