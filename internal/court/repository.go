package court

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, c *Court) error
	GetByID(ctx context.Context, id string) (*Court, error)
	List(ctx context.Context, filter Filter) ([]*Court, error)
	Update(ctx context.Context, c *Court) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func (r *pgxRepository) Create(ctx context.Context, c *Court) error {
	query, args, err := psql.Insert("public.courts").
		Columns("name", "active").
		Values(c.Name, c.Active).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create court query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&c.ID, &c.CreatedAt); err != nil {
		return mapWriteError("create court", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Court, error) {
	query, args, err := psql.Select("id", "name", "active", "created_at").
		From("public.courts").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get court query failed: %w", err)
	}

	var c Court
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&c.ID, &c.Name, &c.Active, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get court failed: %w", err)
	}
	return &c, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Court, error) {
	query := psql.Select("id", "name", "active", "created_at").
		From("public.courts").
		OrderBy("name ASC", "created_at ASC")
	if filter.ActiveOnly {
		query = query.Where(squirrel.Eq{"active": true})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list courts query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list courts failed: %w", err)
	}
	defer rows.Close()

	var courts []*Court
	for rows.Next() {
		var c Court
		if err := rows.Scan(&c.ID, &c.Name, &c.Active, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan court failed: %w", err)
		}
		courts = append(courts, &c)
	}
	return courts, rows.Err()
}

func (r *pgxRepository) Update(ctx context.Context, c *Court) error {
	query, args, err := psql.Update("public.courts").
		Set("name", c.Name).
		Set("active", c.Active).
		Where(squirrel.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update court query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return mapWriteError("update court", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Delete("public.courts").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete court query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return mapWriteError("delete court", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func mapWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return ErrNameTaken
		case pgerrcode.ForeignKeyViolation:
			return ErrInUse
		}
	}
	return fmt.Errorf("%s failed: %w", op, err)
}
