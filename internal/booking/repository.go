package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/courtmaster-backend/internal/court"
	"github.com/nekogravitycat/courtmaster-backend/internal/db"
	"github.com/nekogravitycat/courtmaster-backend/internal/period"
)

type Repository interface {
	// Create inserts the booking after re-checking for overlaps atomically.
	// It returns ErrTimeConflict when another booking already holds any part of the window.
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	// List returns matching bookings ordered by date, then start time.
	List(ctx context.Context, filter Filter) ([]*Booking, error)
	Delete(ctx context.Context, id string) error
	// DeleteRange removes every booking dated within r and returns how many were removed.
	DeleteRange(ctx context.Context, r period.Range) (int64, error)
	// DistinctYears lists the years that have bookings, newest first.
	DistinctYears(ctx context.Context) ([]int, error)
	HasBookingsForCourt(ctx context.Context, courtID string) (bool, error)
	court.UsageGuard
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var bookingColumns = []string{
	"id", "court_id", "date", "start_time", "end_time",
	"customer_name", "mobile", "category", "status", "created_at",
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create booking tx failed: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Serialize writers for one court and day. The lock is released on commit or rollback.
	lockKey := b.CourtID + "|" + b.Date.Format("2006-01-02")
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, lockKey); err != nil {
		return fmt.Errorf("lock court day failed: %w", err)
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sub, args, err := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"court_id": b.CourtID, "date": db.Date(b.Date)}).
		Where(squirrel.Lt{"start_time": db.Time(b.EndTime)}).
		Where(squirrel.Gt{"end_time": db.Time(b.StartTime)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build check overlap query failed: %w", err)
	}

	var exists bool
	if err := tx.QueryRow(ctx, "SELECT EXISTS ("+sub+")", args...).Scan(&exists); err != nil {
		return fmt.Errorf("check overlap failed: %w", err)
	}
	if exists {
		return ErrTimeConflict
	}

	query, args, err := psql.Insert("public.bookings").
		Columns("court_id", "date", "start_time", "end_time", "customer_name", "mobile", "category", "status").
		Values(b.CourtID, db.Date(b.Date), db.Time(b.StartTime), db.Time(b.EndTime),
			b.CustomerName, b.Mobile, string(b.Category), b.Status).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt); err != nil {
		return mapWriteError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return mapWriteError(err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns...).
		From("public.bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(bookingColumns...).From("public.bookings")

	switch {
	case !filter.Date.IsZero():
		query = query.Where(squirrel.Eq{"date": db.Date(filter.Date)})
	default:
		if !filter.From.IsZero() {
			query = query.Where(squirrel.GtOrEq{"date": db.Date(filter.From)})
		}
		if !filter.To.IsZero() {
			query = query.Where(squirrel.LtOrEq{"date": db.Date(filter.To)})
		}
	}
	if len(filter.CourtIDs) > 0 {
		query = query.Where(squirrel.Eq{"court_id": filter.CourtIDs})
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		pattern := "%" + escapeLike(s) + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"customer_name": pattern},
			squirrel.ILike{"mobile": pattern},
		})
	}

	sql, args, err := query.OrderBy("date ASC", "start_time ASC", "created_at ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) DeleteRange(ctx context.Context, rng period.Range) (int64, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.bookings").
		Where(squirrel.GtOrEq{"date": db.Date(rng.Start)}).
		Where(squirrel.LtOrEq{"date": db.Date(rng.End)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build bulk delete query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("bulk delete bookings failed: %w", err)
	}
	return ct.RowsAffected(), nil
}

func (r *pgxRepository) DistinctYears(ctx context.Context) ([]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT EXTRACT(YEAR FROM date)::int AS year
		FROM public.bookings
		ORDER BY year DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list booking years failed: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[int])
}

func (r *pgxRepository) HasBookingsForCourt(ctx context.Context, courtID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM public.bookings WHERE court_id = $1)`, courtID).
		Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check court bookings failed: %w", err)
	}
	return exists, nil
}

// RemoveCourtIfUnused relies on the ON DELETE RESTRICT foreign key to close the
// window between the check and the delete.
func (r *pgxRepository) RemoveCourtIfUnused(ctx context.Context, courtID string, remove func() error) error {
	used, err := r.HasBookingsForCourt(ctx, courtID)
	if err != nil {
		return err
	}
	if used {
		return court.ErrInUse
	}
	return remove()
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var (
		b          Booking
		date       pgtype.Date
		start, end pgtype.Time
		category   string
	)
	if err := row.Scan(
		&b.ID, &b.CourtID, &date, &start, &end,
		&b.CustomerName, &b.Mobile, &category, &b.Status, &b.CreatedAt,
	); err != nil {
		return nil, err
	}
	b.Date = date.Time
	b.StartTime = db.TimeOfDay(start)
	b.EndTime = db.TimeOfDay(end)
	b.Category = Category(category)
	return &b, nil
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.ExclusionViolation:
			return ErrTimeConflict
		case pgerrcode.ForeignKeyViolation:
			return ErrCourtNotFound
		}
	}
	return fmt.Errorf("create booking failed: %w", err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
