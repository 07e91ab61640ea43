package booking

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/courtmaster-backend/internal/court"
	"github.com/nekogravitycat/courtmaster-backend/internal/db"
	"github.com/nekogravitycat/courtmaster-backend/internal/period"
)

// newTestPool connects to TEST_DB_DSN and resets the ledger tables.
// Tests using it are skipped when no database is configured.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN is not set")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, dsn, db.PoolOptions{})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, db.Migrate(ctx, pool))
	_, err = pool.Exec(ctx, "TRUNCATE TABLE public.bookings, public.courts CASCADE")
	require.NoError(t, err)
	return pool
}

func TestPgxRepository_Ledger(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()

	c := &court.Court{Name: "Court 1", Active: true}
	require.NoError(t, court.NewPgxRepository(pool).Create(ctx, c))

	repo := NewPgxRepository(pool)
	newBooking := func(date time.Time, start, end string) *Booking {
		return &Booking{
			CourtID: c.ID, Date: date, StartTime: at(start), EndTime: at(end),
			CustomerName: "Alice", Mobile: "0912x345", Category: CategoryBooking, Status: StatusBooked,
		}
	}

	b := newBooking(day, "10:00", "11:00")
	require.NoError(t, repo.Create(ctx, b))
	assert.NotEmpty(t, b.ID)

	assert.ErrorIs(t, repo.Create(ctx, newBooking(day, "10:30", "11:30")), ErrTimeConflict)
	require.NoError(t, repo.Create(ctx, newBooking(day, "11:00", "12:00")))
	require.NoError(t, repo.Create(ctx, newBooking(period.Date(2023, time.May, 1), "10:00", "11:00")))

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, day, got.Date.UTC())
	assert.Equal(t, "10:00", got.StartTime.String())
	assert.Equal(t, "11:00", got.EndTime.String())

	list, err := repo.List(ctx, Filter{Date: day})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "10:00", list[0].StartTime.String())

	// LIKE wildcards in the search term match literally.
	found, err := repo.List(ctx, Filter{Search: "2_3"})
	require.NoError(t, err)
	assert.Empty(t, found)
	found, err = repo.List(ctx, Filter{Search: "12X3"})
	require.NoError(t, err)
	assert.Len(t, found, 3)

	years, err := repo.DistinctYears(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{2024, 2023}, years)

	used, err := repo.HasBookingsForCourt(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, used)
	assert.ErrorIs(t, court.NewPgxRepository(pool).Delete(ctx, c.ID), court.ErrInUse)

	n, err := repo.DeleteRange(ctx, period.Range{Start: period.Date(2024, time.March, 1), End: period.Date(2024, time.March, 7)})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	require.NoError(t, repo.Delete(ctx, found[0].ID))
	assert.ErrorIs(t, repo.Delete(ctx, found[0].ID), ErrNotFound)
}

func TestPgxRepository_ConcurrentCreate(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()

	c := &court.Court{Name: "Court 1", Active: true}
	require.NoError(t, court.NewPgxRepository(pool).Create(ctx, c))
	repo := NewPgxRepository(pool)

	const workers = 10
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = repo.Create(ctx, &Booking{
				CourtID: c.ID, Date: day, StartTime: at("10:00"), EndTime: at("11:00"),
				CustomerName: "Racer", Category: CategoryBooking, Status: StatusBooked,
			})
		}()
	}
	wg.Wait()

	var created int
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.ErrorIs(t, err, ErrTimeConflict)
	}
	assert.Equal(t, 1, created)
}
