package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/courtmaster-backend/internal/court"
	"github.com/nekogravitycat/courtmaster-backend/internal/events"
	"github.com/nekogravitycat/courtmaster-backend/internal/holiday"
	"github.com/nekogravitycat/courtmaster-backend/internal/period"
	"github.com/nekogravitycat/courtmaster-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/courtmaster-backend/internal/schedule"
	"github.com/nekogravitycat/courtmaster-backend/internal/settings"
)

type fixture struct {
	svc      Service
	repo     Repository
	courts   court.Service
	settings settings.Service
	holidays holiday.Service
	court1   *court.Court
	court2   *court.Court

	mu     sync.Mutex
	events []events.Event
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{repo: NewMemoryRepository()}
	pub := events.PublisherFunc(func(_ context.Context, e events.Event) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.events = append(f.events, e)
		return nil
	})

	f.courts = court.NewService(court.NewMemoryRepository(), f.repo)
	f.settings = settings.NewService(settings.NewMemoryRepository(), nil)
	f.holidays = holiday.NewService(holiday.NewMemoryRepository())
	f.svc = NewService(f.repo, f.courts, f.settings, f.holidays, pub)

	var err error
	f.court1, err = f.courts.Create(ctx, court.CreateRequest{Name: "Court 1"})
	require.NoError(t, err)
	f.court2, err = f.courts.Create(ctx, court.CreateRequest{Name: "Court 2"})
	require.NoError(t, err)
	return f
}

func (f *fixture) request(courtID string, date time.Time, start, end string) CreateRequest {
	return CreateRequest{
		CourtID:      courtID,
		Date:         date,
		StartTime:    at(start),
		EndTime:      at(end),
		CustomerName: "Alice",
		Mobile:       "0912345678",
	}
}

func (f *fixture) eventTypes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.events))
	for i, e := range f.events {
		out[i] = e.Type
	}
	return out
}

var day = period.Date(2024, time.March, 5)

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	b, err := f.svc.Create(ctx, f.request(f.court1.ID, day, "10:00", "11:00"))
	require.NoError(t, err)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, StatusBooked, b.Status)
	assert.Equal(t, CategoryBooking, b.Category)
	assert.Equal(t, day, b.Date)

	// Overlapping window on the same court is rejected.
	_, err = f.svc.Create(ctx, f.request(f.court1.ID, day, "10:30", "11:30"))
	assert.ErrorIs(t, err, ErrTimeConflict)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))

	// Same window on another court succeeds.
	_, err = f.svc.Create(ctx, f.request(f.court2.ID, day, "10:30", "11:30"))
	require.NoError(t, err)

	// Back-to-back on the same court succeeds.
	_, err = f.svc.Create(ctx, f.request(f.court1.ID, day, "11:00", "12:00"))
	require.NoError(t, err)

	assert.Equal(t, []string{events.BookingCreated, events.BookingCreated, events.BookingCreated}, f.eventTypes())
}

func TestService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	inactive := false
	closed, err := f.courts.Create(ctx, court.CreateRequest{Name: "Closed court", Active: &inactive})
	require.NoError(t, err)

	_, err = f.holidays.Create(ctx, holiday.CreateRequest{Date: period.Date(2024, time.December, 25)})
	require.NoError(t, err)

	tests := []struct {
		name    string
		mutate  func(r *CreateRequest)
		wantErr error
	}{
		{"End before start", func(r *CreateRequest) { r.StartTime, r.EndTime = at("11:00"), at("10:00") }, ErrInvalidTimeRange},
		{"Zero length", func(r *CreateRequest) { r.EndTime = r.StartTime }, ErrInvalidTimeRange},
		{"Blank customer", func(r *CreateRequest) { r.CustomerName = "   " }, ErrNameRequired},
		{"Unknown category", func(r *CreateRequest) { r.Category = "tournament" }, ErrInvalidCategory},
		{"Not a slot multiple", func(r *CreateRequest) { r.EndTime = at("10:45") }, ErrDurationNotSlotted},
		{"Missing date", func(r *CreateRequest) { r.Date = time.Time{} }, ErrDateRequired},
		{"Unknown court", func(r *CreateRequest) { r.CourtID = "00000000-0000-0000-0000-000000000000" }, ErrCourtNotFound},
		{"Inactive court", func(r *CreateRequest) { r.CourtID = closed.ID }, ErrCourtInactive},
		{"Holiday", func(r *CreateRequest) { r.Date = period.Date(2024, time.December, 25) }, ErrHoliday},
		{"Past midnight", func(r *CreateRequest) { r.EndTime = schedule.TimeOfDay(24 * 60) }, ErrInvalidTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.request(f.court1.ID, day, "10:00", "11:00")
			tt.mutate(&req)

			_, err := f.svc.Create(ctx, req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		})
	}

	all, err := f.svc.Query(ctx, Query{})
	require.NoError(t, err)
	assert.Empty(t, all, "rejected requests never reach the ledger")
}

func TestService_CreateUsesCurrentSlotDuration(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.settings.Update(ctx, settings.UpdateRequest{SlotDurationMinutes: ptr(30)})
	require.NoError(t, err)

	b, err := f.svc.Create(ctx, f.request(f.court1.ID, day, "10:00", "11:30"))
	require.NoError(t, err)
	assert.Equal(t, 90, b.DurationMinutes())

	// A later change does not invalidate existing bookings.
	_, err = f.settings.Update(ctx, settings.UpdateRequest{SlotDurationMinutes: ptr(60)})
	require.NoError(t, err)

	got, err := f.svc.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
}

func TestService_CategoryIsNormalized(t *testing.T) {
	f := newFixture(t)

	req := f.request(f.court1.ID, day, "08:00", "09:00")
	req.Category = " Coaching "
	b, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, CategoryCoaching, b.Category)
}

func TestService_Cancel(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	b, err := f.svc.Create(ctx, f.request(f.court1.ID, day, "10:00", "11:00"))
	require.NoError(t, err)

	require.NoError(t, f.svc.Cancel(ctx, b.ID))
	assert.ErrorIs(t, f.svc.Cancel(ctx, b.ID), ErrNotFound)

	_, err = f.svc.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// The window is free again.
	_, err = f.svc.Create(ctx, f.request(f.court1.ID, day, "10:00", "11:00"))
	require.NoError(t, err)

	assert.Equal(t, []string{events.BookingCreated, events.BookingCancelled, events.BookingCreated}, f.eventTypes())
}

func TestService_Query(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	create := func(courtID string, date time.Time, start, end, name, mobile string) {
		t.Helper()
		req := f.request(courtID, date, start, end)
		req.CustomerName, req.Mobile = name, mobile
		_, err := f.svc.Create(ctx, req)
		require.NoError(t, err)
	}
	create(f.court1.ID, day, "11:00", "12:00", "Alice Wong", "0911000111")
	create(f.court2.ID, day, "09:00", "10:00", "Bob Chen", "0922000222")
	create(f.court1.ID, day.AddDate(0, 0, -1), "15:00", "16:00", "Carol", "0933000333")

	all, err := f.svc.Query(ctx, Query{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Carol", all[0].CustomerName, "ordered by date first")
	assert.Equal(t, "Bob Chen", all[1].CustomerName, "then by start time")

	onDay, err := f.svc.Query(ctx, Query{Date: day})
	require.NoError(t, err)
	assert.Len(t, onDay, 2)

	byName, err := f.svc.Query(ctx, Query{Search: "alice"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Alice Wong", byName[0].CustomerName)

	byMobile, err := f.svc.Query(ctx, Query{Search: "0922"})
	require.NoError(t, err)
	require.Len(t, byMobile, 1)
	assert.Equal(t, "Bob Chen", byMobile[0].CustomerName)

	none, err := f.svc.Query(ctx, Query{Date: day, Search: "carol"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestService_BulkDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	march := func(d int) time.Time { return period.Date(2024, time.March, d) }
	for _, d := range []int{1, 7, 8, 29, 31} {
		_, err := f.svc.Create(ctx, f.request(f.court1.ID, march(d), "10:00", "11:00"))
		require.NoError(t, err)
	}
	_, err := f.svc.Create(ctx, f.request(f.court1.ID, period.Date(2023, time.March, 31), "10:00", "11:00"))
	require.NoError(t, err)

	res, err := f.svc.BulkDelete(ctx, period.Selector{Kind: period.KindWeekly, Year: 2024, Month: 3, Week: 1})
	require.NoError(t, err)
	assert.True(t, res.Deleted)
	assert.EqualValues(t, 2, res.Count)
	assert.Equal(t, march(1), res.Range.Start)
	assert.Equal(t, march(7), res.Range.End)

	res, err = f.svc.BulkDelete(ctx, period.Selector{Kind: period.KindWeekly, Year: 2024, Month: 3, Week: 5})
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.Count, "week 5 covers the 29th to the 31st")

	// Nothing left in week 1: a non-success outcome, not an error.
	res, err = f.svc.BulkDelete(ctx, period.Selector{Kind: period.KindWeekly, Year: 2024, Month: 3, Week: 1})
	require.NoError(t, err)
	assert.False(t, res.Deleted)
	assert.Zero(t, res.Count)

	res, err = f.svc.BulkDelete(ctx, period.Selector{Kind: period.KindYearly, Year: 2024})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Count)

	years, err := f.svc.DistinctYears(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{2023}, years)

	_, err = f.svc.BulkDelete(ctx, period.Selector{Kind: period.KindWeekly, Year: 2023, Month: 2, Week: 5})
	assert.ErrorIs(t, err, period.ErrInvalidWeek)
}

func TestService_DistinctYears(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	years, err := f.svc.DistinctYears(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{}, years)

	for _, y := range []int{2022, 2024, 2023, 2024} {
		_, err := f.svc.Create(ctx, f.request(f.court1.ID, period.Date(y, time.June, 1), "10:00", "11:00"))
		if err != nil {
			require.ErrorIs(t, err, ErrTimeConflict)
		}
	}

	years, err = f.svc.DistinctYears(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{2024, 2023, 2022}, years)
}

func TestService_DaySchedule(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	b, err := f.svc.Create(ctx, f.request(f.court1.ID, day, "06:00", "08:00"))
	require.NoError(t, err)

	ds, err := f.svc.DaySchedule(ctx, day)
	require.NoError(t, err)
	assert.False(t, ds.Holiday)
	assert.Equal(t, 60, ds.SlotDurationMinutes)
	require.Len(t, ds.Courts, 2)

	c1 := ds.Courts[0]
	assert.Equal(t, f.court1.ID, c1.Court.ID)
	require.Len(t, c1.Slots, 7, "05:00 to 12:00 in 60 minute slots")
	assert.Nil(t, c1.Slots[0].Booking)
	require.NotNil(t, c1.Slots[1].Booking)
	assert.Equal(t, b.ID, c1.Slots[1].Booking.ID)
	require.NotNil(t, c1.Slots[2].Booking)
	assert.Nil(t, c1.Slots[3].Booking)

	for _, cell := range ds.Courts[1].Slots {
		assert.Nil(t, cell.Booking)
	}

	// Deactivated courts drop out of the grid.
	off := false
	_, err = f.courts.Update(ctx, f.court2.ID, court.UpdateRequest{Active: &off})
	require.NoError(t, err)
	ds, err = f.svc.DaySchedule(ctx, day)
	require.NoError(t, err)
	assert.Len(t, ds.Courts, 1)
}

func TestService_DeleteCourtWithBookings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Create(ctx, f.request(f.court1.ID, day, "10:00", "11:00"))
	require.NoError(t, err)

	assert.ErrorIs(t, f.courts.Delete(ctx, f.court1.ID), court.ErrInUse)
	assert.NoError(t, f.courts.Delete(ctx, f.court2.ID))
}

func TestMemoryRepository_CreateAfterCourtRemoved(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// The court passed validation, then went away before the insert.
	require.NoError(t, f.courts.Delete(ctx, f.court2.ID))
	err := f.repo.Create(ctx, &Booking{
		CourtID:   f.court2.ID,
		Date:      day,
		StartTime: at("10:00"),
		EndTime:   at("11:00"),
		Status:    StatusBooked,
	})
	assert.ErrorIs(t, err, ErrCourtNotFound)

	used, err := f.repo.HasBookingsForCourt(ctx, f.court2.ID)
	require.NoError(t, err)
	assert.False(t, used)
}

func TestMemoryRepository_RemoveCourtIfUnused(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Create(ctx, f.request(f.court1.ID, day, "10:00", "11:00"))
	require.NoError(t, err)

	called := false
	err = f.repo.RemoveCourtIfUnused(ctx, f.court1.ID, func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, court.ErrInUse)
	assert.False(t, called)

	// A failed remove leaves the court bookable.
	err = f.repo.RemoveCourtIfUnused(ctx, f.court2.ID, func() error { return assert.AnError })
	assert.ErrorIs(t, err, assert.AnError)
	_, err = f.svc.Create(ctx, f.request(f.court2.ID, day, "10:00", "11:00"))
	assert.NoError(t, err)
}

func TestService_DeleteCourtRacingCreate(t *testing.T) {
	ctx := context.Background()

	for range 50 {
		f := newFixture(t)

		var (
			wg      sync.WaitGroup
			created atomic.Int32
		)
		start := make(chan struct{})
		for hour := 5; hour < 12; hour++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				req := f.request(f.court2.ID, day, fmt.Sprintf("%02d:00", hour), fmt.Sprintf("%02d:00", hour+1))
				_, err := f.svc.Create(ctx, req)
				switch {
				case err == nil:
					created.Add(1)
				case errors.Is(err, ErrCourtNotFound):
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}()
		}

		var delErr error
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			delErr = f.courts.Delete(ctx, f.court2.ID)
		}()
		close(start)
		wg.Wait()

		used, err := f.repo.HasBookingsForCourt(ctx, f.court2.ID)
		require.NoError(t, err)
		if delErr == nil {
			assert.False(t, used, "booking stored for a deleted court")
			assert.Zero(t, created.Load())
		} else {
			require.ErrorIs(t, delErr, court.ErrInUse)
			assert.True(t, used)
			_, err := f.courts.GetByID(ctx, f.court2.ID)
			assert.NoError(t, err)
		}
	}
}

func TestService_ConcurrentCreateSameWindow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	const workers = 20
	var (
		wg        sync.WaitGroup
		ok        atomic.Int32
		conflicts atomic.Int32
	)
	start := make(chan struct{})
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := f.svc.Create(ctx, f.request(f.court1.ID, day, "10:00", "11:00"))
			switch {
			case err == nil:
				ok.Add(1)
			case apperror.IsKind(err, apperror.KindConflict):
				conflicts.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.EqualValues(t, 1, ok.Load())
	assert.EqualValues(t, workers-1, conflicts.Load())

	onDay, err := f.svc.Query(ctx, Query{Date: day})
	require.NoError(t, err)
	assert.Len(t, onDay, 1)
}

func TestService_PublishFailureDoesNotFailBooking(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	failing := events.PublisherFunc(func(context.Context, events.Event) error { return assert.AnError })
	svc := NewService(f.repo, f.courts, f.settings, f.holidays, failing)

	_, err := svc.Create(ctx, f.request(f.court1.ID, day, "10:00", "11:00"))
	assert.NoError(t, err)
}

func ptr[T any](v T) *T { return &v }
