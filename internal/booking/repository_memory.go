package booking

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nekogravitycat/courtmaster-backend/internal/court"
	"github.com/nekogravitycat/courtmaster-backend/internal/period"
)

// memoryRepository keeps the ledger in process memory. A single RWMutex serializes
// writers, so the overlap check and the insert in Create are one atomic step.
type memoryRepository struct {
	mu       sync.RWMutex
	bookings map[string]Booking
	// removed holds courts deleted through RemoveCourtIfUnused; it stands in
	// for the foreign key the postgres schema has.
	removed  map[string]struct{}
}

func NewMemoryRepository() Repository {
	return &memoryRepository{
		bookings: make(map[string]Booking),
		removed:  make(map[string]struct{}),
	}
}

func (r *memoryRepository) Create(_ context.Context, b *Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, gone := r.removed[b.CourtID]; gone {
		return ErrCourtNotFound
	}
	if HasConflict(b.CourtID, b.Date, b.StartTime, b.EndTime, r.sameCourtDay(b.CourtID, b.Date)) {
		return ErrTimeConflict
	}

	b.ID = uuid.NewString()
	b.CreatedAt = time.Now().UTC()
	r.bookings[b.ID] = *b
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (r *memoryRepository) List(_ context.Context, filter Filter) ([]*Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var courts map[string]bool
	if len(filter.CourtIDs) > 0 {
		courts = make(map[string]bool, len(filter.CourtIDs))
		for _, id := range filter.CourtIDs {
			courts[id] = true
		}
	}
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	var out []*Booking
	for _, b := range r.bookings {
		if !filter.Date.IsZero() {
			if !b.Date.Equal(period.Day(filter.Date)) {
				continue
			}
		} else {
			if !filter.From.IsZero() && b.Date.Before(period.Day(filter.From)) {
				continue
			}
			if !filter.To.IsZero() && b.Date.After(period.Day(filter.To)) {
				continue
			}
		}
		if courts != nil && !courts[b.CourtID] {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(b.CustomerName), search) &&
			!strings.Contains(strings.ToLower(b.Mobile), search) {
			continue
		}
		out = append(out, &b)
	}

	sortBookings(out)
	return out, nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[id]; !ok {
		return ErrNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *memoryRepository) DeleteRange(_ context.Context, rng period.Range) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, b := range r.bookings {
		if rng.Contains(b.Date) {
			delete(r.bookings, id)
			n++
		}
	}
	return n, nil
}

func (r *memoryRepository) DistinctYears(_ context.Context) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[int]bool)
	var years []int
	for _, b := range r.bookings {
		if y := b.Date.Year(); !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years, nil
}

func (r *memoryRepository) HasBookingsForCourt(_ context.Context, courtID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.referencesCourt(courtID), nil
}

// RemoveCourtIfUnused holds the write lock across the check and remove, so a
// concurrent Create either lands first and blocks the removal or sees the
// court as gone.
func (r *memoryRepository) RemoveCourtIfUnused(_ context.Context, courtID string, remove func() error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.referencesCourt(courtID) {
		return court.ErrInUse
	}
	if err := remove(); err != nil {
		return err
	}
	r.removed[courtID] = struct{}{}
	return nil
}

// referencesCourt must be called with mu held.
func (r *memoryRepository) referencesCourt(courtID string) bool {
	for _, b := range r.bookings {
		if b.CourtID == courtID {
			return true
		}
	}
	return false
}

// sameCourtDay must be called with mu held.
func (r *memoryRepository) sameCourtDay(courtID string, date time.Time) []*Booking {
	var out []*Booking
	for _, b := range r.bookings {
		if b.CourtID == courtID && b.Date.Equal(date) {
			out = append(out, &b)
		}
	}
	return out
}

func sortBookings(bs []*Booking) {
	sort.Slice(bs, func(i, j int) bool {
		a, b := bs[i], bs[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}
