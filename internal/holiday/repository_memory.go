package holiday

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu       sync.RWMutex
	holidays map[string]Holiday
}

// NewMemoryRepository returns a process-local Repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{holidays: make(map[string]Holiday)}
}

func (r *memoryRepository) Create(_ context.Context, h *Holiday) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.holidays {
		if existing.Date.Equal(h.Date) {
			return ErrDuplicate
		}
	}
	h.ID = uuid.NewString()
	h.CreatedAt = time.Now().UTC()
	r.holidays[h.ID] = *h
	return nil
}

func (r *memoryRepository) List(_ context.Context, filter Filter) ([]*Holiday, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Holiday
	for _, h := range r.holidays {
		if !filter.From.IsZero() && h.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && h.Date.After(filter.To) {
			continue
		}
		out = append(out, &h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *memoryRepository) ExistsOn(_ context.Context, day time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, h := range r.holidays {
		if h.Date.Equal(day) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.holidays[id]; !ok {
		return ErrNotFound
	}
	delete(r.holidays, id)
	return nil
}
