package court

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu     sync.RWMutex
	courts map[string]Court
}

// NewMemoryRepository returns a process-local Repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{courts: make(map[string]Court)}
}

func (r *memoryRepository) Create(_ context.Context, c *Court) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nameTaken(c.Name, "") {
		return ErrNameTaken
	}
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now().UTC()
	r.courts[c.ID] = *c
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (*Court, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.courts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r *memoryRepository) List(_ context.Context, filter Filter) ([]*Court, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Court
	for _, c := range r.courts {
		if filter.ActiveOnly && !c.Active {
			continue
		}
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memoryRepository) Update(_ context.Context, c *Court) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.courts[c.ID]
	if !ok {
		return ErrNotFound
	}
	if r.nameTaken(c.Name, c.ID) {
		return ErrNameTaken
	}
	existing.Name = c.Name
	existing.Active = c.Active
	r.courts[c.ID] = existing
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.courts[id]; !ok {
		return ErrNotFound
	}
	delete(r.courts, id)
	return nil
}

// nameTaken must be called with mu held.
func (r *memoryRepository) nameTaken(name, exceptID string) bool {
	for id, c := range r.courts {
		if id != exceptID && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}
