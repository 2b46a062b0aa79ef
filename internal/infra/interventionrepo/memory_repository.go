package interventionrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/wellbeing/internal/domain/intervention"
)

// MemoryRepository stores interventions in process memory for tests/dev.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]intervention.Intervention
	order []uuid.UUID
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[uuid.UUID]intervention.Intervention)}
}

func (r *MemoryRepository) InsertBatch(_ context.Context, items []intervention.Intervention) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range items {
		if _, exists := r.items[item.ID]; !exists {
			r.order = append(r.order, item.ID)
		}
		r.items[item.ID] = item
	}
	return nil
}

// List returns the user's interventions, newest first.
func (r *MemoryRepository) List(_ context.Context, userID uuid.UUID, filter intervention.Filter) ([]intervention.Intervention, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]intervention.Intervention, 0)
	for i := len(r.order) - 1; i >= 0; i-- {
		item := r.items[r.order[i]]
		if item.UserID != userID {
			continue
		}
		if filter.Status != nil && item.Status != *filter.Status {
			continue
		}
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *MemoryRepository) Get(_ context.Context, userID, id uuid.UUID) (intervention.Intervention, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return intervention.Intervention{}, false, nil
	}
	return item, true, nil
}

// UpdateStatus applies the transition only while the item still has the from status.
func (r *MemoryRepository) UpdateStatus(_ context.Context, userID, id uuid.UUID, from, to intervention.Status, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.UserID != userID || item.Status != from {
		return false, nil
	}
	item.MarkStatus(to, at)
	r.items[id] = item
	return true, nil
}

var _ intervention.Repository = (*MemoryRepository)(nil)
