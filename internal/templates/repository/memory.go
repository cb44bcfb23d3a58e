package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	domain "github.com/corvusHold/leasedesk/internal/templates/domain"
)

// MemoryRepository keeps templates in process memory, listed in insertion order.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]domain.Template
	order []string
}

var _ domain.Repository = (*MemoryRepository)(nil)

func NewMemory() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]domain.Template)}
}

func (r *MemoryRepository) NextID() string { return uuid.NewString() }

func (r *MemoryRepository) Insert(ctx context.Context, t domain.Template) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[t.ID]; !exists {
		r.order = append(r.order, t.ID)
	}
	r.items[t.ID] = t
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (domain.Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.items[id]
	if !ok {
		return domain.Template{}, domain.ErrNotFound
	}
	return t, nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]domain.Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Template, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryRepository) IncrementUsage(ctx context.Context, id string, at time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.items[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	t.UsageCount++
	t.LastUsedAt = &at
	r.items[id] = t
	return t.UsageCount, nil
}
