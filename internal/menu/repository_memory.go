package menu

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type InMemoryRepository struct {
	mu      sync.Mutex
	items   map[string][]Item
	Uploads []Upload
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{items: make(map[string][]Item)}
}

func (r *InMemoryRepository) ReplaceItems(ctx context.Context, restaurantID string, items []Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Item, len(items))
	for i, it := range items {
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		it.RestaurantID = restaurantID
		out[i] = it
	}
	r.items[restaurantID] = out
	return nil
}

func (r *InMemoryRepository) ListItems(ctx context.Context, restaurantID string) ([]Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Item(nil), r.items[restaurantID]...), nil
}

func (r *InMemoryRepository) RecordUpload(ctx context.Context, u *Upload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	u.CreatedAt = time.Now()
	r.Uploads = append(r.Uploads, *u)
	return nil
}
