package restaurant

import (
	"context"
	"sync"
	"time"
)

type InMemoryRepository struct {
	mu          sync.Mutex
	restaurants map[string]*Restaurant
	channels    map[string]Channel
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		restaurants: make(map[string]*Restaurant),
		channels:    make(map[string]Channel),
	}
}

func (m *InMemoryRepository) Create(ctx context.Context, r *Restaurant) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r.CreatedAt = time.Now()
	cp := *r
	m.restaurants[r.ID] = &cp
	return nil
}

func (m *InMemoryRepository) Get(ctx context.Context, id string) (*Restaurant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.restaurants[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *InMemoryRepository) IsOwner(ctx context.Context, restaurantID string, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.restaurants[restaurantID]
	return ok && r.OwnerID != "" && r.OwnerID == userID, nil
}

func (m *InMemoryRepository) AttachChannel(ctx context.Context, ch *Channel) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.channels[ch.DID]; ok {
		if existing.RestaurantID != ch.RestaurantID {
			return ErrChannelTaken
		}
		ch.CreatedAt = existing.CreatedAt
		return nil
	}

	ch.CreatedAt = time.Now()
	m.channels[ch.DID] = *ch
	return nil
}

func (m *InMemoryRepository) ListChannels(ctx context.Context, restaurantID string) ([]Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Channel
	for _, ch := range m.channels {
		if ch.RestaurantID == restaurantID {
			out = append(out, ch)
		}
	}
	return out, nil
}
