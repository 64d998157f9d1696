package order

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryRepository backs tests and local runs without Postgres.
type InMemoryRepository struct {
	mu       sync.Mutex
	menus    map[string][]MenuEntry
	channels map[string]string
	orders   map[string]*Order

	// Writes counts InsertOrder, InsertOrderLines and UpdateStatus calls.
	Writes int
	// Lookups counts GetMenu and GetChannelRestaurant calls.
	Lookups int

	// FailLines makes InsertOrderLines return this error.
	FailLines error
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		menus:    make(map[string][]MenuEntry),
		channels: make(map[string]string),
		orders:   make(map[string]*Order),
	}
}

func (r *InMemoryRepository) SetMenu(restaurantID string, menu []MenuEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.menus[restaurantID] = menu
}

func (r *InMemoryRepository) SetChannel(did, restaurantID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.channels[did] = restaurantID
}

// Order returns a stored order or nil.
func (r *InMemoryRepository) Order(id string) *Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.orders[id]
}

func (r *InMemoryRepository) GetMenu(ctx context.Context, restaurantID string) ([]MenuEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Lookups++
	return append([]MenuEntry(nil), r.menus[restaurantID]...), nil
}

func (r *InMemoryRepository) GetChannelRestaurant(ctx context.Context, did string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Lookups++
	id, ok := r.channels[did]
	if !ok {
		return "", ErrChannelNotFound
	}
	return id, nil
}

func (r *InMemoryRepository) InsertOrder(ctx context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Writes++
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	o.CreatedAt = time.Now()
	stored := *o
	stored.Lines = nil
	r.orders[o.ID] = &stored
	return nil
}

func (r *InMemoryRepository) InsertOrderLines(ctx context.Context, orderID string, lines []ResolvedLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Writes++
	if r.FailLines != nil {
		return r.FailLines
	}
	o, ok := r.orders[orderID]
	if !ok {
		return ErrOrderNotFound
	}
	o.Lines = append(o.Lines, lines...)
	return nil
}

func (r *InMemoryRepository) DeleteOrder(ctx context.Context, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.orders, orderID)
	return nil
}

func (r *InMemoryRepository) GetOrderRestaurant(ctx context.Context, orderID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Lookups++
	o, ok := r.orders[orderID]
	if !ok {
		return "", ErrOrderNotFound
	}
	return o.RestaurantID, nil
}

func (r *InMemoryRepository) UpdateStatus(ctx context.Context, orderID string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Writes++
	o, ok := r.orders[orderID]
	if !ok {
		return ErrOrderNotFound
	}
	o.Status = status
	return nil
}

func (r *InMemoryRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Order
	for _, o := range r.orders {
		if o.RestaurantID == restaurantID {
			cp := *o
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
