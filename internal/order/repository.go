package order

import (
	"context"
	"errors"
)

var (
	ErrChannelNotFound = errors.New("no channel configured for identifier")
	ErrOrderNotFound   = errors.New("order not found")
)

// Repository is everything the order pipeline needs from storage.
// Service depends ONLY on this interface.
type Repository interface {
	GetMenu(ctx context.Context, restaurantID string) ([]MenuEntry, error)
	GetChannelRestaurant(ctx context.Context, did string) (string, error)

	// InsertOrder assigns o.ID and o.CreatedAt.
	InsertOrder(ctx context.Context, o *Order) error
	InsertOrderLines(ctx context.Context, orderID string, lines []ResolvedLine) error
	DeleteOrder(ctx context.Context, orderID string) error

	// GetOrderRestaurant returns the owning restaurant or ErrOrderNotFound.
	GetOrderRestaurant(ctx context.Context, orderID string) (string, error)
	UpdateStatus(ctx context.Context, orderID string, status string) error
	ListByRestaurant(ctx context.Context, restaurantID string) ([]*Order, error)
}

// Publisher announces new orders to downstream consumers (kitchen screens,
// dashboards).
type Publisher interface {
	OrderCreated(ctx context.Context, o *Order) error
}

// Metrics receives pipeline outcomes.
type Metrics interface {
	ObserveMatch(matched bool)
	ObserveOrder(source string, total float64)
}

type nopPublisher struct{}

func (nopPublisher) OrderCreated(context.Context, *Order) error { return nil }

type nopMetrics struct{}

func (nopMetrics) ObserveMatch(bool)            {}
func (nopMetrics) ObserveOrder(string, float64) {}
