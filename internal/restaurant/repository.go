package restaurant

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("restaurant not found")
	ErrChannelTaken = errors.New("phone number already routed to another restaurant")
)

type Repository interface {
	Create(ctx context.Context, r *Restaurant) error
	Get(ctx context.Context, id string) (*Restaurant, error)
	IsOwner(ctx context.Context, restaurantID string, userID string) (bool, error)

	// AttachChannel maps did to the restaurant. Re-attaching to the same
	// restaurant is a no-op; a did owned by another one is ErrChannelTaken.
	AttachChannel(ctx context.Context, ch *Channel) error
	ListChannels(ctx context.Context, restaurantID string) ([]Channel, error)
}
