package menu

import "context"

// Repository defines all database operations for menus
type Repository interface {
	// ReplaceItems swaps the restaurant's whole menu in one transaction.
	ReplaceItems(ctx context.Context, restaurantID string, items []Item) error
	ListItems(ctx context.Context, restaurantID string) ([]Item, error)

	RecordUpload(ctx context.Context, u *Upload) error
}
