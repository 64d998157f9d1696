package restaurant

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// --------------------------------------------------
// Create restaurant
// --------------------------------------------------
func (s *Service) CreateRestaurant(ctx context.Context, name string, ownerID string) (*Restaurant, error) {
	name = strings.TrimSpace(name)
	if name == "" || ownerID == "" {
		return nil, ErrInvalidInput
	}

	r := &Restaurant{
		ID:      uuid.New().String(),
		Name:    name,
		OwnerID: ownerID,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) GetRestaurant(ctx context.Context, id string) (*Restaurant, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

// IsOwner reports whether userID created the restaurant. Malformed ids are
// never owned.
func (s *Service) IsOwner(ctx context.Context, restaurantID string, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	if _, err := uuid.Parse(restaurantID); err != nil {
		return false, nil
	}
	return s.repo.IsOwner(ctx, restaurantID, userID)
}

// --------------------------------------------------
// Route a phone number to the restaurant
// --------------------------------------------------
func (s *Service) AttachChannel(ctx context.Context, restaurantID, did string) (*Channel, error) {
	// stored exactly as the voice agent will send it, minus padding
	did = strings.TrimSpace(did)
	if did == "" {
		return nil, ErrInvalidInput
	}

	if _, err := s.GetRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}

	ch := &Channel{DID: did, RestaurantID: restaurantID}
	if err := s.repo.AttachChannel(ctx, ch); err != nil {
		return nil, err
	}
	return ch, nil
}

func (s *Service) ListChannels(ctx context.Context, restaurantID string) ([]Channel, error) {
	return s.repo.ListChannels(ctx, restaurantID)
}
