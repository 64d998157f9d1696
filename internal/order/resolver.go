package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrRestaurantNotResolved = errors.New("restaurant could not be resolved")

// ResolveRestaurant picks the restaurant an inbound call belongs to. An
// explicit id wins and is not checked for existence; otherwise the caller
// identifier (DID) is looked up in the channel configuration.
func (s *Service) ResolveRestaurant(
	ctx context.Context,
	restaurantID string,
	callerIdentifier string,
) (string, error) {

	if id := strings.TrimSpace(restaurantID); id != "" {
		return id, nil
	}

	did := strings.TrimSpace(callerIdentifier)
	if did == "" {
		return "", ErrRestaurantNotResolved
	}

	id, err := s.repo.GetChannelRestaurant(ctx, did)
	if err != nil {
		if errors.Is(err, ErrChannelNotFound) {
			return "", ErrRestaurantNotResolved
		}
		return "", fmt.Errorf("%w: channel lookup: %v", ErrStoreRead, err)
	}
	if id == "" {
		return "", ErrRestaurantNotResolved
	}

	return id, nil
}
