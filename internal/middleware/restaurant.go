package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Owners reports whether a dashboard user owns a restaurant.
type Owners interface {
	IsOwner(ctx context.Context, restaurantID string, userID string) (bool, error)
}

// RestaurantGuard limits dashboard callers to their own restaurants. The
// restaurant named in the token is always allowed; any other one only when
// the caller is recorded as its owner. Requires AuthMiddleware to run first.
type RestaurantGuard struct {
	owners Owners
}

// NewRestaurantGuard builds a guard. With nil owners only the token's
// restaurant is reachable.
func NewRestaurantGuard(owners Owners) *RestaurantGuard {
	return &RestaurantGuard{owners: owners}
}

func (g *RestaurantGuard) Allow(c *gin.Context, restaurantID string) (bool, error) {
	if restaurantID == "" {
		return false, nil
	}
	if tokenRestaurant := c.GetString("restaurantID"); tokenRestaurant != "" && tokenRestaurant == restaurantID {
		return true, nil
	}
	if g == nil || g.owners == nil {
		return false, nil
	}

	userID := c.GetString("userID")
	if userID == "" {
		return false, nil
	}
	return g.owners.IsOwner(c.Request.Context(), restaurantID, userID)
}

// Param guards routes that name the restaurant in a path parameter.
func (g *RestaurantGuard) Param(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := g.Allow(c, c.Param(name))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "restaurant not accessible"})
			return
		}
		c.Next()
	}
}
