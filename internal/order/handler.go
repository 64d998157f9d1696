package order

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Access decides whether the dashboard caller may act on a restaurant.
type Access interface {
	Allow(c *gin.Context, restaurantID string) (bool, error)
}

type Handler struct {
	service *Service
	access  Access
}

// NewHandler builds the order handlers. access guards the dashboard
// endpoints; with nil access only the token's own restaurant is reachable.
func NewHandler(service *Service, access Access) *Handler {
	if access == nil {
		access = tokenAccess{}
	}
	return &Handler{service: service, access: access}
}

type tokenAccess struct{}

func (tokenAccess) Allow(c *gin.Context, restaurantID string) (bool, error) {
	return restaurantID != "" && restaurantID == c.GetString("restaurantID"), nil
}

// --------------------------------------------------
// POST /api/vapi/orders (voice agent webhook)
// --------------------------------------------------
func (h *Handler) VoiceWebhook(c *gin.Context) {
	var req VoiceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	o, err := h.service.CreateVoiceOrder(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orderId": o.ID})
}

// --------------------------------------------------
// POST /api/orders (dashboard entry, no matching)
// --------------------------------------------------
func (h *Handler) CreateManual(c *gin.Context) {
	var req ManualOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.RestaurantID == "" {
		req.RestaurantID = c.GetString("restaurantID")
	}
	if req.RestaurantID != "" && !h.allow(c, req.RestaurantID) {
		return
	}

	o, err := h.service.CreateManualOrder(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"orderId":      o.ID,
		"total_amount": o.TotalAmount,
		"status":       o.Status,
	})
}

// --------------------------------------------------
// GET /api/restaurants/:id/orders
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	orders, err := h.service.ListOrders(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if orders == nil {
		orders = []*Order{}
	}

	c.JSON(http.StatusOK, orders)
}

// --------------------------------------------------
// PATCH /api/orders/:id/status
// --------------------------------------------------
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	orderID := c.Param("id")
	restaurantID, err := h.service.OrderRestaurant(c.Request.Context(), orderID)
	if err != nil {
		writeError(c, err)
		return
	}
	if !h.allow(c, restaurantID) {
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), orderID, req.Status); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orderId": orderID,
		"status":  req.Status,
	})
}

// allow writes the refusal itself and reports whether to continue.
func (h *Handler) allow(c *gin.Context, restaurantID string) bool {
	ok, err := h.access.Allow(c, restaurantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return false
	}
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "restaurant not accessible"})
		return false
	}
	return true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrRestaurantNotResolved):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidMenuItem):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrStoreWrite):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save order"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
