package restaurant

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// POST /api/restaurants
// --------------------------------------------------
func (h *Handler) CreateRestaurant(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	r, err := h.service.CreateRestaurant(c.Request.Context(), req.Name, c.GetString("userID"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, r)
}

// --------------------------------------------------
// POST /api/restaurants/:id/channels
// --------------------------------------------------
func (h *Handler) AttachChannel(c *gin.Context) {
	var req struct {
		DID string `json:"did"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ch, err := h.service.AttachChannel(c.Request.Context(), c.Param("id"), req.DID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ch)
}

// --------------------------------------------------
// GET /api/restaurants/:id/channels
// --------------------------------------------------
func (h *Handler) ListChannels(c *gin.Context) {
	channels, err := h.service.ListChannels(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if channels == nil {
		channels = []Channel{}
	}

	c.JSON(http.StatusOK, channels)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and did must not be empty"})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrChannelTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
