package menu

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

const maxUploadBytes = 10 << 20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// POST /api/restaurants/:id/menu
// --------------------------------------------------
func (h *Handler) Upload(c *gin.Context) {
	restaurantID := c.Param("id")

	file, header, err := c.Request.FormFile("menu_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "menu_file is required"})
		return
	}
	defer file.Close()

	if err := ValidateFileExtension(header.Filename); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	body, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read menu_file"})
		return
	}
	if len(body) > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "menu_file too large"})
		return
	}

	res, err := h.service.ImportMenu(c.Request.Context(), restaurantID, header.Filename, body)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyFile), errors.Is(err, ErrNoItems):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "menu import failed"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"upload_id":  res.Upload.ID,
		"object_key": res.Upload.ObjectKey,
		"status":     res.Upload.Status,
		"items":      res.Items,
	})
}

// --------------------------------------------------
// GET /api/restaurants/:id/menu
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	items, err := h.service.ListItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch menu"})
		return
	}
	if items == nil {
		items = []Item{}
	}

	c.JSON(http.StatusOK, items)
}
