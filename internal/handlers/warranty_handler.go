package handlers

import (
	"errors"
	"net/http"

	"warranty-management-backend/internal/middleware"
	"warranty-management-backend/internal/services/warranty"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WarrantyHandler struct {
	engine *warranty.Engine
}

func NewWarrantyHandler(e *warranty.Engine) *WarrantyHandler {
	return &WarrantyHandler{engine: e}
}

// List returns every warranty visible to the caller with effective status
// already applied.
func (h *WarrantyHandler) List(c *gin.Context) {
	entries, err := h.engine.List(middleware.GetScope(c))
	if err != nil {
		respondWarrantyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(entries), "warranties": entries})
}

func (h *WarrantyHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid warranty ID"})
		return
	}
	detail, err := h.engine.Get(id, middleware.GetScope(c))
	if err != nil {
		respondWarrantyError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Notifications lists warranties expiring within 30 days for the caller's
// scope, nearest expiry first.
func (h *WarrantyHandler) Notifications(c *gin.Context) {
	entries, err := h.engine.Expiring(middleware.GetScope(c))
	if err != nil {
		respondWarrantyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(entries), "notifications": entries})
}

// AdminNotifications adds the per-shop grouping and summary counters.
func (h *WarrantyHandler) AdminNotifications(c *gin.Context) {
	summary, err := h.engine.ExpiringAdmin()
	if err != nil {
		respondWarrantyError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *WarrantyHandler) Renew(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid warranty ID"})
		return
	}
	var payload struct {
		Years int    `json:"years"`
		Notes string `json:"notes"`
	}
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	w, err := h.engine.Renew(id, payload.Years, payload.Notes)
	if err != nil {
		respondWarrantyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "warranty renewed", "warranty": w})
}

func respondWarrantyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, warranty.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, warranty.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Warranty not found"})
	case errors.Is(err, warranty.ErrShopCodeRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Shop code is required"})
	case errors.Is(err, warranty.ErrInvalidDuration):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid warranty duration"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch warranties", "details": err.Error()})
	}
}
