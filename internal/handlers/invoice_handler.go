package handlers

import (
	"errors"
	"net/http"

	"warranty-management-backend/internal/middleware"
	"warranty-management-backend/internal/services/invoicing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InvoiceHandler struct {
	service *invoicing.Service
}

func NewInvoiceHandler(s *invoicing.Service) *InvoiceHandler {
	return &InvoiceHandler{service: s}
}

func (h *InvoiceHandler) Create(c *gin.Context) {
	var payload invoicing.InvoiceInput
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	inv, err := h.service.Create(middleware.GetScope(c), payload)
	if err != nil {
		respondInvoiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": inv.ID, "invoice_id": inv.InvoiceID})
}

// BulkImport accepts pre-parsed rows; spreadsheet handling lives with the
// client. Each row succeeds or fails on its own.
func (h *InvoiceHandler) BulkImport(c *gin.Context) {
	var payload struct {
		Invoices []invoicing.InvoiceInput `json:"invoices"`
	}
	if err := c.BindJSON(&payload); err != nil || payload.Invoices == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}
	result, err := h.service.BulkImport(middleware.GetScope(c), payload.Invoices)
	if err != nil {
		respondInvoiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *InvoiceHandler) List(c *gin.Context) {
	mineOnly := c.Query("mine") == "1"
	invoices, err := h.service.List(middleware.GetScope(c), mineOnly)
	if err != nil {
		respondInvoiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoices)
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice ID"})
		return
	}
	inv, err := h.service.Get(id, middleware.GetScope(c))
	if err != nil {
		respondInvoiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (h *InvoiceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice ID"})
		return
	}
	var payload invoicing.InvoiceInput
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := h.service.Update(id, middleware.GetScope(c), payload); err != nil {
		respondInvoiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invoice updated"})
}

func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice ID"})
		return
	}
	if err := h.service.Delete(id, middleware.GetScope(c)); err != nil {
		respondInvoiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted"})
}

func respondInvoiceError(c *gin.Context, err error) {
	var validationErr *invoicing.ValidationError
	var shopErr *invoicing.InvalidShopError
	switch {
	case errors.Is(err, invoicing.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, invoicing.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
	case errors.Is(err, invoicing.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "Invoice already exists for this shop"})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": validationErr})
	case errors.As(err, &shopErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shop", "invalid_shop_codes": shopErr.Codes})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
