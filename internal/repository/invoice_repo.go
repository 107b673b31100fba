package repository

import (
	"warranty-management-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Expose DB if needed
func (r *InvoiceRepository) DB() *gorm.DB {
	return r.db
}

// Create inserts one invoice, optionally inside an outer transaction.
func (r *InvoiceRepository) Create(tx *gorm.DB, inv *models.Invoice) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(inv).Error
}

// GetByID fetch a single invoice by internal id
func (r *InvoiceRepository) GetByID(id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.First(&invoice, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// ExistsBusinessKey reports whether (invoice_id, shop_code) is already taken.
func (r *InvoiceRepository) ExistsBusinessKey(invoiceID, shopCode string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Invoice{}).
		Where("invoice_id = ? AND shop_code = ?", invoiceID, shopCode).
		Count(&count).Error
	return count > 0, err
}

// List returns invoices newest first, optionally filtered by creator.
func (r *InvoiceRepository) List(createdBy *uuid.UUID) ([]models.Invoice, error) {
	var invoices []models.Invoice
	query := r.db.Order("created_at DESC")
	if createdBy != nil {
		query = query.Where("created_by = ?", *createdBy)
	}
	err := query.Find(&invoices).Error
	return invoices, err
}

func (r *InvoiceRepository) Update(id uuid.UUID, fields map[string]interface{}) error {
	return r.db.Model(&models.Invoice{}).Where("id = ?", id).Updates(fields).Error
}

func (r *InvoiceRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Invoice{}, "id = ?", id).Error
}
