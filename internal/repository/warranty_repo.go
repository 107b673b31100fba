package repository

import (
	"warranty-management-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WarrantyRepository struct {
	db *gorm.DB
}

func NewWarrantyRepository(db *gorm.DB) *WarrantyRepository {
	return &WarrantyRepository{db: db}
}

func (r *WarrantyRepository) DB() *gorm.DB {
	return r.db
}

// Insert creates one warranty row, optionally inside an outer transaction.
// Duplicate-key handling is the caller's concern: the unique index on
// invoice_id makes a retried insert fail instead of double-covering.
func (r *WarrantyRepository) Insert(tx *gorm.DB, w *models.Warranty) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(w).Error
}

// GetModel fetches the bare warranty row without enrichment.
func (r *WarrantyRepository) GetModel(id uuid.UUID) (*models.Warranty, error) {
	var w models.Warranty
	if err := r.db.First(&w, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WarrantyRepository) Save(w *models.Warranty) error {
	return r.db.Save(w).Error
}

// ReconcileExpired writes the expired status back for the given rows in one
// batched update. Safe to run concurrently: both racers set the same value.
func (r *WarrantyRepository) ReconcileExpired(ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&models.Warranty{}).
		Where("id IN ?", ids).
		Update("status", models.WarrantyExpired).Error
}
