package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ImportBatch records the outcome of one bulk invoice upload so partial
// success stays auditable after the response is gone.
type ImportBatch struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UploadedBy       uuid.UUID      `gorm:"type:uuid;index" json:"uploaded_by"`
	TotalRows        int            `json:"total_rows"`
	SuccessCount     int            `json:"success_count"`
	FailedCount      int            `json:"failed_count"`
	DuplicateCount   int            `json:"duplicate_count"`
	ValidationErrors datatypes.JSON `json:"validation_errors"`
	CreatedAt        time.Time      `json:"created_at"`
}
