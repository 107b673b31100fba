package models

import (
	"time"

	"github.com/google/uuid"
)

// Stored warranty statuses. Creation writes "Active"; the lazy self-heal on
// listing paths writes lowercase "expired". "Pending" survives in old rows
// but is never produced.
const (
	WarrantyActive  = "Active"
	WarrantyExpired = "expired"
	WarrantyPending = "Pending"
)

// Warranty is the time-bounded coverage entry derived from one invoice.
// The unique index on InvoiceID enforces the one-to-one: a retried creation
// hits a duplicate key instead of double-inserting.
type Warranty struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceID    uuid.UUID  `gorm:"type:uuid;uniqueIndex" json:"invoice_id"`
	StartDate    time.Time  `gorm:"type:date" json:"start_date"`
	EndDate      time.Time  `gorm:"type:date;index" json:"end_date"`
	Status       string     `gorm:"index" json:"status"`
	RenewedOn    *time.Time `json:"renewed_on"`
	RenewalNotes *string    `json:"renewal_notes"`
	CreatedAt    time.Time  `json:"created_at"`

	Invoice *Invoice `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"-"`
}
