package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment modes accepted on an invoice.
const (
	PaymentCash         = "CASH"
	PaymentUPI          = "UPI"
	PaymentCard         = "CARD"
	PaymentBankTransfer = "BANK_TRANSFER"
)

// Invoice is the system of record a warranty is derived from. The business
// key (invoice_id, shop_code) is unique per shop, not globally.
type Invoice struct {
	ID                       uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceID                string          `gorm:"uniqueIndex:idx_invoice_shop" json:"invoice_id"`
	ShopCode                 string          `gorm:"uniqueIndex:idx_invoice_shop;index" json:"shop_code"`
	Date                     time.Time       `gorm:"type:date" json:"date"`
	CustomerName             string          `json:"customer_name"`
	CustomerContactNumber    string          `json:"customer_contact_number"`
	CustomerAltContactNumber string          `json:"customer_alt_contact_number"`
	DeviceModelName          string          `gorm:"index" json:"device_model_name"`
	IMEINumber               string          `gorm:"column:imei_number;type:char(15)" json:"imei_number"`
	DevicePrice              decimal.Decimal `gorm:"type:decimal(10,2)" json:"device_price"`
	PaymentMode              string          `json:"payment_mode"`
	WarrantyYears            int             `gorm:"default:2" json:"warranty_years"`
	CreatedBy                uuid.UUID       `gorm:"type:uuid;index" json:"created_by"`
	CreatedAt                time.Time       `json:"created_at"`
}
