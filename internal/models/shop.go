package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FormatCode renders role codes like SP001 / MN042.
func FormatCode(prefix string, n int) string {
	return fmt.Sprintf("%s%03d", prefix, n)
}

type Shop struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	ShopCode      string    `gorm:"uniqueIndex" json:"shop_code"`
	ShopName      string    `json:"shop_name"`
	ShopAddress   string    `json:"shop_address"`
	ContactNumber string    `json:"contact_number"`
	CreatedAt     time.Time `json:"created_at"`
}
