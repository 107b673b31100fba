package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string     `gorm:"uniqueIndex" json:"email"`
	Password  string     `json:"-"`
	Role      string     `gorm:"index" json:"role"`
	OTP       *string    `json:"-"`
	OTPExpiry *time.Time `json:"-"`
	CreatedAt time.Time  `json:"created_at"`
}

type Admin struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	AdminName string    `json:"admin_name"`
	AdminCode string    `json:"admin_code"`
	CreatedAt time.Time `json:"created_at"`
}

type Manager struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	ManagerCode   string    `gorm:"uniqueIndex" json:"manager_code"`
	ManagerName   string    `json:"manager_name"`
	ContactNumber string    `json:"contact_number"`
	CreatedAt     time.Time `json:"created_at"`
}
