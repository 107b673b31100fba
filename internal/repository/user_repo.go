package repository

import (
	"time"

	"warranty-management-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Create(tx *gorm.DB, user *models.User) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(user).Error
}

func (r *UserRepository) SetOTP(email string, otp *string, expiry *time.Time) error {
	return r.db.Model(&models.User{}).Where("email = ?", email).
		Updates(map[string]interface{}{"otp": otp, "otp_expiry": expiry}).Error
}

func (r *UserRepository) UpdatePassword(email, hash string) error {
	return r.db.Model(&models.User{}).Where("email = ?", email).
		Update("password", hash).Error
}

func (r *UserRepository) GetManagerByUserID(userID uuid.UUID) (*models.Manager, error) {
	var m models.Manager
	if err := r.db.First(&m, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// ListManagers returns manager profiles joined with their login email.
func (r *UserRepository) ListManagers() ([]ManagerListing, error) {
	var rows []ManagerListing
	err := r.db.Table("managers m").
		Select("m.manager_code, m.manager_name, m.contact_number, u.email").
		Joins("JOIN users u ON u.id = m.user_id").
		Order("m.created_at").
		Scan(&rows).Error
	return rows, err
}

type ManagerListing struct {
	ManagerCode   string `json:"manager_code"`
	ManagerName   string `json:"manager_name"`
	ContactNumber string `json:"contact_number"`
	Email         string `json:"email"`
}
