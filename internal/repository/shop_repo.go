package repository

import (
	"warranty-management-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShopRepository struct {
	db *gorm.DB
}

func NewShopRepository(db *gorm.DB) *ShopRepository {
	return &ShopRepository{db: db}
}

func (r *ShopRepository) Create(tx *gorm.DB, shop *models.Shop) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(shop).Error
}

func (r *ShopRepository) GetByUserID(userID uuid.UUID) (*models.Shop, error) {
	var shop models.Shop
	if err := r.db.First(&shop, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// ExistingCodes returns which of the given shop codes are actually known.
func (r *ShopRepository) ExistingCodes(codes []string) (map[string]bool, error) {
	var found []string
	err := r.db.Model(&models.Shop{}).
		Where("shop_code IN ?", codes).
		Pluck("shop_code", &found).Error
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(found))
	for _, c := range found {
		known[c] = true
	}
	return known, nil
}

// ShopListing is a shop profile joined with its owner's login email.
type ShopListing struct {
	ShopCode      string `json:"shop_code"`
	ShopName      string `json:"shop_name"`
	ShopAddress   string `json:"shop_address"`
	ContactNumber string `json:"contact_number"`
	Email         string `json:"email"`
}

func (r *ShopRepository) List() ([]ShopListing, error) {
	var rows []ShopListing
	err := r.db.Table("shops s").
		Select("s.shop_code, s.shop_name, s.shop_address, s.contact_number, u.email").
		Joins("JOIN users u ON u.id = s.user_id").
		Order("s.created_at").
		Scan(&rows).Error
	return rows, err
}

// NextShopCode produces the next SP### code from the highest assigned one.
// Run it on the provisioning transaction so the read and the insert of the
// new code see the same state.
func (r *ShopRepository) NextShopCode(tx *gorm.DB) (string, error) {
	if tx == nil {
		tx = r.db
	}
	return nextCode(tx, "shops", "shop_code", "SP")
}

// NextManagerCode produces the next MN### code from the highest assigned one.
func (r *ShopRepository) NextManagerCode(tx *gorm.DB) (string, error) {
	if tx == nil {
		tx = r.db
	}
	return nextCode(tx, "managers", "manager_code", "MN")
}

func nextCode(db *gorm.DB, table, column, prefix string) (string, error) {
	var max *int
	err := db.Table(table).
		Select("MAX(CAST(SUBSTRING(" + column + " FROM 3) AS INTEGER))").
		Scan(&max).Error
	if err != nil {
		return "", err
	}
	next := 1
	if max != nil {
		next = *max + 1
	}
	return models.FormatCode(prefix, next), nil
}
