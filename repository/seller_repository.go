package repository

import (
	"context"
	"fmt"

	"github.com/Govind-619/SlotPay/models"
	"gorm.io/gorm"
)

// SellerRepository reads and credits seller slot balances
type SellerRepository struct {
	db *gorm.DB
}

// NewSellerRepository wraps a connection or an open transaction
func NewSellerRepository(db *gorm.DB) *SellerRepository {
	return &SellerRepository{db: db}
}

// Get returns a seller profile
func (r *SellerRepository) Get(ctx context.Context, sellerID string) (*models.SellerProfile, error) {
	var seller models.SellerProfile
	if err := r.db.WithContext(ctx).Where("id = ?", sellerID).First(&seller).Error; err != nil {
		return nil, translate(err)
	}
	return &seller, nil
}

// Create inserts a seller profile
func (r *SellerRepository) Create(ctx context.Context, seller *models.SellerProfile) error {
	return translate(r.db.WithContext(ctx).Create(seller).Error)
}

// IncrementSlots adds n to total_slots in a single UPDATE evaluated by the
// database, so concurrent credits never lose an update.
func (r *SellerRepository) IncrementSlots(ctx context.Context, sellerID string, n int) error {
	if n <= 0 {
		return fmt.Errorf("increment slots for %s: non-positive amount %d", sellerID, n)
	}
	res := r.db.WithContext(ctx).
		Model(&models.SellerProfile{}).
		Where("id = ?", sellerID).
		UpdateColumn("total_slots", gorm.Expr("total_slots + ?", n))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrSellerNotFound, sellerID)
	}
	return nil
}
