package testutil

import (
	"fmt"
	"testing"

	"github.com/Govind-619/SlotPay/config"
	"github.com/Govind-619/SlotPay/models"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory SQLite database with the service schema.
// A single connection serialises transactions the way row locks would.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := config.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// CreateSeller inserts a seller profile with the given slot balance
func CreateSeller(t *testing.T, db *gorm.DB, sellerID string, totalSlots int) *models.SellerProfile {
	t.Helper()

	seller := &models.SellerProfile{ID: sellerID, StoreName: "Store " + sellerID, TotalSlots: totalSlots}
	if err := db.Create(seller).Error; err != nil {
		t.Fatalf("Failed to create test seller: %v", err)
	}
	return seller
}

// CreatePaymentLog inserts a created log for a seller
func CreatePaymentLog(t *testing.T, db *gorm.DB, sellerID, orderID string, amount int64, slots int) *models.PaymentLog {
	t.Helper()

	log := &models.PaymentLog{
		SellerID:        sellerID,
		RazorpayOrderID: orderID,
		Amount:          amount,
		SlotsAdded:      slots,
		Status:          models.PaymentStatusCreated,
	}
	if err := db.Create(log).Error; err != nil {
		t.Fatalf("Failed to create test payment log: %v", err)
	}
	return log
}

// TotalSlots reads a seller's current balance
func TotalSlots(t *testing.T, db *gorm.DB, sellerID string) int {
	t.Helper()

	var seller models.SellerProfile
	if err := db.Where("id = ?", sellerID).First(&seller).Error; err != nil {
		t.Fatalf("Failed to load seller %s: %v", sellerID, err)
	}
	return seller.TotalSlots
}
