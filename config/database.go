package config

import (
	"fmt"
	"time"

	"github.com/Govind-619/SlotPay/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OpenDatabase connects to Postgres and migrates the schema
func OpenDatabase(cfg *Config) (*gorm.DB, error) {
	db, err := Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		_ = CloseDatabase(db)
		return nil, err
	}
	return db, nil
}

// Connect opens the connection pool without touching the schema
func Connect(cfg *Config) (*gorm.DB, error) {
	return connect(postgres.Open(cfg.DSN()))
}

func connect(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(16)
	sqlDB.SetMaxIdleConns(4)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

// Migrate creates or updates the tables owned by the service
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.SellerProfile{},
		&models.PaymentLog{},
		&models.WebhookEvent{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %v", err)
	}
	return nil
}

// CloseDatabase releases the connection pool
func CloseDatabase(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
