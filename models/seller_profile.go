package models

import (
	"time"
)

// SellerProfile holds the slot balance of a seller. Only the slot columns are
// touched by this service.
type SellerProfile struct {
	ID         string    `gorm:"primaryKey;size:64" json:"id"`
	StoreName  string    `gorm:"not null;default:''" json:"store_name"`
	TotalSlots int       `gorm:"not null;default:0" json:"total_slots"`
	UsedSlots  int       `gorm:"not null;default:0" json:"used_slots"`
	CreatedAt  time.Time `json:"created_at"`
}

func (SellerProfile) TableName() string { return "seller_profile" }

// AvailableSlots returns the slots not yet consumed by published products
func (s *SellerProfile) AvailableSlots() int { return s.TotalSlots - s.UsedSlots }
