package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentStatus is the lifecycle state of a PaymentLog
type PaymentStatus string

const (
	PaymentStatusCreated PaymentStatus = "created"
	PaymentStatusPaid    PaymentStatus = "paid"
)

var validNext = map[PaymentStatus]map[PaymentStatus]bool{
	PaymentStatusCreated: {PaymentStatusPaid: true},
	PaymentStatusPaid:    {},
}

// CanTransition reports whether a log may move from one status to another.
func CanTransition(from, to PaymentStatus) bool {
	return validNext[from][to]
}

// PaymentLog records a slot pack purchase from order creation until capture
type PaymentLog struct {
	ID                string        `gorm:"type:uuid;primaryKey" json:"id"`
	SellerID          string        `gorm:"size:64;not null;index" json:"seller_id"`
	RazorpayOrderID   string        `gorm:"size:64;not null;uniqueIndex" json:"razorpay_order_id"`
	RazorpayPaymentID *string       `gorm:"size:64" json:"razorpay_payment_id,omitempty"`
	Amount            int64         `gorm:"not null" json:"amount"`
	SlotsAdded        int           `gorm:"not null" json:"slots_added"`
	Status            PaymentStatus `gorm:"size:20;not null;index" json:"status"`
	PaidAt            *time.Time    `json:"paid_at,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

func (PaymentLog) TableName() string { return "payment_logs" }

// BeforeCreate assigns the row id
func (p *PaymentLog) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// IsPaid reports whether the log reached its terminal state
func (p *PaymentLog) IsPaid() bool {
	return p.Status == PaymentStatusPaid
}
