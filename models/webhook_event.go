package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// WebhookEvent journals a signature-verified webhook delivery and what the
// reconciler did with it.
type WebhookEvent struct {
	ID                string         `gorm:"type:uuid;primaryKey" json:"id"`
	Provider          string         `gorm:"size:20;not null;index" json:"provider"`
	EventType         string         `gorm:"size:100;not null;index" json:"event_type"`
	RazorpayOrderID   string         `gorm:"size:64;index" json:"razorpay_order_id"`
	RazorpayPaymentID string         `gorm:"size:64" json:"razorpay_payment_id"`
	Outcome           string         `gorm:"size:20;not null" json:"outcome"`
	Payload           datatypes.JSON `json:"payload"`
	ProcessingError   string         `gorm:"type:text" json:"processing_error,omitempty"`
	CreatedAt         time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

func (WebhookEvent) TableName() string { return "webhook_events" }

func (w *WebhookEvent) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}
