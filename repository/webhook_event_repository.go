package repository

import (
	"context"

	"github.com/Govind-619/SlotPay/models"
	"gorm.io/gorm"
)

// WebhookEventRepository journals verified webhook deliveries
type WebhookEventRepository struct {
	db *gorm.DB
}

func NewWebhookEventRepository(db *gorm.DB) *WebhookEventRepository {
	return &WebhookEventRepository{db: db}
}

func (r *WebhookEventRepository) Record(ctx context.Context, evt *models.WebhookEvent) error {
	return translate(r.db.WithContext(ctx).Create(evt).Error)
}

// ListByOrderID returns the deliveries seen for an order, oldest first
func (r *WebhookEventRepository) ListByOrderID(ctx context.Context, orderID string) ([]models.WebhookEvent, error) {
	var events []models.WebhookEvent
	if err := r.db.WithContext(ctx).
		Where("razorpay_order_id = ?", orderID).
		Order("created_at ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
