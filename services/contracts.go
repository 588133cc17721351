package services

import (
	"context"

	"github.com/Govind-619/SlotPay/models"
)

// PackResolver maps a pack id to its price and slot count
type PackResolver interface {
	Resolve(packID string) (models.Pack, error)
}

// PaymentLogStore is the persistence the order service and reconciler need.
// MarkPaid must flip the status and credit the seller in one transaction.
type PaymentLogStore interface {
	Create(ctx context.Context, log *models.PaymentLog) error
	FindByOrderID(ctx context.Context, orderID string) (*models.PaymentLog, error)
	MarkPaid(ctx context.Context, log *models.PaymentLog, paymentID string) (bool, error)
}

// WebhookJournal records verified deliveries
type WebhookJournal interface {
	Record(ctx context.Context, evt *models.WebhookEvent) error
}
