package repository

import (
	"context"
	"time"

	"github.com/Govind-619/SlotPay/models"
	"gorm.io/gorm"
)

// PaymentLogRepository persists payment logs
type PaymentLogRepository struct {
	db *gorm.DB
}

func NewPaymentLogRepository(db *gorm.DB) *PaymentLogRepository {
	return &PaymentLogRepository{db: db}
}

// Create inserts a log. A second row for the same Razorpay order id fails
// with ErrDuplicate.
func (r *PaymentLogRepository) Create(ctx context.Context, log *models.PaymentLog) error {
	if log.Status == "" {
		log.Status = models.PaymentStatusCreated
	}
	return translate(r.db.WithContext(ctx).Create(log).Error)
}

// FindByOrderID looks a log up by Razorpay order id
func (r *PaymentLogRepository) FindByOrderID(ctx context.Context, orderID string) (*models.PaymentLog, error) {
	var log models.PaymentLog
	if err := r.db.WithContext(ctx).Where("razorpay_order_id = ?", orderID).First(&log).Error; err != nil {
		return nil, translate(err)
	}
	return &log, nil
}

// MarkPaid moves a log from created to paid and credits its slots to the
// seller inside one transaction. The status update is conditional on the row
// still being created; when another delivery won that race nothing is
// written and applied is false.
func (r *PaymentLogRepository) MarkPaid(ctx context.Context, log *models.PaymentLog, paymentID string) (applied bool, err error) {
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.PaymentLog{}).
			Where("id = ? AND status = ?", log.ID, models.PaymentStatusCreated).
			Updates(map[string]interface{}{
				"status":              models.PaymentStatusPaid,
				"razorpay_payment_id": paymentID,
				"paid_at":             time.Now().UTC(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		if err := NewSellerRepository(tx).IncrementSlots(ctx, log.SellerID, log.SlotsAdded); err != nil {
			return err
		}
		applied = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return applied, nil
}

// ListStale returns created logs older than before, oldest first
func (r *PaymentLogRepository) ListStale(ctx context.Context, before time.Time, limit int) ([]models.PaymentLog, error) {
	var logs []models.PaymentLog
	q := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", models.PaymentStatusCreated, before).
		Order("created_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// ListSince returns every log created at or after since, oldest first
func (r *PaymentLogRepository) ListSince(ctx context.Context, since time.Time) ([]models.PaymentLog, error) {
	var logs []models.PaymentLog
	if err := r.db.WithContext(ctx).
		Where("created_at >= ?", since).
		Order("created_at ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
