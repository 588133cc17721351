package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/Govind-619/SlotPay/models"
	"github.com/Govind-619/SlotPay/utils"
	"github.com/robfig/cron/v3"
)

const staleOrderBatch = 500

// StaleOrderLister finds payment logs still waiting for a webhook
type StaleOrderLister interface {
	ListStale(ctx context.Context, before time.Time, limit int) ([]models.PaymentLog, error)
}

// StaleOrderReporter logs orders that stayed created for longer than age so
// they can be reconciled against Razorpay by hand.
type StaleOrderReporter struct {
	logs    StaleOrderLister
	age     time.Duration
	timeout time.Duration
	now     func() time.Time
}

func NewStaleOrderReporter(logs StaleOrderLister, age, timeout time.Duration) *StaleOrderReporter {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &StaleOrderReporter{logs: logs, age: age, timeout: timeout, now: time.Now}
}

// Run reports one batch of stale orders and returns them
func (r *StaleOrderReporter) Run(ctx context.Context) ([]models.PaymentLog, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cutoff := r.now().Add(-r.age)
	stale, err := r.logs.ListStale(ctx, cutoff, staleOrderBatch)
	if err != nil {
		utils.LogError("Stale order check failed: %v", err)
		return nil, err
	}
	if len(stale) == 0 {
		utils.LogDebug("No stale orders older than %s", cutoff.Format(time.RFC3339))
		return nil, nil
	}

	for _, log := range stale {
		utils.LogInfo("Stale order: %s seller=%s amount=%d slots=%d created_at=%s",
			log.RazorpayOrderID, log.SellerID, log.Amount, log.SlotsAdded, log.CreatedAt.Format(time.RFC3339))
	}
	utils.LogInfo("Stale order check found %d orders created before %s", len(stale), cutoff.Format(time.RFC3339))
	return stale, nil
}

// Schedule registers the reporter on a new cron scheduler. The caller starts
// and stops it.
func Schedule(spec string, r *StaleOrderReporter) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		_, _ = r.Run(context.Background())
	}); err != nil {
		return nil, fmt.Errorf("invalid stale order schedule %q: %w", spec, err)
	}
	return c, nil
}
