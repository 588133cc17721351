package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Govind-619/SlotPay/cache"
	"github.com/Govind-619/SlotPay/events"
	"github.com/Govind-619/SlotPay/models"
	"github.com/Govind-619/SlotPay/payments"
	"github.com/Govind-619/SlotPay/repository"
	"github.com/Govind-619/SlotPay/utils"
	"gorm.io/datatypes"
)

// Outcome is what the reconciler did with a verified delivery
type Outcome string

const (
	OutcomeApplied       Outcome = "applied"
	OutcomeIgnored       Outcome = "ignored"
	OutcomeUnknownOrder  Outcome = "unknown_order"
	OutcomeDuplicate     Outcome = "duplicate"
	OutcomeMalformed     Outcome = "malformed"
	OutcomeSellerMissing Outcome = "seller_missing"
)

const providerRazorpay = "razorpay"

// ResponseStatus is the status string acknowledged to Razorpay
func (o Outcome) ResponseStatus() string {
	switch o {
	case OutcomeApplied:
		return "success"
	case OutcomeIgnored:
		return "ignored"
	default:
		return "ok"
	}
}

// WebhookReconciler applies Razorpay webhooks to payment logs exactly once
type WebhookReconciler struct {
	secret    string
	logs      PaymentLogStore
	journal   WebhookJournal
	dedup     cache.Dedup
	publisher events.Publisher
	timeout   time.Duration
}

// NewWebhookReconciler refuses to run without a webhook secret. journal,
// dedup and publisher are optional.
func NewWebhookReconciler(secret string, logs PaymentLogStore, journal WebhookJournal, dedup cache.Dedup, publisher events.Publisher, timeout time.Duration) (*WebhookReconciler, error) {
	if secret == "" {
		return nil, errors.New("webhook secret is required")
	}
	if logs == nil {
		return nil, errors.New("payment log store is required")
	}
	if dedup == nil {
		dedup = cache.NopDedup{}
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &WebhookReconciler{
		secret:    secret,
		logs:      logs,
		journal:   journal,
		dedup:     dedup,
		publisher: publisher,
		timeout:   timeout,
	}, nil
}

// Handle verifies and applies one delivery. Only signature failures and
// transient store errors are returned as errors. Everything else is an
// outcome to acknowledge, with any processing error kept in the journal.
func (r *WebhookReconciler) Handle(ctx context.Context, body []byte, signature string) (Outcome, error) {
	if signature == "" {
		return "", ErrMissingSignature
	}
	if !payments.VerifySignature(body, signature, r.secret) {
		utils.LogError("Webhook signature mismatch (%d bytes)", len(body))
		return "", ErrInvalidSignature
	}

	evt, err := payments.ParseWebhookEvent(body)
	if err != nil {
		utils.LogError("Malformed webhook body: %v", err)
		r.record(ctx, body, &models.WebhookEvent{EventType: "unknown"}, OutcomeMalformed, err)
		return OutcomeMalformed, nil
	}

	captured, ok := evt.(payments.PaymentCaptured)
	if !ok {
		utils.LogInfo("Webhook ignored: event %s", evt.EventType())
		r.record(ctx, body, &models.WebhookEvent{EventType: evt.EventType()}, OutcomeIgnored, nil)
		return OutcomeIgnored, nil
	}

	outcome, err := r.applyCaptured(ctx, captured.Payment)
	r.record(ctx, body, &models.WebhookEvent{
		EventType:         captured.EventType(),
		RazorpayOrderID:   captured.Payment.OrderID,
		RazorpayPaymentID: captured.Payment.ID,
	}, outcome, err)
	if outcome != "" {
		return outcome, nil
	}
	return "", err
}

func (r *WebhookReconciler) applyCaptured(ctx context.Context, payment payments.PaymentEntity) (Outcome, error) {
	orderID := payment.OrderID

	seen, err := r.dedup.Seen(ctx, orderID)
	if err != nil {
		utils.LogDebug("Dedup lookup failed for order %s: %v", orderID, err)
	} else if seen {
		utils.LogInfo("Webhook duplicate (cached): order %s", orderID)
		return OutcomeDuplicate, nil
	}

	sctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	log, err := r.logs.FindByOrderID(sctx, orderID)
	if errors.Is(err, repository.ErrNotFound) {
		utils.LogInfo("Webhook for unknown order %s (payment %s)", orderID, payment.ID)
		return OutcomeUnknownOrder, nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !models.CanTransition(log.Status, models.PaymentStatusPaid) {
		utils.LogInfo("Webhook duplicate: order %s already %s", orderID, log.Status)
		return OutcomeDuplicate, nil
	}
	if payment.Amount != 0 && payment.Amount != log.Amount {
		utils.LogError("Captured amount %d differs from order %s amount %d", payment.Amount, orderID, log.Amount)
	}

	applied, err := r.logs.MarkPaid(sctx, log, payment.ID)
	if errors.Is(err, ErrSellerNotFound) {
		utils.LogError("Cannot credit order %s: seller %s has no profile", orderID, log.SellerID)
		return OutcomeSellerMissing, fmt.Errorf("credit order %s: %w", orderID, err)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !applied {
		utils.LogInfo("Webhook duplicate: order %s paid concurrently", orderID)
		return OutcomeDuplicate, nil
	}

	if err := r.dedup.Mark(ctx, orderID); err != nil {
		utils.LogDebug("Dedup mark failed for order %s: %v", orderID, err)
	}
	credited := events.SlotsCredited{
		SellerID:          log.SellerID,
		RazorpayOrderID:   orderID,
		RazorpayPaymentID: payment.ID,
		SlotsAdded:        log.SlotsAdded,
		Amount:            log.Amount,
	}
	if err := r.publisher.PublishSlotsCredited(ctx, credited); err != nil {
		utils.LogError("Failed to publish slots credited for order %s: %v", orderID, err)
	}

	utils.LogInfo("Webhook applied: order %s credited %d slots to seller %s", orderID, log.SlotsAdded, log.SellerID)
	return OutcomeApplied, nil
}

// record journals the delivery. Failures are logged and never change the
// outcome.
func (r *WebhookReconciler) record(ctx context.Context, body []byte, evt *models.WebhookEvent, outcome Outcome, procErr error) {
	if r.journal == nil {
		return
	}
	evt.Provider = providerRazorpay
	evt.Outcome = string(outcome)
	if outcome == "" {
		evt.Outcome = "error"
	}
	if json.Valid(body) {
		evt.Payload = datatypes.JSON(body)
	}
	if procErr != nil {
		evt.ProcessingError = procErr.Error()
	}

	jctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()
	if err := r.journal.Record(jctx, evt); err != nil {
		utils.LogError("Failed to journal webhook %s for order %s: %v", evt.EventType, evt.RazorpayOrderID, err)
	}
}
