package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	EventSlotsCredited = "SlotsCredited"

	eventVersion = 1
)

// Envelope wraps every published event
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

// SlotsCredited is published once per applied payment
type SlotsCredited struct {
	SellerID          string `json:"seller_id"`
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	SlotsAdded        int    `json:"slots_added"`
	Amount            int64  `json:"amount"`
}

// Publisher announces credited slot purchases to downstream consumers
type Publisher interface {
	PublishSlotsCredited(ctx context.Context, evt SlotsCredited) error
}

// NewEnvelope wraps a payload. The correlation id is the Razorpay order id.
func NewEnvelope(producer, eventType, correlationID string, payload any) (Envelope, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  eventVersion,
		OccurredAt:    time.Now().UTC(),
		Producer:      producer,
		CorrelationID: correlationID,
		Payload:       b,
	}, nil
}

// NopPublisher drops every event
type NopPublisher struct{}

func (NopPublisher) PublishSlotsCredited(context.Context, SlotsCredited) error { return nil }
