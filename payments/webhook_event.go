package payments

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// EventPaymentCaptured is the only event type that credits slots
const EventPaymentCaptured = "payment.captured"

// ErrMalformedEvent marks a verified body that does not decode into a webhook event
var ErrMalformedEvent = errors.New("malformed webhook event")

var validate = validator.New()

// WebhookEvent is a decoded Razorpay webhook. Concrete types are
// PaymentCaptured and UnhandledEvent.
type WebhookEvent interface {
	EventType() string
}

// PaymentEntity is the payment object carried by payment.* events
type PaymentEntity struct {
	ID       string `json:"id" validate:"required"`
	OrderID  string `json:"order_id" validate:"required"`
	Amount   int64  `json:"amount" validate:"gte=0"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	Method   string `json:"method"`
}

// PaymentCaptured is a payment.captured event
type PaymentCaptured struct {
	AccountID string
	CreatedAt int64
	Payment   PaymentEntity
}

func (PaymentCaptured) EventType() string { return EventPaymentCaptured }

// UnhandledEvent is any event the reconciler acknowledges without acting on it
type UnhandledEvent struct {
	Type string
}

func (e UnhandledEvent) EventType() string { return e.Type }

type envelope struct {
	Entity    string          `json:"entity"`
	AccountID string          `json:"account_id"`
	Event     string          `json:"event" validate:"required"`
	Contains  []string        `json:"contains"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt int64           `json:"created_at"`
}

type paymentPayload struct {
	Payment *struct {
		Entity *PaymentEntity `json:"entity"`
	} `json:"payment"`
}

// ParseWebhookEvent decodes a signature-verified webhook body. Event types
// other than payment.captured are returned as UnhandledEvent without their
// payload being inspected.
func ParseWebhookEvent(body []byte) (WebhookEvent, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if err := validate.Struct(env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	if env.Event != EventPaymentCaptured {
		return UnhandledEvent{Type: env.Event}, nil
	}

	if len(env.Payload) == 0 {
		return nil, fmt.Errorf("%w: missing payload", ErrMalformedEvent)
	}
	var p paymentPayload
	if err := json.Unmarshal(env.Payload, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if p.Payment == nil || p.Payment.Entity == nil {
		return nil, fmt.Errorf("%w: missing payment entity", ErrMalformedEvent)
	}
	if err := validate.Struct(p.Payment.Entity); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	return PaymentCaptured{
		AccountID: env.AccountID,
		CreatedAt: env.CreatedAt,
		Payment:   *p.Payment.Entity,
	}, nil
}
