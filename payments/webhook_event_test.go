package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWebhookEvent(t *testing.T) {
	var tests = []struct {
		name        string
		body        string
		expected    WebhookEvent
		expectedErr error
	}{
		{
			name: "payment captured",
			body: `{"entity":"event","account_id":"acc_1","event":"payment.captured","contains":["payment"],
				"payload":{"payment":{"entity":{"id":"pay_1","entity":"payment","amount":49900,"currency":"INR","status":"captured","order_id":"order_1","method":"upi"}}},
				"created_at":1700000000}`,
			expected: PaymentCaptured{
				AccountID: "acc_1",
				CreatedAt: 1700000000,
				Payment: PaymentEntity{
					ID: "pay_1", OrderID: "order_1", Amount: 49900, Currency: "INR", Status: "captured", Method: "upi",
				},
			},
		},
		{
			name:     "other event type",
			body:     `{"event":"payment.failed","payload":{"payment":{"entity":{"id":"pay_1"}}}}`,
			expected: UnhandledEvent{Type: "payment.failed"},
		},
		{
			name:     "other event type without payload",
			body:     `{"event":"order.paid"}`,
			expected: UnhandledEvent{Type: "order.paid"},
		},
		{name: "not json", body: `event=payment.captured`, expectedErr: ErrMalformedEvent},
		{name: "json null", body: `null`, expectedErr: ErrMalformedEvent},
		{name: "missing event", body: `{"payload":{}}`, expectedErr: ErrMalformedEvent},
		{name: "captured without payload", body: `{"event":"payment.captured"}`, expectedErr: ErrMalformedEvent},
		{name: "captured without entity", body: `{"event":"payment.captured","payload":{"payment":{}}}`, expectedErr: ErrMalformedEvent},
		{
			name:        "captured without order id",
			body:        `{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1"}}}}`,
			expectedErr: ErrMalformedEvent,
		},
		{
			name:        "captured without payment id",
			body:        `{"event":"payment.captured","payload":{"payment":{"entity":{"order_id":"order_1"}}}}`,
			expectedErr: ErrMalformedEvent,
		},
		{
			name:        "payment id with wrong type",
			body:        `{"event":"payment.captured","payload":{"payment":{"entity":{"id":12,"order_id":"order_1"}}}}`,
			expectedErr: ErrMalformedEvent,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			evt, err := ParseWebhookEvent([]byte(tt.body))
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, evt)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, evt)
		})
	}
}

func TestWebhookEvent_EventType(t *testing.T) {
	assert.Equal(t, EventPaymentCaptured, PaymentCaptured{}.EventType())
	assert.Equal(t, "refund.created", UnhandledEvent{Type: "refund.created"}.EventType())
}
