package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to PaymentStatus
		want     bool
	}{
		{PaymentStatusCreated, PaymentStatusPaid, true},
		{PaymentStatusPaid, PaymentStatusCreated, false},
		{PaymentStatusPaid, PaymentStatusPaid, false},
		{PaymentStatusCreated, PaymentStatusCreated, false},
		{PaymentStatus("refunded"), PaymentStatusPaid, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestPaymentLog_IsPaid(t *testing.T) {
	assert.False(t, (&PaymentLog{Status: PaymentStatusCreated}).IsPaid())
	assert.True(t, (&PaymentLog{Status: PaymentStatusPaid}).IsPaid())
}

func TestSellerProfile_AvailableSlots(t *testing.T) {
	s := SellerProfile{TotalSlots: 12, UsedSlots: 5}
	assert.Equal(t, 7, s.AvailableSlots())

	s.UsedSlots = 12
	assert.Equal(t, 0, s.AvailableSlots())
}
