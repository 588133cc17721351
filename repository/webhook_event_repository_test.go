package repository_test

import (
	"context"
	"testing"

	"github.com/Govind-619/SlotPay/models"
	"github.com/Govind-619/SlotPay/repository"
	"github.com/Govind-619/SlotPay/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestWebhookEventRepository_Record(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repository.NewWebhookEventRepository(db)

	first := &models.WebhookEvent{
		Provider:        "razorpay",
		EventType:       "payment.captured",
		RazorpayOrderID: "order_1",
		Outcome:         "applied",
		Payload:         datatypes.JSON(`{"event":"payment.captured"}`),
	}
	require.NoError(t, repo.Record(ctx, first))
	assert.NotEmpty(t, first.ID)
	require.NoError(t, repo.Record(ctx, &models.WebhookEvent{
		Provider: "razorpay", EventType: "payment.captured", RazorpayOrderID: "order_1", Outcome: "duplicate",
	}))
	require.NoError(t, repo.Record(ctx, &models.WebhookEvent{
		Provider: "razorpay", EventType: "payment.captured", RazorpayOrderID: "order_2", Outcome: "unknown_order",
	}))

	events, err := repo.ListByOrderID(ctx, "order_1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	for _, evt := range events {
		if evt.Outcome == "applied" {
			assert.JSONEq(t, `{"event":"payment.captured"}`, string(evt.Payload))
		} else {
			assert.Equal(t, "duplicate", evt.Outcome)
		}
	}
}
