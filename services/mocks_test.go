package services_test

import (
	"context"
	"fmt"

	"github.com/Govind-619/SlotPay/events"
	"github.com/Govind-619/SlotPay/models"
	"github.com/Govind-619/SlotPay/payments"
	"github.com/stretchr/testify/mock"
)

const testWebhookSecret = "whsec_test"

type paymentLogStoreMock struct {
	mock.Mock
}

func (m *paymentLogStoreMock) Create(ctx context.Context, log *models.PaymentLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *paymentLogStoreMock) FindByOrderID(ctx context.Context, orderID string) (*models.PaymentLog, error) {
	args := m.Called(ctx, orderID)
	log, _ := args.Get(0).(*models.PaymentLog)
	return log, args.Error(1)
}

func (m *paymentLogStoreMock) MarkPaid(ctx context.Context, log *models.PaymentLog, paymentID string) (bool, error) {
	args := m.Called(ctx, log, paymentID)
	return args.Bool(0), args.Error(1)
}

type processorMock struct {
	mock.Mock
}

func (m *processorMock) CreateOrder(ctx context.Context, req payments.OrderRequest) (*models.PaymentOrder, error) {
	args := m.Called(ctx, req)
	order, _ := args.Get(0).(*models.PaymentOrder)
	return order, args.Error(1)
}

type journalMock struct {
	mock.Mock
}

func (m *journalMock) Record(ctx context.Context, evt *models.WebhookEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

type dedupMock struct {
	mock.Mock
}

func (m *dedupMock) Seen(ctx context.Context, orderID string) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *dedupMock) Mark(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type publisherMock struct {
	mock.Mock
}

func (m *publisherMock) PublishSlotsCredited(ctx context.Context, evt events.SlotsCredited) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func capturedBody(orderID, paymentID string, amount int64) []byte {
	return []byte(fmt.Sprintf(`{"entity":"event","account_id":"acc_1","event":"payment.captured","contains":["payment"],"payload":{"payment":{"entity":{"id":%q,"order_id":%q,"amount":%d,"currency":"INR","status":"captured","method":"upi"}}},"created_at":1700000000}`,
		paymentID, orderID, amount))
}

func eventBody(event string) []byte {
	return []byte(fmt.Sprintf(`{"entity":"event","event":%q,"payload":{"payment":{"entity":{"id":"pay_1","order_id":"order_1"}}}}`, event))
}

func signed(body []byte) ([]byte, string) {
	return body, payments.Sign(body, testWebhookSecret)
}
