package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Govind-619/SlotPay/models"
	razorpay "github.com/razorpay/razorpay-go"
)

// Razorpay rejects receipts longer than this
const maxReceiptLength = 40

// OrderRequest describes an order to create with the processor
type OrderRequest struct {
	Amount   int64
	Currency string
	Receipt  string
}

// Processor creates payment orders with an external payment processor
type Processor interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*models.PaymentOrder, error)
}

// RazorpayProcessor implements Processor with the Razorpay SDK
type RazorpayProcessor struct {
	client *razorpay.Client
}

// NewRazorpayProcessor builds a processor. timeout bounds every SDK call.
func NewRazorpayProcessor(keyID, keySecret string, timeout time.Duration) *RazorpayProcessor {
	client := razorpay.NewClient(keyID, keySecret)
	if secs := int16(timeout / time.Second); secs > 0 {
		client.SetTimeout(secs)
	}
	return &RazorpayProcessor{client: client}
}

type createResult struct {
	order map[string]interface{}
	err   error
}

// CreateOrder creates an auto-captured Razorpay order. The SDK is not context
// aware, so the call is abandoned when ctx ends.
func (p *RazorpayProcessor) CreateOrder(ctx context.Context, req OrderRequest) (*models.PaymentOrder, error) {
	data := map[string]interface{}{
		"amount":          req.Amount,
		"currency":        req.Currency,
		"receipt":         req.Receipt,
		"payment_capture": 1,
	}

	done := make(chan createResult, 1)
	go func() {
		order, err := p.client.Order.Create(data, nil)
		done <- createResult{order: order, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("razorpay create order: %w", ctx.Err())
	case res := <-done:
		if res.err != nil {
			return nil, fmt.Errorf("razorpay create order: %w", res.err)
		}
		return decodeOrder(res.order, req)
	}
}

func decodeOrder(raw map[string]interface{}, req OrderRequest) (*models.PaymentOrder, error) {
	id, _ := raw["id"].(string)
	if id == "" {
		return nil, errors.New("razorpay create order: response without order id")
	}

	order := &models.PaymentOrder{
		OrderID:  id,
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
	}
	switch amount := raw["amount"].(type) {
	case float64:
		order.Amount = int64(amount)
	case int64:
		order.Amount = amount
	case int:
		order.Amount = int64(amount)
	}
	if currency, ok := raw["currency"].(string); ok && currency != "" {
		order.Currency = currency
	}
	if receipt, ok := raw["receipt"].(string); ok && receipt != "" {
		order.Receipt = receipt
	}
	return order, nil
}

// ReceiptFor derives the order receipt from the seller id
func ReceiptFor(sellerID string) string {
	receipt := "seller_" + sellerID
	if len(receipt) > maxReceiptLength {
		receipt = receipt[:maxReceiptLength]
	}
	return receipt
}
