package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Govind-619/SlotPay/models"
	"github.com/Govind-619/SlotPay/payments"
	"github.com/Govind-619/SlotPay/repository"
	"github.com/Govind-619/SlotPay/utils"
)

// OrderReference is what a client needs to open Razorpay checkout
type OrderReference struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"key_id"`
}

// OrderStatus is the read view of a payment log
type OrderStatus struct {
	OrderID    string     `json:"order_id"`
	SellerID   string     `json:"seller_id"`
	Amount     int64      `json:"amount"`
	SlotsAdded int        `json:"slots_added"`
	Status     string     `json:"status"`
	PaidAt     *time.Time `json:"paid_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type OrderServiceConfig struct {
	KeyID            string
	Currency         string
	StoreTimeout     time.Duration
	ProcessorTimeout time.Duration
}

// OrderService creates Razorpay orders for slot packs
type OrderService struct {
	packs     PackResolver
	processor payments.Processor
	logs      PaymentLogStore
	cfg       OrderServiceConfig
}

func NewOrderService(packs PackResolver, processor payments.Processor, logs PaymentLogStore, cfg OrderServiceConfig) *OrderService {
	if cfg.Currency == "" {
		cfg.Currency = "INR"
	}
	if cfg.StoreTimeout <= 0 {
		cfg.StoreTimeout = 5 * time.Second
	}
	if cfg.ProcessorTimeout <= 0 {
		cfg.ProcessorTimeout = 10 * time.Second
	}
	return &OrderService{packs: packs, processor: processor, logs: logs, cfg: cfg}
}

// CreateOrder creates a Razorpay order for the pack and records it as a
// created payment log for the seller.
func (s *OrderService) CreateOrder(ctx context.Context, packID, sellerID string) (*OrderReference, error) {
	sellerID = strings.TrimSpace(sellerID)
	if sellerID == "" {
		return nil, ErrMissingSeller
	}
	pack, err := s.packs.Resolve(packID)
	if err != nil {
		return nil, err
	}

	pctx, cancel := context.WithTimeout(ctx, s.cfg.ProcessorTimeout)
	order, err := s.processor.CreateOrder(pctx, payments.OrderRequest{
		Amount:   pack.Amount,
		Currency: s.cfg.Currency,
		Receipt:  payments.ReceiptFor(sellerID),
	})
	cancel()
	if err != nil {
		utils.LogError("Failed to create Razorpay order for seller %s pack %s: %v", sellerID, pack.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrProcessorUnavailable, err)
	}

	log := &models.PaymentLog{
		SellerID:        sellerID,
		RazorpayOrderID: order.OrderID,
		Amount:          pack.Amount,
		SlotsAdded:      pack.Slots,
		Status:          models.PaymentStatusCreated,
	}
	sctx, cancel := context.WithTimeout(ctx, s.cfg.StoreTimeout)
	defer cancel()
	if err := s.logs.Create(sctx, log); err != nil {
		// The Razorpay order exists without a log; reconciliation finds it by id.
		utils.LogError("Orphaned Razorpay order %s for seller %s: failed to persist payment log: %v", order.OrderID, sellerID, err)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	utils.LogInfo("Order created: %s seller=%s pack=%s amount=%d slots=%d", order.OrderID, sellerID, pack.ID, pack.Amount, pack.Slots)

	return &OrderReference{
		OrderID:  order.OrderID,
		Amount:   pack.Amount,
		Currency: s.cfg.Currency,
		KeyID:    s.cfg.KeyID,
	}, nil
}

// GetOrderStatus returns the current state of an order
func (s *OrderService) GetOrderStatus(ctx context.Context, orderID string) (*OrderStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.StoreTimeout)
	defer cancel()

	log, err := s.logs.FindByOrderID(ctx, orderID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return &OrderStatus{
		OrderID:    log.RazorpayOrderID,
		SellerID:   log.SellerID,
		Amount:     log.Amount,
		SlotsAdded: log.SlotsAdded,
		Status:     string(log.Status),
		PaidAt:     log.PaidAt,
		CreatedAt:  log.CreatedAt,
	}, nil
}
