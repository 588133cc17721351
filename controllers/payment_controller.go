package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/Govind-619/SlotPay/catalog"
	"github.com/Govind-619/SlotPay/models"
	"github.com/Govind-619/SlotPay/payments"
	"github.com/Govind-619/SlotPay/services"
	"github.com/Govind-619/SlotPay/utils"
	"github.com/gin-gonic/gin"
)

// Razorpay webhook bodies are a few KB
const maxWebhookBody = 1 << 20

type OrderService interface {
	CreateOrder(ctx context.Context, packID, sellerID string) (*services.OrderReference, error)
	GetOrderStatus(ctx context.Context, orderID string) (*services.OrderStatus, error)
}

type WebhookReconciler interface {
	Handle(ctx context.Context, body []byte, signature string) (services.Outcome, error)
}

type PackLister interface {
	Packs() []models.Pack
}

// PaymentController serves the slot pack payment endpoints
type PaymentController struct {
	orders  OrderService
	webhook WebhookReconciler
	packs   PackLister
}

func NewPaymentController(orders OrderService, webhook WebhookReconciler, packs PackLister) *PaymentController {
	return &PaymentController{orders: orders, webhook: webhook, packs: packs}
}

type createOrderRequest struct {
	PackID   string `json:"pack_id" binding:"required"`
	SellerID string `json:"seller_id" binding:"required"`
}

// CreateOrder creates a Razorpay order for a slot pack
func (pc *PaymentController) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid create order request: %v", err)
		utils.BadRequest(c, "Invalid request. pack_id and seller_id are required", err.Error())
		return
	}

	ref, err := pc.orders.CreateOrder(c.Request.Context(), req.PackID, req.SellerID)
	if err != nil {
		utils.AbortWithAppError(c, toAppError(err))
		return
	}

	c.JSON(http.StatusOK, ref)
}

// Webhook receives Razorpay event deliveries. The raw body is passed on
// untouched because the signature covers its exact bytes.
func (pc *PaymentController) Webhook(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody)
	body, err := c.GetRawData()
	if err != nil {
		utils.BadRequest(c, "Unable to read request body", nil)
		return
	}

	outcome, err := pc.webhook.Handle(c.Request.Context(), body, c.GetHeader(payments.SignatureHeader))
	if err != nil {
		utils.AbortWithAppError(c, toAppError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": outcome.ResponseStatus()})
}

// GetOrder returns the payment state of an order
func (pc *PaymentController) GetOrder(c *gin.Context) {
	status, err := pc.orders.GetOrderStatus(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		utils.AbortWithAppError(c, toAppError(err))
		return
	}
	utils.Success(c, "Order retrieved successfully", status)
}

// ListPacks returns the slot packs on sale
func (pc *PaymentController) ListPacks(c *gin.Context) {
	utils.Success(c, "Packs retrieved successfully", gin.H{"packs": pc.packs.Packs()})
}

// Health reports the process is serving
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func toAppError(err error) *utils.AppError {
	switch {
	case errors.Is(err, catalog.ErrUnknownPack):
		return utils.BadRequestError("Unknown pack", err)
	case errors.Is(err, services.ErrMissingSeller):
		return utils.BadRequestError("seller_id is required", err)
	case errors.Is(err, services.ErrMissingSignature):
		return utils.BadRequestError("Missing webhook signature", err)
	case errors.Is(err, services.ErrInvalidSignature):
		return utils.BadRequestError("Invalid webhook signature", err)
	case errors.Is(err, services.ErrOrderNotFound):
		return utils.NotFoundError("Order not found", err)
	case errors.Is(err, services.ErrProcessorUnavailable):
		return utils.ServiceUnavailableError("Payment processor unavailable, please retry", err)
	case errors.Is(err, services.ErrStoreUnavailable):
		return utils.ServiceUnavailableError("Payment store unavailable, please retry", err)
	default:
		return utils.InternalError("Internal server error", err)
	}
}
