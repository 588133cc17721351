package routes

import (
	"github.com/Govind-619/SlotPay/controllers"
	"github.com/Govind-619/SlotPay/utils"
	"github.com/gin-gonic/gin"
)

// SetupRouter initializes and returns the Gin router with all routes.
// corsOrigins lists the browser origins allowed to call the API.
func SetupRouter(payments *controllers.PaymentController, corsOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(
		utils.RecoveryMiddleware(),
		utils.RequestIDMiddleware(),
		utils.CORSMiddleware(corsOrigins),
		utils.LoggerMiddleware(),
		utils.SecurityHeadersMiddleware(),
	)

	router.GET("/health", controllers.Health)

	initPaymentRoutes(router.Group("/payments"), payments)

	return router
}

func initPaymentRoutes(group *gin.RouterGroup, payments *controllers.PaymentController) {
	group.GET("/packs", payments.ListPacks)
	group.POST("/create-order", payments.CreateOrder)
	group.GET("/orders/:order_id", payments.GetOrder)
	group.POST("/webhook", payments.Webhook)
}
