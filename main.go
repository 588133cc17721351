package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Govind-619/SlotPay/cache"
	"github.com/Govind-619/SlotPay/catalog"
	"github.com/Govind-619/SlotPay/config"
	"github.com/Govind-619/SlotPay/controllers"
	"github.com/Govind-619/SlotPay/events"
	"github.com/Govind-619/SlotPay/jobs"
	"github.com/Govind-619/SlotPay/payments"
	"github.com/Govind-619/SlotPay/repository"
	"github.com/Govind-619/SlotPay/routes"
	"github.com/Govind-619/SlotPay/services"
	"github.com/Govind-619/SlotPay/utils"
	"github.com/gin-gonic/gin"
)

const producerName = "slotpay-api"

func main() {
	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Error loading config:", err)
	}

	// Initialize logger
	if err := utils.InitLogger(cfg.LogDir); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	if err := cfg.Validate(); err != nil {
		utils.LogError("Invalid config: %v", err)
		log.Fatal("Invalid config:", err)
	}
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	packs, err := catalog.LoadCatalog(cfg.PacksFile)
	if err != nil {
		utils.LogError("Failed to load pack catalog: %v", err)
		log.Fatal("Failed to load pack catalog:", err)
	}

	// Initialize database
	db, err := config.OpenDatabase(cfg)
	if err != nil {
		utils.LogError("Failed to connect to database: %v", err)
		log.Fatal("Failed to connect to database:", err)
	}
	defer func() {
		if err := config.CloseDatabase(db); err != nil {
			utils.LogError("Failed to close database: %v", err)
		}
	}()

	// Redis and Kafka are optional
	var dedup cache.Dedup = cache.NopDedup{}
	if cfg.RedisAddr != "" {
		rdb := cache.NewRedisClient(cfg.RedisAddr)
		defer rdb.Close()
		dedup = cache.NewRedisDedup(rdb)
		utils.LogInfo("Webhook dedup cache enabled at %s", cfg.RedisAddr)
	}

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		prod := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, producerName, 1024)
		prod.Start()
		defer prod.Close()
		publisher = prod
		utils.LogInfo("Publishing credited slots to kafka topic %s", cfg.KafkaTopic)
	}

	logs := repository.NewPaymentLogRepository(db)
	journal := repository.NewWebhookEventRepository(db)
	processor := payments.NewRazorpayProcessor(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.ProcessorTimeout)

	orders := services.NewOrderService(packs, processor, logs, services.OrderServiceConfig{
		KeyID:            cfg.RazorpayKeyID,
		Currency:         cfg.Currency,
		StoreTimeout:     cfg.StoreTimeout,
		ProcessorTimeout: cfg.ProcessorTimeout,
	})
	reconciler, err := services.NewWebhookReconciler(cfg.RazorpayWebhookSecret, logs, journal, dedup, publisher, cfg.StoreTimeout)
	if err != nil {
		utils.LogError("Failed to create webhook reconciler: %v", err)
		log.Fatal("Failed to create webhook reconciler:", err)
	}

	scheduler, err := jobs.Schedule(cfg.StaleOrderSchedule, jobs.NewStaleOrderReporter(logs, cfg.StaleOrderAge, 0))
	if err != nil {
		utils.LogError("Failed to schedule stale order job: %v", err)
		log.Fatal("Failed to schedule stale order job:", err)
	}
	scheduler.Start()

	// Set up router
	router := routes.SetupRouter(controllers.NewPaymentController(orders, reconciler, packs), cfg.CORSOrigins)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.LogInfo("Server starting on port %s", cfg.Port)
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.LogError("Error starting server: %v", err)
			log.Fatal("Error starting server:", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	utils.LogInfo("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.LogError("Server shutdown failed: %v", err)
	}
	<-scheduler.Stop().Done()
}
