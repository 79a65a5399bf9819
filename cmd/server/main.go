package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"retail-backoffice/config"
	"retail-backoffice/internal/api"
	"retail-backoffice/internal/broker"
	"retail-backoffice/internal/cache"
	"retail-backoffice/internal/service"
	"retail-backoffice/internal/store"
	"retail-backoffice/internal/util"
	"retail-backoffice/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting retail back-office service")

	tp, err := util.InitTracer("retail-backoffice", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	db, err := store.NewStore(cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatalf("Failed to connect to mongodb: %v", err)
	}
	defer db.Close()
	log.Println("MongoDB connected")

	promotionCache, err := cache.NewPromotionCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Business.PromotionCacheTTL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer promotionCache.Close()
	log.Println("Redis connected")

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicRetail)
	defer producer.Close()
	log.Println("Kafka producer initialized")

	eventPublisher := broker.NewEventPublisher(producer)
	metrics := util.PrometheusMetrics{}

	loyaltyService := service.NewLoyaltyCardService(db, db, eventPublisher, metrics)
	userService := service.NewUserService(db, loyaltyService, metrics)
	productService := service.NewProductService(db, eventPublisher, cfg.Business.LowStockThreshold)
	promotionService := service.NewPromotionService(db, promotionCache, eventPublisher, metrics)
	transactionService := service.NewTransactionService(
		db, db, productService, loyaltyService, promotionService, eventPublisher, metrics)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	sweeper := worker.NewSweeper(promotionService, loyaltyService, cfg.Business.SweepInterval, cfg.Business.CardExpiryWarnDays)
	go sweeper.Start(workerCtx)

	alertConsumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicRetail, cfg.Kafka.ConsumerGroup)
	alertWorker := worker.NewAlertWorker(alertConsumer)
	go func() {
		if err := alertWorker.Start(workerCtx); err != nil {
			log.Printf("Alert worker error: %v", err)
		}
	}()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	handler := api.NewHandler(userService, productService, promotionService, loyaltyService, transactionService)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	workerCancel()
	alertWorker.Stop()

	log.Println("Server exited")
}
