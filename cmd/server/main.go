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

	"analytics-copilot/config"
	"analytics-copilot/internal/analytics"
	"analytics-copilot/internal/api"
	"analytics-copilot/internal/broker"
	"analytics-copilot/internal/dataset"
	"analytics-copilot/internal/redisclient"
	"analytics-copilot/internal/service"
	"analytics-copilot/internal/store"
	"analytics-copilot/internal/util"
	"analytics-copilot/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting analytics copilot")

	tp, err := util.InitTracer("analytics-copilot", cfg.Observ.JaegerEndpoint)
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

	snapshot, err := buildSnapshot(cfg)
	if err != nil {
		log.Fatalf("Failed to build snapshot: %v", err)
	}
	lakehouse := store.NewLakehouse(snapshot)
	publishSnapshotMetrics(snapshot)
	log.Printf("Snapshot published: %d customers, %d products, %d orders, %d order items",
		len(snapshot.Customers), len(snapshot.Products), len(snapshot.Orders), len(snapshot.OrderItems))

	var cache *redisclient.Client
	cache, err = redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.CacheTTL)
	if err != nil {
		log.Printf("Redis unavailable, serving without result cache: %v", err)
		cache = nil
	} else {
		defer cache.Close()
		log.Println("Redis connected")
	}

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicQuery)
	defer producer.Close()
	eventPublisher := broker.NewEventPublisher(producer)
	log.Println("Kafka producer initialized")

	engine := analytics.NewEngine(lakehouse)
	analyticsService := service.NewAnalyticsService(engine, cache, eventPublisher)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	auditConsumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicQuery, cfg.Kafka.ConsumerGroup)
	auditWorker := worker.NewAuditWorker(auditConsumer)
	go func() {
		if err := auditWorker.Start(workerCtx); err != nil {
			log.Printf("Audit worker error: %v", err)
		}
	}()

	refreshWorker := worker.NewRefreshWorker(analyticsService, eventPublisher, cfg.Data.DashboardRefresh)
	go func() {
		if err := refreshWorker.Start(workerCtx); err != nil {
			log.Printf("Refresh worker error: %v", err)
		}
	}()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	handler := api.NewHandler(analyticsService, lakehouse)
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
	auditWorker.Stop()

	log.Println("Server exited")
}

// buildSnapshot loads the four tables from Postgres when DATABASE_URL
// is configured, otherwise generates a synthetic dataset.
func buildSnapshot(cfg *config.Config) (*store.Snapshot, error) {
	if cfg.Database.URL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		log.Println("Loading snapshot from Postgres")
		return store.LoadSnapshot(ctx, cfg.Database.URL)
	}

	log.Printf("Generating synthetic snapshot: seed=%d", cfg.Data.Seed)
	return dataset.Generate(dataset.Params{
		Seed:      cfg.Data.Seed,
		Customers: cfg.Data.Customers,
		Products:  cfg.Data.Products,
		Orders:    cfg.Data.Orders,
	})
}

func publishSnapshotMetrics(s *store.Snapshot) {
	util.SnapshotRows.WithLabelValues("customers").Set(float64(len(s.Customers)))
	util.SnapshotRows.WithLabelValues("products").Set(float64(len(s.Products)))
	util.SnapshotRows.WithLabelValues("orders").Set(float64(len(s.Orders)))
	util.SnapshotRows.WithLabelValues("order_items").Set(float64(len(s.OrderItems)))
}
