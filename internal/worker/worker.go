package worker

import (
	"context"
	"time"

	"analytics-copilot/internal/broker"
	"analytics-copilot/internal/models"
	"analytics-copilot/internal/service"
	"analytics-copilot/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuditWorker consumes query events and records usage: which analysis
// types run, how often the cache answers, how long pipelines take.
type AuditWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	logger       *zap.Logger
}

// NewAuditWorker creates a new audit worker
func NewAuditWorker(consumer *broker.Consumer) *AuditWorker {
	logger := util.GetLogger()
	eventHandler := broker.NewEventHandler()

	eventHandler.OnQueryAnswered(func(ctx context.Context, event *models.QueryAnsweredEvent) error {
		util.EventsConsumedTotal.WithLabelValues(event.EventType).Inc()
		logger.Info("Query audited",
			zap.String("query", event.Query),
			zap.String("analysis_type", string(event.AnalysisType)),
			zap.String("visualization", event.VisualizationType),
			zap.Bool("cache_hit", event.CacheHit),
			zap.Int64("duration_ms", event.DurationMs))
		return nil
	})

	eventHandler.OnDashboardRefreshed(func(ctx context.Context, event *models.DashboardRefreshedEvent) error {
		util.EventsConsumedTotal.WithLabelValues(event.EventType).Inc()
		return nil
	})

	return &AuditWorker{
		consumer:     consumer,
		eventHandler: eventHandler,
		logger:       logger,
	}
}

// Start starts the worker
func (w *AuditWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting audit worker")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *AuditWorker) Stop() error {
	w.logger.Info("Stopping audit worker")
	return w.consumer.Close()
}

// RefreshWorker recomputes the canned dashboard panels on a schedule
// so dashboard reads stay cache-warm.
type RefreshWorker struct {
	analyticsService *service.AnalyticsService
	eventPublisher   *broker.EventPublisher
	interval         time.Duration
	logger           *zap.Logger
}

// NewRefreshWorker creates a new dashboard refresh worker. The event
// publisher may be nil.
func NewRefreshWorker(analyticsService *service.AnalyticsService, eventPublisher *broker.EventPublisher, interval time.Duration) *RefreshWorker {
	return &RefreshWorker{
		analyticsService: analyticsService,
		eventPublisher:   eventPublisher,
		interval:         interval,
		logger:           util.GetLogger(),
	}
}

// Start refreshes immediately, then on every tick until the context
// is cancelled.
func (w *RefreshWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting dashboard refresh worker", zap.Duration("interval", w.interval))

	w.refresh(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Dashboard refresh worker stopping")
			return ctx.Err()
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *RefreshWorker) refresh(ctx context.Context) {
	start := time.Now()
	w.analyticsService.ComputeDashboard(ctx)
	util.DashboardRefreshTotal.Inc()
	took := time.Since(start)
	w.logger.Debug("Dashboard refreshed", zap.Duration("took", took))

	if w.eventPublisher == nil {
		return
	}
	event := &models.DashboardRefreshedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeDashboardRefreshed,
			Timestamp: time.Now(),
		},
		Panels:     []string{"revenue_trend", "top_products", "category_comparison", "customer_segments"},
		DurationMs: took.Milliseconds(),
	}
	if err := w.eventPublisher.PublishDashboardRefreshed(ctx, event); err != nil {
		w.logger.Error("Failed to publish DashboardRefreshed event", zap.Error(err))
	}
}
