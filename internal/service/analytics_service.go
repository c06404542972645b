package service

import (
	"context"
	"time"

	"analytics-copilot/internal/analytics"
	"analytics-copilot/internal/broker"
	"analytics-copilot/internal/models"
	"analytics-copilot/internal/redisclient"
	"analytics-copilot/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AnalyticsService wraps the aggregation engine with caching, event
// publishing, metrics and tracing. Cache and publisher are optional;
// the service runs fully without either.
type AnalyticsService struct {
	engine         *analytics.Engine
	cache          *redisclient.Client
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(
	engine *analytics.Engine,
	cache *redisclient.Client,
	eventPublisher *broker.EventPublisher,
) *AnalyticsService {
	return &AnalyticsService{
		engine:         engine,
		cache:          cache,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// DashboardData holds the four canned dashboard panels
type DashboardData struct {
	RevenueTrend       *models.AnalyticsResult `json:"revenue_trend"`
	TopProducts        *models.AnalyticsResult `json:"top_products"`
	CategoryComparison *models.AnalyticsResult `json:"category_comparison"`
	CustomerSegments   *models.AnalyticsResult `json:"customer_segments"`
}

// InterpretAndRun classifies a free-text query and runs the selected
// pipeline. It never returns an error: interpretation ambiguity falls
// back to the general pipeline and aggregation failures degrade into
// the result.
func (s *AnalyticsService) InterpretAndRun(ctx context.Context, query string) *models.AnalyticsResult {
	ctx, span := util.StartSpan(ctx, "AnalyticsService.InterpretAndRun")
	defer span.End()

	start := time.Now()
	intent := analytics.Interpret(query)

	if s.cache != nil {
		cached, err := s.cache.GetResult(ctx, redisclient.QueryKey(query))
		if err != nil {
			s.logger.Warn("Cache lookup failed", zap.Error(err))
		}
		if cached != nil {
			util.CacheHitsTotal.Inc()
			s.publishQueryAnswered(intent, cached, true, time.Since(start))
			return cached
		}
		util.CacheMissesTotal.Inc()
	}

	result := s.run(ctx, intent)

	if s.cache != nil && !result.Degraded() {
		if err := s.cache.SetResult(ctx, redisclient.QueryKey(query), result); err != nil {
			s.logger.Warn("Cache store failed", zap.Error(err))
		}
	}

	s.publishQueryAnswered(intent, result, false, time.Since(start))
	return result
}

// Run executes a pipeline for an already-structured intent, bypassing
// interpretation. Used by the dashboard's canned intents.
func (s *AnalyticsService) Run(ctx context.Context, intent models.Intent) *models.AnalyticsResult {
	ctx, span := util.StartSpan(ctx, "AnalyticsService.Run")
	defer span.End()

	return s.run(ctx, intent)
}

func (s *AnalyticsService) run(_ context.Context, intent models.Intent) *models.AnalyticsResult {
	start := time.Now()
	result := s.engine.Run(intent)
	util.PipelineDuration.WithLabelValues(string(intent.AnalysisType)).Observe(time.Since(start).Seconds())
	util.QueriesTotal.WithLabelValues(string(intent.AnalysisType)).Inc()
	if result.Degraded() {
		util.QueriesDegradedTotal.Inc()
	}
	return result
}

// dashboardIntents are the four fixed panels served to the dashboard
var dashboardIntents = []struct {
	name   string
	intent models.Intent
}{
	{"revenue_trend", models.Intent{
		AnalysisType:   models.AnalysisTimeSeries,
		Scopes:         []models.Scope{models.ScopeRevenue},
		Interpretation: "Revenue trend analysis",
	}},
	{"top_products", models.Intent{
		AnalysisType:   models.AnalysisRanking,
		Scopes:         []models.Scope{models.ScopeProducts},
		Interpretation: "Top products analysis",
	}},
	{"category_comparison", models.Intent{
		AnalysisType:   models.AnalysisComparison,
		Scopes:         []models.Scope{models.ScopeProducts},
		Interpretation: "Category comparison analysis",
	}},
	{"customer_segments", models.Intent{
		AnalysisType:   models.AnalysisDistribution,
		Scopes:         []models.Scope{models.ScopeCustomers},
		Interpretation: "Customer segment distribution",
	}},
}

// Dashboard returns the four canned panels, served from the cache
// when a refresher has populated it.
func (s *AnalyticsService) Dashboard(ctx context.Context) *DashboardData {
	ctx, span := util.StartSpan(ctx, "AnalyticsService.Dashboard")
	defer span.End()

	if s.cache != nil {
		var cached DashboardData
		found, err := s.cache.GetJSON(ctx, redisclient.DashboardKey, &cached)
		if err != nil {
			s.logger.Warn("Dashboard cache lookup failed", zap.Error(err))
		}
		if found {
			util.CacheHitsTotal.Inc()
			return &cached
		}
		util.CacheMissesTotal.Inc()
	}

	return s.ComputeDashboard(ctx)
}

// ComputeDashboard runs all four canned intents and stores the result
// in the cache. The refresh worker calls this on a schedule.
func (s *AnalyticsService) ComputeDashboard(ctx context.Context) *DashboardData {
	data := &DashboardData{}
	for _, panel := range dashboardIntents {
		result := s.run(ctx, panel.intent)
		switch panel.name {
		case "revenue_trend":
			data.RevenueTrend = result
		case "top_products":
			data.TopProducts = result
		case "category_comparison":
			data.CategoryComparison = result
		case "customer_segments":
			data.CustomerSegments = result
		}
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, redisclient.DashboardKey, data); err != nil {
			s.logger.Warn("Dashboard cache store failed", zap.Error(err))
		}
	}
	return data
}

func (s *AnalyticsService) publishQueryAnswered(intent models.Intent, result *models.AnalyticsResult, cacheHit bool, took time.Duration) {
	if s.eventPublisher == nil {
		return
	}

	event := &models.QueryAnsweredEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeQueryAnswered,
			Timestamp: time.Now(),
		},
		Query:             intent.OriginalQuery,
		AnalysisType:      intent.AnalysisType,
		Scopes:            intent.Scopes,
		VisualizationType: result.VisualizationType,
		CacheHit:          cacheHit,
		DurationMs:        took.Milliseconds(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.eventPublisher.PublishQueryAnswered(ctx, event); err != nil {
		s.logger.Error("Failed to publish QueryAnswered event", zap.Error(err))
	}
}
