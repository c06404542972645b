package service

import (
	"context"
	"testing"
	"time"

	"analytics-copilot/internal/analytics"
	"analytics-copilot/internal/dataset"
	"analytics-copilot/internal/models"
	"analytics-copilot/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService(t *testing.T) *AnalyticsService {
	t.Helper()

	snap, err := dataset.Generate(dataset.Params{
		Seed:      11,
		Customers: 40,
		Products:  20,
		Orders:    80,
		Now:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	engine := analytics.NewEngine(store.NewLakehouse(snap))
	// no cache, no broker: the service must run fully without either
	return NewAnalyticsService(engine, nil, nil)
}

func TestInterpretAndRunWithoutCache(t *testing.T) {
	s := testService(t)

	result := s.InterpretAndRun(context.Background(), "top products by revenue")
	require.NotNil(t, result)
	require.False(t, result.Degraded())
	assert.Equal(t, models.VizBar, result.VisualizationType)
	assert.Equal(t, "Analyzing products, revenue with ranking approach", result.QueryInterpretation)
}

func TestRunBypassesInterpretation(t *testing.T) {
	s := testService(t)

	result := s.Run(context.Background(), models.Intent{
		AnalysisType:   models.AnalysisTimeSeries,
		Scopes:         []models.Scope{models.ScopeRevenue},
		Interpretation: "Revenue trend analysis",
	})
	require.False(t, result.Degraded())
	assert.Equal(t, models.VizLine, result.VisualizationType)
	assert.Equal(t, "Revenue trend analysis", result.QueryInterpretation)
}

func TestDashboardPanels(t *testing.T) {
	s := testService(t)

	data := s.Dashboard(context.Background())
	require.NotNil(t, data)

	require.NotNil(t, data.RevenueTrend)
	assert.Equal(t, models.VizLine, data.RevenueTrend.VisualizationType)

	require.NotNil(t, data.TopProducts)
	assert.Equal(t, models.VizBar, data.TopProducts.VisualizationType)

	require.NotNil(t, data.CategoryComparison)
	assert.Equal(t, models.VizBar, data.CategoryComparison.VisualizationType)

	require.NotNil(t, data.CustomerSegments)
	assert.Equal(t, models.VizPie, data.CustomerSegments.VisualizationType)
}

func TestDashboardMatchesDirectIntents(t *testing.T) {
	s := testService(t)
	ctx := context.Background()

	data := s.ComputeDashboard(ctx)
	direct := s.Run(ctx, models.Intent{
		AnalysisType:   models.AnalysisRanking,
		Scopes:         []models.Scope{models.ScopeProducts},
		Interpretation: "Top products analysis",
	})

	assert.Equal(t, direct, data.TopProducts)
}
