package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"analytics-copilot/internal/analytics"
	"analytics-copilot/internal/dataset"
	"analytics-copilot/internal/service"
	"analytics-copilot/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	snap, err := dataset.Generate(dataset.Params{
		Seed:      3,
		Customers: 25,
		Products:  12,
		Orders:    40,
		Now:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	lakehouse := store.NewLakehouse(snap)
	engine := analytics.NewEngine(lakehouse)
	analyticsService := service.NewAnalyticsService(engine, nil, nil)

	router := gin.New()
	NewHandler(analyticsService, lakehouse).SetupRoutes(router)
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAnalyticsQueryEndpoint(t *testing.T) {
	router := testRouter(t)

	w := doRequest(router, http.MethodPost, "/api/v1/analytics/query", `{"query":"order status breakdown"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data                map[string]interface{} `json:"data"`
		Insights            []string               `json:"insights"`
		VisualizationType   string                 `json:"visualization_type"`
		QueryInterpretation string                 `json:"query_interpretation"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "pie", resp.VisualizationType)
	assert.NotEmpty(t, resp.Insights)
	assert.Contains(t, resp.Data, "labels")
	assert.Contains(t, resp.Data, "values")
}

func TestAnalyticsQueryRejectsMissingBody(t *testing.T) {
	router := testRouter(t)

	w := doRequest(router, http.MethodPost, "/api/v1/analytics/query", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDashboardEndpoint(t *testing.T) {
	router := testRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/analytics/dashboard", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	for _, panel := range []string{"revenue_trend", "top_products", "category_comparison", "customer_segments"} {
		assert.Contains(t, resp, panel)
	}
}

func TestDataPagination(t *testing.T) {
	router := testRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/data/customers?limit=10&offset=20", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data   []json.RawMessage `json:"data"`
		Total  int               `json:"total"`
		Limit  int               `json:"limit"`
		Offset int               `json:"offset"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 5)
	assert.Equal(t, 25, resp.Total)
	assert.Equal(t, 10, resp.Limit)
	assert.Equal(t, 20, resp.Offset)
}

func TestDataDefaultLimit(t *testing.T) {
	router := testRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/data/orders", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data  []json.RawMessage `json:"data"`
		Limit int               `json:"limit"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, store.DefaultPageLimit, resp.Limit)
	assert.Len(t, resp.Data, 40)
}

func TestDataOverviewEndpoint(t *testing.T) {
	router := testRouter(t)

	w := doRequest(router, http.MethodGet, "/api/v1/data/overview", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Customers    int     `json:"customers"`
		Orders       int     `json:"orders"`
		TotalRevenue float64 `json:"total_revenue"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 25, resp.Customers)
	assert.Equal(t, 40, resp.Orders)
	assert.Positive(t, resp.TotalRevenue)
}

func TestHealthEndpoints(t *testing.T) {
	router := testRouter(t)

	assert.Equal(t, http.StatusOK, doRequest(router, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, doRequest(router, http.MethodGet, "/ready", "").Code)
	assert.Equal(t, http.StatusOK, doRequest(router, http.MethodGet, "/", "").Code)
}
