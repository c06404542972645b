package api

import (
	"net/http"
	"strconv"
	"time"

	"analytics-copilot/internal/service"
	"analytics-copilot/internal/store"
	"analytics-copilot/internal/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	analyticsService *service.AnalyticsService
	lakehouse        *store.Lakehouse
}

// NewHandler creates a new HTTP handler
func NewHandler(analyticsService *service.AnalyticsService, lakehouse *store.Lakehouse) *Handler {
	return &Handler{
		analyticsService: analyticsService,
		lakehouse:        lakehouse,
	}
}

// QueryRequest is the body of an analytics query
type QueryRequest struct {
	Query   string                 `json:"query" binding:"required"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/", h.root)
	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/analytics/query", h.analyticsQuery)
		v1.GET("/analytics/dashboard", h.dashboard)

		v1.GET("/data/overview", h.dataOverview)
		v1.GET("/data/customers", h.getCustomers)
		v1.GET("/data/products", h.getProducts)
		v1.GET("/data/orders", h.getOrders)
		v1.GET("/data/order-items", h.getOrderItems)
	}
}

func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "E-Commerce Analytics Copilot API",
	})
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck reports ready once a snapshot is published
func (h *Handler) readinessCheck(c *gin.Context) {
	if h.lakehouse.Snapshot() == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "loading"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// analyticsQuery handles a free-text analytics query
func (h *Handler) analyticsQuery(c *gin.Context) {
	var req QueryRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	result := h.analyticsService.InterpretAndRun(c.Request.Context(), req.Query)
	c.JSON(http.StatusOK, result)
}

// dashboard returns the four canned panels
func (h *Handler) dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.analyticsService.Dashboard(c.Request.Context()))
}

// dataOverview returns snapshot row counts and revenue summary
func (h *Handler) dataOverview(c *gin.Context) {
	c.JSON(http.StatusOK, h.lakehouse.Snapshot().Overview())
}

func (h *Handler) getCustomers(c *gin.Context) {
	limit, offset := pageParams(c)
	c.JSON(http.StatusOK, h.lakehouse.Snapshot().CustomersPage(limit, offset))
}

func (h *Handler) getProducts(c *gin.Context) {
	limit, offset := pageParams(c)
	c.JSON(http.StatusOK, h.lakehouse.Snapshot().ProductsPage(limit, offset))
}

func (h *Handler) getOrders(c *gin.Context) {
	limit, offset := pageParams(c)
	c.JSON(http.StatusOK, h.lakehouse.Snapshot().OrdersPage(limit, offset))
}

func (h *Handler) getOrderItems(c *gin.Context) {
	limit, offset := pageParams(c)
	c.JSON(http.StatusOK, h.lakehouse.Snapshot().OrderItemsPage(limit, offset))
}

func pageParams(c *gin.Context) (limit, offset int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(store.DefaultPageLimit)))
	if err != nil || limit <= 0 {
		limit = store.DefaultPageLimit
	}
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
