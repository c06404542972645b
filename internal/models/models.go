package models

import "time"

// Customer represents a registered shopper
type Customer struct {
	ID               string    `db:"customer_id" json:"customer_id"`
	FirstName        string    `db:"first_name" json:"first_name"`
	LastName         string    `db:"last_name" json:"last_name"`
	Email            string    `db:"email" json:"email"`
	Phone            string    `db:"phone" json:"phone"`
	City             string    `db:"city" json:"city"`
	State            string    `db:"state" json:"state"`
	Country          string    `db:"country" json:"country"`
	RegistrationDate time.Time `db:"registration_date" json:"registration_date"`
	Age              int       `db:"age" json:"age"`
	Gender           string    `db:"gender" json:"gender"`
	Segment          string    `db:"customer_segment" json:"customer_segment"`
	LifetimeValue    float64   `db:"lifetime_value" json:"lifetime_value"`
}

// FullName returns "first last", the label used by the ranking pipeline
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Product represents a product in the catalog
type Product struct {
	ID            string  `db:"product_id" json:"product_id"`
	Name          string  `db:"product_name" json:"product_name"`
	Category      string  `db:"category" json:"category"`
	Subcategory   string  `db:"subcategory" json:"subcategory"`
	Brand         string  `db:"brand" json:"brand"`
	Price         float64 `db:"price" json:"price"`
	Cost          float64 `db:"cost" json:"cost"`
	StockQuantity int     `db:"stock_quantity" json:"stock_quantity"`
	Rating        float64 `db:"rating" json:"rating"`
	ReviewsCount  int     `db:"reviews_count" json:"reviews_count"`
}

// Order represents a customer order
type Order struct {
	ID            string    `db:"order_id" json:"order_id"`
	CustomerID    string    `db:"customer_id" json:"customer_id"`
	OrderDate     time.Time `db:"order_date" json:"order_date"`
	Status        string    `db:"order_status" json:"order_status"`
	PaymentMethod string    `db:"payment_method" json:"payment_method"`
	TotalAmount   float64   `db:"total_amount" json:"total_amount"`
	Currency      string    `db:"currency" json:"currency"`
	Channel       string    `db:"channel" json:"channel"`
}

// OrderItem represents a line item in an order
type OrderItem struct {
	ID         string  `db:"order_item_id" json:"order_item_id"`
	OrderID    string  `db:"order_id" json:"order_id"`
	ProductID  string  `db:"product_id" json:"product_id"`
	Quantity   int     `db:"quantity" json:"quantity"`
	UnitPrice  float64 `db:"unit_price" json:"unit_price"`
	TotalPrice float64 `db:"total_price" json:"total_price"`
}

// Order statuses
const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

// Customer segments
const (
	SegmentPremium  = "Premium"
	SegmentStandard = "Standard"
	SegmentBasic    = "Basic"
)

// AnalysisType selects which aggregation pipeline runs
type AnalysisType string

const (
	AnalysisTimeSeries   AnalysisType = "time_series"
	AnalysisRanking      AnalysisType = "ranking"
	AnalysisComparison   AnalysisType = "comparison"
	AnalysisDistribution AnalysisType = "distribution"
	AnalysisGeneral      AnalysisType = "general"
)

// Scope narrows which sub-computation a pipeline performs
type Scope string

const (
	ScopeCustomers Scope = "customers"
	ScopeProducts  Scope = "products"
	ScopeOrders    Scope = "orders"
	ScopeRevenue   Scope = "revenue"
)

// Intent is the structured result of classifying a free-text query
type Intent struct {
	AnalysisType   AnalysisType `json:"analysis_type"`
	Scopes         []Scope      `json:"data_scope"`
	Interpretation string       `json:"interpretation"`
	OriginalQuery  string       `json:"original_query,omitempty"`
}

// HasScope reports whether the intent carries the given data scope
func (in *Intent) HasScope(s Scope) bool {
	for _, sc := range in.Scopes {
		if sc == s {
			return true
		}
	}
	return false
}

// Visualization hints
const (
	VizLine    = "line"
	VizBar     = "bar"
	VizPie     = "pie"
	VizMetrics = "metrics"
)

// AnalyticsResult is the stable response shape for every pipeline
type AnalyticsResult struct {
	Data                map[string]interface{} `json:"data"`
	Insights            []string               `json:"insights"`
	VisualizationType   string                 `json:"visualization_type"`
	QueryInterpretation string                 `json:"query_interpretation"`
}

// Degraded reports whether the result carries a contained pipeline
// failure instead of pipeline output
func (r *AnalyticsResult) Degraded() bool {
	_, ok := r.Data["error"]
	return ok
}

// DataOverview summarizes the snapshot for the overview endpoint
type DataOverview struct {
	Customers     int       `json:"customers"`
	Products      int       `json:"products"`
	Orders        int       `json:"orders"`
	OrderItems    int       `json:"order_items"`
	TotalRevenue  float64   `json:"total_revenue"`
	AvgOrderValue float64   `json:"avg_order_value"`
	DateRange     DateRange `json:"date_range"`
}

// DateRange holds the min/max order dates in the snapshot
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
