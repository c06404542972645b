package dataset

import (
	"fmt"
	"math"
	"time"

	"analytics-copilot/internal/models"
	"analytics-copilot/internal/store"

	"github.com/brianvoe/gofakeit/v6"
)

// Categories is the fixed product category set
var Categories = []string{
	"Electronics", "Clothing", "Home & Garden", "Sports", "Books", "Beauty", "Toys",
}

var (
	orderStatuses = []string{
		models.OrderStatusPending, models.OrderStatusProcessing,
		models.OrderStatusShipped, models.OrderStatusDelivered,
		models.OrderStatusCancelled,
	}
	segments       = []string{models.SegmentPremium, models.SegmentStandard, models.SegmentBasic}
	genders        = []string{"M", "F", "Other"}
	paymentMethods = []string{"Credit Card", "Debit Card", "PayPal", "Bank Transfer"}
	channels       = []string{"Website", "Mobile App", "Phone", "Store"}
)

// Params controls snapshot generation. The same params always produce
// the same snapshot.
type Params struct {
	Seed      int64
	Customers int
	Products  int
	Orders    int
	// Now anchors the generated date ranges; zero means the current
	// day (truncated so repeated runs within a day agree).
	Now time.Time
}

// Generate builds a synthetic snapshot: seeded customers, products,
// orders over the trailing year, and 1-5 line items per order.
func Generate(p Params) (*store.Snapshot, error) {
	if p.Customers <= 0 || p.Products <= 0 || p.Orders < 0 {
		return nil, fmt.Errorf("invalid dataset params: customers=%d products=%d orders=%d",
			p.Customers, p.Products, p.Orders)
	}

	now := p.Now
	if now.IsZero() {
		now = time.Now().UTC().Truncate(24 * time.Hour)
	}
	f := gofakeit.New(p.Seed)

	customers := make([]models.Customer, 0, p.Customers)
	for i := 0; i < p.Customers; i++ {
		customers = append(customers, models.Customer{
			ID:               fmt.Sprintf("CUST_%06d", i+1),
			FirstName:        f.FirstName(),
			LastName:         f.LastName(),
			Email:            f.Email(),
			Phone:            f.Phone(),
			City:             f.City(),
			State:            f.State(),
			Country:          f.Country(),
			RegistrationDate: f.DateRange(now.AddDate(-2, 0, 0), now),
			Age:              f.Number(18, 80),
			Gender:           f.RandomString(genders),
			Segment:          f.RandomString(segments),
			LifetimeValue:    round2(f.Float64Range(100, 10000)),
		})
	}

	products := make([]models.Product, 0, p.Products)
	for i := 0; i < p.Products; i++ {
		category := f.RandomString(Categories)
		products = append(products, models.Product{
			ID:            fmt.Sprintf("PROD_%06d", i+1),
			Name:          f.ProductName(),
			Category:      category,
			Subcategory:   fmt.Sprintf("%s Subcategory %d", category, f.Number(1, 5)),
			Brand:         f.Company(),
			Price:         round2(f.Float64Range(10, 1000)),
			Cost:          round2(f.Float64Range(5, 500)),
			StockQuantity: f.Number(0, 1000),
			Rating:        math.Round(f.Float64Range(1, 5)*10) / 10,
			ReviewsCount:  f.Number(0, 1000),
		})
	}

	orders := make([]models.Order, 0, p.Orders)
	for i := 0; i < p.Orders; i++ {
		orders = append(orders, models.Order{
			ID:            fmt.Sprintf("ORD_%08d", i+1),
			CustomerID:    fmt.Sprintf("CUST_%06d", f.Number(1, p.Customers)),
			OrderDate:     f.DateRange(now.AddDate(-1, 0, 0), now),
			Status:        f.RandomString(orderStatuses),
			PaymentMethod: f.RandomString(paymentMethods),
			TotalAmount:   round2(f.Float64Range(50, 2000)),
			Currency:      "USD",
			Channel:       f.RandomString(channels),
		})
	}

	items := make([]models.OrderItem, 0, p.Orders*3)
	for i := range orders {
		numItems := f.Number(1, 5)
		for j := 0; j < numItems; j++ {
			product := &products[f.Number(0, p.Products-1)]
			quantity := f.Number(1, 5)
			unitPrice := round2(product.Price * f.Float64Range(0.8, 1.2))
			items = append(items, models.OrderItem{
				ID:         fmt.Sprintf("OI_%08d", len(items)+1),
				OrderID:    orders[i].ID,
				ProductID:  product.ID,
				Quantity:   quantity,
				UnitPrice:  unitPrice,
				TotalPrice: round2(unitPrice * float64(quantity)),
			})
		}
	}

	return store.NewSnapshot(customers, products, orders, items)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
