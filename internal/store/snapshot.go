package store

import (
	"fmt"
	"time"

	"analytics-copilot/internal/models"
)

// Snapshot is the immutable in-memory state of the four tables.
// It must never be mutated after NewSnapshot returns; concurrent
// readers share it without locking.
type Snapshot struct {
	Customers  []models.Customer
	Products   []models.Product
	Orders     []models.Order
	OrderItems []models.OrderItem

	customerByID map[string]*models.Customer
	productByID  map[string]*models.Product
	itemsByOrder map[string][]*models.OrderItem
}

// NewSnapshot builds a snapshot with join indexes. Referential
// integrity is validated up front so pipelines can join without
// existence checks.
func NewSnapshot(
	customers []models.Customer,
	products []models.Product,
	orders []models.Order,
	items []models.OrderItem,
) (*Snapshot, error) {
	s := &Snapshot{
		Customers:    customers,
		Products:     products,
		Orders:       orders,
		OrderItems:   items,
		customerByID: make(map[string]*models.Customer, len(customers)),
		productByID:  make(map[string]*models.Product, len(products)),
		itemsByOrder: make(map[string][]*models.OrderItem, len(orders)),
	}

	for i := range customers {
		s.customerByID[customers[i].ID] = &customers[i]
	}
	for i := range products {
		s.productByID[products[i].ID] = &products[i]
	}
	for i := range orders {
		if _, ok := s.customerByID[orders[i].CustomerID]; !ok {
			return nil, fmt.Errorf("order %s references unknown customer %s",
				orders[i].ID, orders[i].CustomerID)
		}
	}
	orderIDs := make(map[string]struct{}, len(orders))
	for i := range orders {
		orderIDs[orders[i].ID] = struct{}{}
	}
	for i := range items {
		it := &items[i]
		if _, ok := orderIDs[it.OrderID]; !ok {
			return nil, fmt.Errorf("order item %s references unknown order %s", it.ID, it.OrderID)
		}
		if _, ok := s.productByID[it.ProductID]; !ok {
			return nil, fmt.Errorf("order item %s references unknown product %s", it.ID, it.ProductID)
		}
		s.itemsByOrder[it.OrderID] = append(s.itemsByOrder[it.OrderID], it)
	}

	return s, nil
}

// CustomerByID returns the customer with the given ID, or nil
func (s *Snapshot) CustomerByID(id string) *models.Customer {
	return s.customerByID[id]
}

// ProductByID returns the product with the given ID, or nil
func (s *Snapshot) ProductByID(id string) *models.Product {
	return s.productByID[id]
}

// ItemsByOrder returns the line items belonging to an order
func (s *Snapshot) ItemsByOrder(orderID string) []*models.OrderItem {
	return s.itemsByOrder[orderID]
}

// Page holds one page of rows plus the total row count
type Page[T any] struct {
	Data   []T `json:"data"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

func paginate[T any](rows []T, limit, offset int) Page[T] {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	end := offset + limit
	if offset > len(rows) {
		offset = len(rows)
	}
	if end > len(rows) {
		end = len(rows)
	}
	return Page[T]{Data: rows[offset:end], Total: len(rows), Limit: limit, Offset: offset}
}

// DefaultPageLimit is applied when a page request carries no limit
const DefaultPageLimit = 100

// CustomersPage returns a limit/offset page over the customers table
func (s *Snapshot) CustomersPage(limit, offset int) Page[models.Customer] {
	return paginate(s.Customers, limit, offset)
}

// ProductsPage returns a limit/offset page over the products table
func (s *Snapshot) ProductsPage(limit, offset int) Page[models.Product] {
	return paginate(s.Products, limit, offset)
}

// OrdersPage returns a limit/offset page over the orders table
func (s *Snapshot) OrdersPage(limit, offset int) Page[models.Order] {
	return paginate(s.Orders, limit, offset)
}

// OrderItemsPage returns a limit/offset page over the order items table
func (s *Snapshot) OrderItemsPage(limit, offset int) Page[models.OrderItem] {
	return paginate(s.OrderItems, limit, offset)
}

// Overview computes row counts, revenue totals and the order date range
func (s *Snapshot) Overview() models.DataOverview {
	ov := models.DataOverview{
		Customers:  len(s.Customers),
		Products:   len(s.Products),
		Orders:     len(s.Orders),
		OrderItems: len(s.OrderItems),
	}

	var min, max time.Time
	for i := range s.Orders {
		o := &s.Orders[i]
		ov.TotalRevenue += o.TotalAmount
		if min.IsZero() || o.OrderDate.Before(min) {
			min = o.OrderDate
		}
		if o.OrderDate.After(max) {
			max = o.OrderDate
		}
	}
	if len(s.Orders) > 0 {
		ov.AvgOrderValue = ov.TotalRevenue / float64(len(s.Orders))
	}
	ov.DateRange = models.DateRange{Start: min, End: max}
	return ov
}
