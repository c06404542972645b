package store

import (
	"fmt"
	"testing"
	"time"

	"analytics-copilot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot(t *testing.T, orders int) *Snapshot {
	t.Helper()

	customers := []models.Customer{
		{ID: "CUST_000001", FirstName: "Ada", LastName: "Lovelace"},
	}
	products := []models.Product{
		{ID: "PROD_000001", Name: "Widget", Category: "Electronics", Price: 25},
	}

	var os []models.Order
	var items []models.OrderItem
	for i := 1; i <= orders; i++ {
		os = append(os, models.Order{
			ID:          fmt.Sprintf("ORD_%08d", i),
			CustomerID:  "CUST_000001",
			OrderDate:   time.Date(2024, time.Month(i%12+1), 1, 0, 0, 0, 0, time.UTC),
			Status:      models.OrderStatusDelivered,
			TotalAmount: 10,
		})
		items = append(items, models.OrderItem{
			ID: fmt.Sprintf("OI_%08d", i), OrderID: fmt.Sprintf("ORD_%08d", i),
			ProductID: "PROD_000001", Quantity: 1, UnitPrice: 10, TotalPrice: 10,
		})
	}

	snap, err := NewSnapshot(customers, products, os, items)
	require.NoError(t, err)
	return snap
}

func TestNewSnapshotRejectsBrokenReferences(t *testing.T) {
	customers := []models.Customer{{ID: "CUST_000001"}}
	products := []models.Product{{ID: "PROD_000001"}}

	_, err := NewSnapshot(customers, products, []models.Order{
		{ID: "ORD_00000001", CustomerID: "CUST_999999"},
	}, nil)
	assert.ErrorContains(t, err, "unknown customer")

	orders := []models.Order{{ID: "ORD_00000001", CustomerID: "CUST_000001"}}

	_, err = NewSnapshot(customers, products, orders, []models.OrderItem{
		{ID: "OI_00000001", OrderID: "ORD_99999999", ProductID: "PROD_000001"},
	})
	assert.ErrorContains(t, err, "unknown order")

	_, err = NewSnapshot(customers, products, orders, []models.OrderItem{
		{ID: "OI_00000001", OrderID: "ORD_00000001", ProductID: "PROD_999999"},
	})
	assert.ErrorContains(t, err, "unknown product")
}

func TestSnapshotJoinIndexes(t *testing.T) {
	snap := testSnapshot(t, 3)

	require.NotNil(t, snap.CustomerByID("CUST_000001"))
	assert.Equal(t, "Ada Lovelace", snap.CustomerByID("CUST_000001").FullName())
	assert.Nil(t, snap.CustomerByID("CUST_404404"))

	require.NotNil(t, snap.ProductByID("PROD_000001"))
	assert.Nil(t, snap.ProductByID("PROD_404404"))

	items := snap.ItemsByOrder("ORD_00000002")
	require.Len(t, items, 1)
	assert.Equal(t, "OI_00000002", items[0].ID)
}

func TestPagination(t *testing.T) {
	snap := testSnapshot(t, 25)

	page := snap.OrdersPage(10, 0)
	assert.Len(t, page.Data, 10)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, "ORD_00000001", page.Data[0].ID)

	page = snap.OrdersPage(10, 20)
	assert.Len(t, page.Data, 5)
	assert.Equal(t, "ORD_00000021", page.Data[0].ID)

	// offset past the end yields an empty page, not an error
	page = snap.OrdersPage(10, 100)
	assert.Empty(t, page.Data)
	assert.Equal(t, 25, page.Total)

	// non-positive limit falls back to the default
	page = snap.OrdersPage(0, 0)
	assert.Equal(t, DefaultPageLimit, page.Limit)
	assert.Len(t, page.Data, 25)
}

func TestOverview(t *testing.T) {
	snap := testSnapshot(t, 4)

	ov := snap.Overview()
	assert.Equal(t, 1, ov.Customers)
	assert.Equal(t, 1, ov.Products)
	assert.Equal(t, 4, ov.Orders)
	assert.Equal(t, 4, ov.OrderItems)
	assert.Equal(t, 40.0, ov.TotalRevenue)
	assert.Equal(t, 10.0, ov.AvgOrderValue)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), ov.DateRange.Start)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), ov.DateRange.End)
}

func TestOverviewEmptySnapshot(t *testing.T) {
	snap, err := NewSnapshot(nil, nil, nil, nil)
	require.NoError(t, err)

	ov := snap.Overview()
	assert.Zero(t, ov.TotalRevenue)
	assert.Zero(t, ov.AvgOrderValue)
	assert.True(t, ov.DateRange.Start.IsZero())
}

func TestLakehouseSwap(t *testing.T) {
	first := testSnapshot(t, 1)
	second := testSnapshot(t, 2)

	l := NewLakehouse(first)
	assert.Same(t, first, l.Snapshot())

	held := l.Snapshot()
	l.Swap(second)
	assert.Same(t, second, l.Snapshot())
	// a reader that grabbed the old snapshot keeps seeing it unchanged
	assert.Same(t, first, held)
	assert.Len(t, held.Orders, 1)
}
