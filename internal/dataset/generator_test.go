package dataset

import (
	"testing"
	"time"

	"analytics-copilot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testParams = Params{
	Seed:      42,
	Customers: 50,
	Products:  20,
	Orders:    100,
	Now:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
}

func TestGenerateDeterministicBySeed(t *testing.T) {
	first, err := Generate(testParams)
	require.NoError(t, err)
	second, err := Generate(testParams)
	require.NoError(t, err)

	assert.Equal(t, first.Customers, second.Customers)
	assert.Equal(t, first.Products, second.Products)
	assert.Equal(t, first.Orders, second.Orders)
	assert.Equal(t, first.OrderItems, second.OrderItems)

	other := testParams
	other.Seed = 43
	third, err := Generate(other)
	require.NoError(t, err)
	assert.NotEqual(t, first.Customers, third.Customers)
}

func TestGenerateCounts(t *testing.T) {
	snap, err := Generate(testParams)
	require.NoError(t, err)

	assert.Len(t, snap.Customers, testParams.Customers)
	assert.Len(t, snap.Products, testParams.Products)
	assert.Len(t, snap.Orders, testParams.Orders)
	assert.GreaterOrEqual(t, len(snap.OrderItems), testParams.Orders)
	assert.LessOrEqual(t, len(snap.OrderItems), testParams.Orders*5)
}

func TestGenerateInvariants(t *testing.T) {
	snap, err := Generate(testParams)
	require.NoError(t, err)

	for i := range snap.Orders {
		o := &snap.Orders[i]
		require.NotNil(t, snap.CustomerByID(o.CustomerID), "order %s", o.ID)
		require.NotEmpty(t, snap.ItemsByOrder(o.ID), "order %s has no items", o.ID)
		assert.GreaterOrEqual(t, o.TotalAmount, 0.0)
		assert.False(t, o.OrderDate.After(testParams.Now))
		assert.False(t, o.OrderDate.Before(testParams.Now.AddDate(-1, 0, 0)))
	}

	for i := range snap.OrderItems {
		it := &snap.OrderItems[i]
		require.NotNil(t, snap.ProductByID(it.ProductID), "item %s", it.ID)
		assert.Positive(t, it.Quantity)
		assert.LessOrEqual(t, it.Quantity, 5)
		assert.GreaterOrEqual(t, it.UnitPrice, 0.0)
		assert.InDelta(t, it.UnitPrice*float64(it.Quantity), it.TotalPrice, 0.005,
			"item %s total_price must derive from unit_price and quantity", it.ID)
	}
}

func TestGenerateValueRanges(t *testing.T) {
	snap, err := Generate(testParams)
	require.NoError(t, err)

	for i := range snap.Customers {
		c := &snap.Customers[i]
		assert.Contains(t, []string{models.SegmentPremium, models.SegmentStandard, models.SegmentBasic}, c.Segment)
		assert.GreaterOrEqual(t, c.Age, 18)
		assert.LessOrEqual(t, c.Age, 80)
		assert.GreaterOrEqual(t, c.LifetimeValue, 100.0)
		assert.LessOrEqual(t, c.LifetimeValue, 10000.0)
	}

	for i := range snap.Products {
		p := &snap.Products[i]
		assert.Contains(t, Categories, p.Category)
		assert.GreaterOrEqual(t, p.Price, 10.0)
		assert.LessOrEqual(t, p.Price, 1000.0)
		assert.GreaterOrEqual(t, p.Rating, 1.0)
		assert.LessOrEqual(t, p.Rating, 5.0)
	}

	statuses := map[string]bool{}
	for i := range snap.Orders {
		statuses[snap.Orders[i].Status] = true
		assert.Equal(t, "USD", snap.Orders[i].Currency)
	}
	// 100 orders over 5 statuses should exercise every status
	assert.Len(t, statuses, 5)
}

func TestGenerateRejectsInvalidParams(t *testing.T) {
	_, err := Generate(Params{Seed: 1, Customers: 0, Products: 10, Orders: 10})
	assert.Error(t, err)

	_, err = Generate(Params{Seed: 1, Customers: 10, Products: 0, Orders: 10})
	assert.Error(t, err)
}
