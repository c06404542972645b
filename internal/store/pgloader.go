package store

import (
	"context"
	"fmt"
	"time"

	"analytics-copilot/internal/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// LoadSnapshot reads the four tables from Postgres and builds a
// snapshot. This is the alternative to the synthetic generator for
// deployments that already warehouse their commerce data; the
// connection is closed once the snapshot is built.
func LoadSnapshot(ctx context.Context, databaseURL string) (*Snapshot, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(4)
	db.SetConnMaxLifetime(5 * time.Minute)

	var customers []models.Customer
	if err := db.SelectContext(ctx, &customers,
		"SELECT * FROM customers ORDER BY customer_id"); err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}

	var products []models.Product
	if err := db.SelectContext(ctx, &products,
		"SELECT * FROM products ORDER BY product_id"); err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	var orders []models.Order
	if err := db.SelectContext(ctx, &orders,
		"SELECT * FROM orders ORDER BY order_id"); err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	var items []models.OrderItem
	if err := db.SelectContext(ctx, &items,
		"SELECT * FROM order_items ORDER BY order_item_id"); err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}

	return NewSnapshot(customers, products, orders, items)
}
