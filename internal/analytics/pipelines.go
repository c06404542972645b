package analytics

import (
	"fmt"
	"sort"

	"analytics-copilot/internal/models"
	"analytics-copilot/internal/store"
)

// pipelineOutput is what a successful pipeline run produces. A failed
// run returns an error instead; the assembler in engine.go turns it
// into a degraded result, never a propagated failure.
type pipelineOutput struct {
	data     map[string]interface{}
	insights []string
	viz      string
}

const topN = 10

// group accumulates a sum per key, remembering first-seen key order so
// that ties sort deterministically.
type group struct {
	key   string
	label string
	value float64
	qty   int
}

// timeSeries buckets orders by calendar month and reports the revenue
// and order-count series. The per-order item sum join mirrors the
// historical computation: its value is unused, but it restricts the
// series to orders that have line items.
func (e *Engine) timeSeries(snap *store.Snapshot, intent *models.Intent) (*pipelineOutput, error) {
	itemSums := make(map[string]float64, len(snap.Orders))
	for i := range snap.OrderItems {
		it := &snap.OrderItems[i]
		itemSums[it.OrderID] += it.TotalPrice
	}

	type bucket struct {
		revenue float64
		orders  int
	}
	buckets := make(map[string]*bucket)
	for i := range snap.Orders {
		o := &snap.Orders[i]
		if _, ok := itemSums[o.ID]; !ok {
			continue
		}
		month := o.OrderDate.Format("2006-01")
		b := buckets[month]
		if b == nil {
			b = &bucket{}
			buckets[month] = b
		}
		b.revenue += o.TotalAmount
		b.orders++
	}
	if len(buckets) == 0 {
		return nil, fmt.Errorf("no orders to analyze")
	}

	months := make([]string, 0, len(buckets))
	for m := range buckets {
		months = append(months, m)
	}
	sort.Strings(months)

	revenue := make([]float64, len(months))
	orders := make([]int, len(months))
	peakMonth := months[0]
	var totalRevenue float64
	var totalOrders int
	for i, m := range months {
		b := buckets[m]
		revenue[i] = b.revenue
		orders[i] = b.orders
		totalRevenue += b.revenue
		totalOrders += b.orders
		if b.revenue > buckets[peakMonth].revenue {
			peakMonth = m
		}
	}

	return &pipelineOutput{
		data: map[string]interface{}{
			"labels":  months,
			"revenue": revenue,
			"orders":  orders,
		},
		insights: []string{
			fmt.Sprintf("Peak revenue month: %s", peakMonth),
			fmt.Sprintf("Average monthly revenue: %s", money(totalRevenue/float64(len(months)))),
			fmt.Sprintf("Total orders analyzed: %s", count(totalOrders)),
		},
		viz: models.VizLine,
	}, nil
}

// ranking returns the top spenders: products by line-item revenue when
// the products scope is present, otherwise customers by order total.
func (e *Engine) ranking(snap *store.Snapshot, intent *models.Intent) (*pipelineOutput, error) {
	if intent.HasScope(models.ScopeProducts) {
		groups := make([]*group, 0, len(snap.Products))
		index := make(map[string]*group, len(snap.Products))
		for i := range snap.OrderItems {
			it := &snap.OrderItems[i]
			g := index[it.ProductID]
			if g == nil {
				g = &group{key: it.ProductID, label: snap.ProductByID(it.ProductID).Name}
				index[it.ProductID] = g
				groups = append(groups, g)
			}
			g.value += it.TotalPrice
		}
		if len(groups) == 0 {
			return nil, fmt.Errorf("no order items to analyze")
		}

		top := selectTop(groups, topN)
		labels, values, sum := flatten(top)
		return &pipelineOutput{
			data: map[string]interface{}{"labels": labels, "values": values},
			insights: []string{
				fmt.Sprintf("Top product: %s (%s)", top[0].label, money(top[0].value)),
				fmt.Sprintf("Revenue concentration: Top 10 products account for %s", money(sum)),
				fmt.Sprintf("Average top product revenue: %s", money(sum/float64(len(top)))),
			},
			viz: models.VizBar,
		}, nil
	}

	groups := make([]*group, 0, len(snap.Customers))
	index := make(map[string]*group, len(snap.Customers))
	for i := range snap.Orders {
		o := &snap.Orders[i]
		g := index[o.CustomerID]
		if g == nil {
			g = &group{key: o.CustomerID, label: snap.CustomerByID(o.CustomerID).FullName()}
			index[o.CustomerID] = g
			groups = append(groups, g)
		}
		g.value += o.TotalAmount
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("no orders to analyze")
	}

	top := selectTop(groups, topN)
	labels, values, sum := flatten(top)
	return &pipelineOutput{
		data: map[string]interface{}{"labels": labels, "values": values},
		insights: []string{
			fmt.Sprintf("Top customer: %s (%s)", top[0].label, money(top[0].value)),
			fmt.Sprintf("Customer concentration: Top 10 customers spent %s", money(sum)),
			fmt.Sprintf("Average top customer value: %s", money(sum/float64(len(top)))),
		},
		viz: models.VizBar,
	}, nil
}

// comparison aggregates line-item revenue and unit volume per product
// category. Categories are emitted in alphabetical order.
func (e *Engine) comparison(snap *store.Snapshot, intent *models.Intent) (*pipelineOutput, error) {
	index := make(map[string]*group)
	for i := range snap.OrderItems {
		it := &snap.OrderItems[i]
		category := snap.ProductByID(it.ProductID).Category
		g := index[category]
		if g == nil {
			g = &group{key: category, label: category}
			index[category] = g
		}
		g.value += it.TotalPrice
		g.qty += it.Quantity
	}
	if len(index) == 0 {
		return nil, fmt.Errorf("no order items to analyze")
	}

	labels := make([]string, 0, len(index))
	for c := range index {
		labels = append(labels, c)
	}
	sort.Strings(labels)

	revenue := make([]float64, len(labels))
	quantity := make([]int, len(labels))
	byRevenue, byVolume := labels[0], labels[0]
	for i, c := range labels {
		g := index[c]
		revenue[i] = g.value
		quantity[i] = g.qty
		if g.value > index[byRevenue].value {
			byRevenue = c
		}
		if g.qty > index[byVolume].qty {
			byVolume = c
		}
	}

	return &pipelineOutput{
		data: map[string]interface{}{
			"labels":   labels,
			"revenue":  revenue,
			"quantity": quantity,
		},
		insights: []string{
			fmt.Sprintf("Leading category by revenue: %s", byRevenue),
			fmt.Sprintf("Leading category by volume: %s", byVolume),
			fmt.Sprintf("Total categories: %d", len(labels)),
		},
		viz: models.VizBar,
	}, nil
}

// distribution counts customers per segment when the customers scope
// is present, otherwise orders per status. Buckets are ordered by
// descending count; equal counts keep first-seen order.
func (e *Engine) distribution(snap *store.Snapshot, intent *models.Intent) (*pipelineOutput, error) {
	if intent.HasScope(models.ScopeCustomers) {
		groups := countBy(len(snap.Customers), func(i int) string { return snap.Customers[i].Segment })
		if len(groups) == 0 {
			return nil, fmt.Errorf("no customers to analyze")
		}
		labels, values, total := flattenCounts(groups)
		return &pipelineOutput{
			data: map[string]interface{}{"labels": labels, "values": values},
			insights: []string{
				fmt.Sprintf("Largest segment: %s (%d customers)", labels[0], values[0]),
				fmt.Sprintf("Segment diversity: %d segments", len(labels)),
				fmt.Sprintf("Total customers: %s", count(total)),
			},
			viz: models.VizPie,
		}, nil
	}

	groups := countBy(len(snap.Orders), func(i int) string { return snap.Orders[i].Status })
	if len(groups) == 0 {
		return nil, fmt.Errorf("no orders to analyze")
	}
	labels, values, total := flattenCounts(groups)
	return &pipelineOutput{
		data: map[string]interface{}{"labels": labels, "values": values},
		insights: []string{
			fmt.Sprintf("Most common status: %s (%d orders)", labels[0], values[0]),
			fmt.Sprintf("Status variety: %d different statuses", len(labels)),
			fmt.Sprintf("Total orders: %s", count(total)),
		},
		viz: models.VizPie,
	}, nil
}

// general computes the five whole-snapshot overview metrics
func (e *Engine) general(snap *store.Snapshot, intent *models.Intent) (*pipelineOutput, error) {
	if len(snap.Orders) == 0 {
		return nil, fmt.Errorf("no orders to analyze")
	}

	var totalRevenue float64
	for i := range snap.Orders {
		totalRevenue += snap.Orders[i].TotalAmount
	}
	avgOrderValue := totalRevenue / float64(len(snap.Orders))

	return &pipelineOutput{
		data: map[string]interface{}{
			"metrics": map[string]interface{}{
				"total_customers": len(snap.Customers),
				"total_products":  len(snap.Products),
				"total_orders":    len(snap.Orders),
				"total_revenue":   totalRevenue,
				"avg_order_value": avgOrderValue,
			},
		},
		insights: []string{
			fmt.Sprintf("Total customers: %s", count(len(snap.Customers))),
			fmt.Sprintf("Total products: %s", count(len(snap.Products))),
			fmt.Sprintf("Total orders: %s", count(len(snap.Orders))),
			fmt.Sprintf("Total revenue: %s", money(totalRevenue)),
			fmt.Sprintf("Average order value: %s", plainMoney(avgOrderValue)),
		},
		viz: models.VizMetrics,
	}, nil
}

// selectTop orders groups by descending value and keeps the first n.
// The sort is stable, so equal values keep first-encountered order.
func selectTop(groups []*group, n int) []*group {
	sorted := make([]*group, len(groups))
	copy(sorted, groups)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].value > sorted[j].value })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func flatten(groups []*group) (labels []string, values []float64, sum float64) {
	labels = make([]string, len(groups))
	values = make([]float64, len(groups))
	for i, g := range groups {
		labels[i] = g.label
		values[i] = g.value
		sum += g.value
	}
	return labels, values, sum
}

// countBy tallies rows per key, preserving first-seen key order, then
// stable-sorts by descending count.
func countBy(n int, keyOf func(i int) string) []*group {
	var groups []*group
	index := make(map[string]*group)
	for i := 0; i < n; i++ {
		k := keyOf(i)
		g := index[k]
		if g == nil {
			g = &group{key: k, label: k}
			index[k] = g
			groups = append(groups, g)
		}
		g.qty++
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].qty > groups[j].qty })
	return groups
}

func flattenCounts(groups []*group) (labels []string, values []int, total int) {
	labels = make([]string, len(groups))
	values = make([]int, len(groups))
	for i, g := range groups {
		labels[i] = g.label
		values[i] = g.qty
		total += g.qty
	}
	return labels, values, total
}
