package telemetry

import (
	"context"

	orderapp "github.com/restaurant/backend/internal/application/order"
	"go.opentelemetry.io/otel/metric"
)

var _ orderapp.Metrics = (*OrderMetrics)(nil)

// OrderMetrics records order throughput, revenue and status transitions
type OrderMetrics struct {
	created       *Counter
	revenue       metric.Float64Counter
	lineItems     *Histogram
	statusChanges *Counter
}

// NewOrderMetrics creates the order instruments on meter
func NewOrderMetrics(meter metric.Meter) (*OrderMetrics, error) {
	created, err := NewCounter(meter, "rms_orders_created_total", "Orders placed", "{order}")
	if err != nil {
		return nil, err
	}
	revenue, err := meter.Float64Counter("rms_order_revenue_total",
		metric.WithDescription("Sum of order totals"),
		metric.WithUnit("{currency}"),
	)
	if err != nil {
		return nil, err
	}
	lineItems, err := NewHistogram(meter, HistogramOpts{
		Name:        "rms_order_line_items",
		Description: "Line items per order",
		Unit:        "{item}",
		Boundaries:  []float64{1, 2, 3, 5, 8, 13, 21},
	})
	if err != nil {
		return nil, err
	}
	statusChanges, err := NewCounter(meter, "rms_order_status_changes_total", "Order status transitions", "{change}")
	if err != nil {
		return nil, err
	}
	return &OrderMetrics{
		created:       created,
		revenue:       revenue,
		lineItems:     lineItems,
		statusChanges: statusChanges,
	}, nil
}

// RecordOrderCreated counts a placed order
func (m *OrderMetrics) RecordOrderCreated(ctx context.Context, status string, amount float64, items int) {
	attr := AttrOrderStatus.String(status)
	m.created.Inc(ctx, attr)
	m.revenue.Add(ctx, amount, metric.WithAttributes(attr))
	m.lineItems.Record(ctx, float64(items))
}

// RecordStatusChange counts a status transition
func (m *OrderMetrics) RecordStatusChange(ctx context.Context, from, to string) {
	m.statusChanges.Inc(ctx, AttrFromStatus.String(from), AttrToStatus.String(to))
}
