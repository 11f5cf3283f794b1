package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics holds Prometheus metrics for business-level observability.
// Store-scoped metrics include a store_id label for per-seller dashboards.
type BusinessMetrics struct {
	// Cart
	CartsSaved      *prometheus.CounterVec
	CartsRefreshed  prometheus.Counter
	CartsEmptied    prometheus.Counter
	CartValue       prometheus.Histogram
	CartLinesSaved  prometheus.Histogram
	CartStockClamps prometheus.Counter

	// Coupons
	CouponsApplied  *prometheus.CounterVec
	CouponsRemoved  prometheus.Counter
	CouponsRejected *prometheus.CounterVec

	// Orders
	OrdersPlaced    prometheus.Counter
	OrderValue      prometheus.Histogram
	OrderGroupCount prometheus.Histogram

	// Payments
	PaymentAttempts  *prometheus.CounterVec
	PaymentSucceeded *prometheus.CounterVec
	PaymentFailed    *prometheus.CounterVec
}

// NewBusinessMetrics creates and registers all business metrics
func NewBusinessMetrics(namespace string) *BusinessMetrics {
	if namespace == "" {
		namespace = "bazario"
	}

	subsystem := "business"

	return &BusinessMetrics{
		CartsSaved: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "carts_saved_total",
				Help:      "Total cart save (replace) operations",
			},
			[]string{"country_code"},
		),
		CartsRefreshed: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "carts_refreshed_total",
				Help:      "Total server-side cart re-pricing passes",
			},
		),
		CartsEmptied: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "carts_emptied_total",
				Help:      "Total cart deletions",
			},
		),
		CartValue: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_value",
				Help:      "Cart total after revalidation",
				Buckets:   prometheus.ExponentialBuckets(1, 2.5, 12),
			},
		),
		CartLinesSaved: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_lines_saved",
				Help:      "Line count per saved cart",
				Buckets:   prometheus.LinearBuckets(1, 2, 10),
			},
		),
		CartStockClamps: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cart_stock_clamps_total",
				Help:      "Total cart lines whose quantity was reduced to stock",
			},
		),
		CouponsApplied: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "coupons_applied_total",
				Help:      "Total successful coupon applications",
			},
			[]string{"store_id"},
		),
		CouponsRemoved: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "coupons_removed_total",
				Help:      "Total coupon removals",
			},
		),
		CouponsRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "coupons_rejected_total",
				Help:      "Total coupon applications rejected by a precondition",
			},
			[]string{"reason"}, // reason: not_found, inactive, already_applied, not_applicable
		),
		OrdersPlaced: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orders_placed_total",
				Help:      "Total orders placed",
			},
		),
		OrderValue: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_value",
				Help:      "Order total at placement",
				Buckets:   prometheus.ExponentialBuckets(1, 2.5, 12),
			},
		),
		OrderGroupCount: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_group_count",
				Help:      "Store groups per order",
				Buckets:   prometheus.LinearBuckets(1, 1, 8),
			},
		),
		PaymentAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "payment_attempts_total",
				Help:      "Total payment captures attempted",
			},
			[]string{"method"},
		),
		PaymentSucceeded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "payment_succeeded_total",
				Help:      "Total payments captured as Paid",
			},
			[]string{"method"},
		),
		PaymentFailed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "payment_failed_total",
				Help:      "Total captures that ended in payment status Failed",
			},
			[]string{"method", "reason"}, // reason: provider_error, not_succeeded
		),
	}
}
