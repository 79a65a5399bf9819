package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TransactionsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "transactions_created_total",
		Help: "Total number of transactions created",
	})

	TransactionsDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "transactions_deleted_total",
		Help: "Total number of transactions deleted",
	})

	TransactionsFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transactions_failed_total",
		Help: "Total number of failed transaction creations",
	}, []string{"reason"})

	DiscountsGrantedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "discounts_granted_total",
		Help: "Total discount amount granted across all transactions",
	})

	LoyaltyDiscountsSkippedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "loyalty_discounts_skipped_total",
		Help: "Total number of loyalty discount applications skipped",
	}, []string{"reason"})

	UsersTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "users_total",
		Help: "Current number of registered users",
	})

	CardsIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "loyalty_cards_issued_total",
		Help: "Total number of loyalty cards issued",
	})

	PromotionsDeactivatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "promotions_deactivated_total",
		Help: "Total number of promotions deactivated by the expiry sweep",
	})

	TransactionWorkflowLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "transaction_workflow_latency_seconds",
		Help:    "Latency of the transaction creation workflow",
		Buckets: prometheus.DefBuckets,
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)

// PrometheusMetrics implements service.MetricsSink on the counters above.
type PrometheusMetrics struct{}

func (PrometheusMetrics) TransactionCreated(userID string) {
	TransactionsCreatedTotal.Inc()
}

func (PrometheusMetrics) TransactionDeleted(userID string) {
	TransactionsDeletedTotal.Inc()
}

func (PrometheusMetrics) TransactionFailed(reason string) {
	TransactionsFailedTotal.WithLabelValues(reason).Inc()
}

func (PrometheusMetrics) DiscountGranted(amount float64) {
	DiscountsGrantedTotal.Add(amount)
}

func (PrometheusMetrics) LoyaltyDiscountSkipped(reason string) {
	LoyaltyDiscountsSkippedTotal.WithLabelValues(reason).Inc()
}

func (PrometheusMetrics) UserCreated()    { UsersTotal.Inc() }
func (PrometheusMetrics) UserDeleted()    { UsersTotal.Dec() }
func (PrometheusMetrics) CardIssued()     { CardsIssuedTotal.Inc() }
func (PrometheusMetrics) PromotionSwept() { PromotionsDeactivatedTotal.Inc() }
