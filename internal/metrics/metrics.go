package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPとドメインの指標
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bakehub_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bakehub_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bakehub_orders_placed_total",
		Help: "Orders created at checkout",
	})

	PayoutsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bakehub_payouts_created_total",
		Help: "Payouts created by admins",
	})

	PayoutConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bakehub_payout_conflicts_total",
		Help: "Payout creations rejected because an order was already claimed",
	})

	NotificationsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bakehub_notifications_dropped_total",
		Help: "Notifications dropped because the queue was full or closed",
	})

	NotificationsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bakehub_notifications_failed_total",
		Help: "Notifications whose delivery returned an error",
	})
)
