// Package metrics holds the service's Prometheus collectors, exposed on
// GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "alxtravel",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "alxtravel",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	PaymentsInitiated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "alxtravel",
		Subsystem: "payments",
		Name:      "initiated_total",
		Help:      "Payments successfully initiated at the gateway.",
	})

	PaymentsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "alxtravel",
		Subsystem: "payments",
		Name:      "completed_total",
		Help:      "Payments verified as completed.",
	})

	PaymentsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "alxtravel",
		Subsystem: "payments",
		Name:      "failed_total",
		Help:      "Payments that ended in the failed state.",
	})

	NotifyEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "alxtravel",
		Subsystem: "notify",
		Name:      "enqueued_total",
		Help:      "Notification jobs accepted onto the queue.",
	})

	NotifyDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "alxtravel",
		Subsystem: "notify",
		Name:      "dropped_total",
		Help:      "Notification jobs dropped because the queue was full.",
	})

	NotifySent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "alxtravel",
		Subsystem: "notify",
		Name:      "sent_total",
		Help:      "Notification emails delivered to the mail relay.",
	})

	NotifyFailed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "alxtravel",
		Subsystem: "notify",
		Name:      "failed_total",
		Help:      "Notification deliveries that errored.",
	})
)
