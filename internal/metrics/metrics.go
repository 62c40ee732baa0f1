// Package metrics holds the Prometheus collectors for the service. They
// register themselves on the default registry at import time; the router
// exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReportsSubmitted counts fault reports accepted through the API.
	ReportsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "laundry_reports_submitted_total",
		Help: "Number of fault reports accepted.",
	})

	// ReportsArchived counts reports moved to the archive.
	ReportsArchived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "laundry_reports_archived_total",
		Help: "Number of reports marked as archived.",
	})

	// PushNotificationsSent counts web push messages that were delivered.
	PushNotificationsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "laundry_push_notifications_sent_total",
		Help: "Number of web push notifications delivered.",
	})

	// PushNotificationsFailed counts web push deliveries that errored.
	PushNotificationsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "laundry_push_notifications_failed_total",
		Help: "Number of web push deliveries that failed.",
	})

	// RequestDuration tracks HTTP latency by method and status code.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "laundry_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "status"})
)
