// Package metrics holds Prometheus instruments that are used across the
// site.  All collectors are registered with the global registry, so
// importing this package is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	Submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Contact submissions by outcome (rejected, busy, delivered, failed).",
		}, []string{"outcome"})

	SinkDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "contact_sink_request_duration_seconds",
			Help:    "Latency of outbound requests to the notification sink.",
			Buckets: prometheus.DefBuckets,
		}, []string{"result"})

	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_sessions",
			Help: "Number of visitor sessions currently held in memory.",
		})

	SessionEvictTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "session_evict_total",
			Help: "Cumulative number of visitor sessions evicted.",
		})

	RateLimitedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rate_limited_requests_total",
			Help: "Requests rejected with 429 by the rate limiter.",
		})
)

func init() {
	prometheus.MustRegister(
		Submissions,
		SinkDuration,
		ActiveSessions,
		SessionEvictTotal,
		RateLimitedTotal,
	)
}
