package subsonic

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts dispatched requests by method and outcome.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subsonic_requests_total",
			Help: "Total number of Subsonic API requests",
		},
		[]string{"method", "outcome"},
	)

	// RequestDuration tracks handler latency by method.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "subsonic_request_duration_seconds",
			Help:    "Duration of Subsonic API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// AuthFailuresTotal counts rejected credentials by error code.
	AuthFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subsonic_auth_failures_total",
			Help: "Total number of failed Subsonic authentications",
		},
		[]string{"code"},
	)
)

// recordRequest observes one dispatched request. Unknown methods share a
// single label value.
func recordRequest(m Method, outcome string, d time.Duration) {
	label := string(m)
	if _, ok := routes[m]; !ok {
		label = "unknown"
	}
	RequestsTotal.WithLabelValues(label, outcome).Inc()
	RequestDuration.WithLabelValues(label).Observe(d.Seconds())
}
