package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Search outcomes
const (
	OutcomeSuccess         = "success"
	OutcomeRejected        = "rejected"
	OutcomeNotFound        = "not_found"
	OutcomeUpstreamFailure = "upstream_failure"
	OutcomeNetworkFailure  = "network_failure"
	OutcomeError           = "error"
)

// Upstream metrics
var (
	// UpstreamRequestsTotal tracks calls to the weather API by endpoint and status
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherdash_upstream_requests_total",
			Help: "Total number of weather API requests",
		},
		[]string{"endpoint", "status"},
	)

	// UpstreamRequestDuration tracks the latency of weather API calls
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weatherdash_upstream_request_duration_seconds",
			Help:    "Duration of weather API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

// Dashboard metrics
var (
	// SearchesTotal tracks city searches by outcome
	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherdash_searches_total",
			Help: "Total number of city searches",
		},
		[]string{"outcome"},
	)

	// ActiveEffects is 1 while a recurring visual effect is running
	ActiveEffects = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "weatherdash_active_effects",
			Help: "Number of running visual effects",
		},
	)

	// AppInfo provides static information about the application
	AppInfo = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "weatherdash_app_info",
			Help: "Application information (always 1)",
		},
	)

	// AppStartTime records when the application started
	AppStartTime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "weatherdash_app_start_time_seconds",
			Help: "Unix timestamp of when the application started",
		},
	)
)

func init() {
	AppInfo.Set(1)
	AppStartTime.SetToCurrentTime()
}

// RecordUpstreamRequest records one weather API call
func RecordUpstreamRequest(endpoint, status string, duration time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(endpoint, status).Inc()
	UpstreamRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordSearch records the outcome of a city search
func RecordSearch(outcome string) {
	SearchesTotal.WithLabelValues(outcome).Inc()
}
