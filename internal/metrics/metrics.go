package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "logoped",
			Name:      "http_requests_total",
			Help:      "Count of HTTP API requests by handler.",
		},
		[]string{"handler"},
	)

	applicationsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "logoped",
			Name:      "applications_created_total",
			Help:      "Count of booking applications submitted.",
		},
	)

	applicationStatusChanged = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "logoped",
			Name:      "application_status_changed_total",
			Help:      "Count of admin status changes by new status.",
		},
		[]string{"status"},
	)

	rateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "logoped",
			Name:      "rate_limited_total",
			Help:      "Count of requests rejected by the rate limiter.",
		},
	)

	availabilityCacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "logoped",
			Name:      "availability_cache_total",
			Help:      "Availability cache lookups by outcome.",
		},
		[]string{"outcome"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, applicationsCreated,
			applicationStatusChanged, rateLimited, availabilityCacheHits)
	})
}

func IncHTTP(handler string) {
	httpRequests.WithLabelValues(handler).Inc()
}

func IncApplicationCreated() {
	applicationsCreated.Inc()
}

func IncStatusChanged(status string) {
	applicationStatusChanged.WithLabelValues(status).Inc()
}

func IncRateLimited() {
	rateLimited.Inc()
}

func IncAvailabilityCache(outcome string) {
	availabilityCacheHits.WithLabelValues(outcome).Inc()
}
