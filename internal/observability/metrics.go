package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instruments for the resolution pipeline.
type Metrics struct {
	Resolutions  *prometheus.CounterVec // labels: outcome={success,cached,rejected}
	CacheLookups *prometheus.CounterVec // labels: result={hit,miss}

	GeocodeRequests *prometheus.CounterVec // labels: outcome={success,not_found,http_error,transport_error,unparsable}
	GeocodeDuration prometheus.Histogram

	NormalizeRequests *prometheus.CounterVec // labels: outcome={normalized,fallback}
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resolver",
			Name:      "resolutions_total",
			Help:      "Completed query resolutions by outcome.",
		}, []string{"outcome"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resolver",
			Name:      "cache_lookups_total",
			Help:      "Address cache lookups by result.",
		}, []string{"result"}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resolver",
			Name:      "geocode_requests_total",
			Help:      "Geocoding provider requests by outcome.",
		}, []string{"outcome"}),
		GeocodeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "resolver",
			Name:      "geocode_request_duration_seconds",
			Help:      "Geocoding provider request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		NormalizeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resolver",
			Name:      "normalize_requests_total",
			Help:      "Normalization attempts by outcome.",
		}, []string{"outcome"}),
	}

	prometheus.MustRegister(
		m.Resolutions,
		m.CacheLookups,
		m.GeocodeRequests,
		m.GeocodeDuration,
		m.NormalizeRequests,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		Resolutions:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "resolver", Name: "resolutions_total"}, []string{"outcome"}),
		CacheLookups:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "resolver", Name: "cache_lookups_total"}, []string{"result"}),
		GeocodeRequests:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "resolver", Name: "geocode_requests_total"}, []string{"outcome"}),
		GeocodeDuration:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "resolver", Name: "geocode_request_duration_seconds"}),
		NormalizeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "resolver", Name: "normalize_requests_total"}, []string{"outcome"}),
	}
}
