// Package metrics provides a centralized Prometheus metrics registry for the
// course bid forecaster.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	ForecastsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "course_bidder",
		Name:      "forecasts_total",
		Help:      "Total number of complete forecasts computed",
	})
	DerivedPhaseEstimatesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "course_bidder",
		Name:      "derived_phase_estimates_total",
		Help:      "Total number of phases synthesized from a sibling phase",
	})
	InsufficientDataPhasesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "course_bidder",
		Name:      "insufficient_data_phases_total",
		Help:      "Total number of phases returned with insufficient confidence",
	})
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "course_bidder",
		Name:      "forecast_cache_hits_total",
		Help:      "Total number of forecast cache hits",
	})
	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "course_bidder",
		Name:      "forecast_cache_misses_total",
		Help:      "Total number of forecast cache misses",
	})
)

// Histogram metrics
var (
	ForecastDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "course_bidder",
		Name:      "forecast_duration_seconds",
		Help:      "Duration of complete forecast computations in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(ForecastsTotal)
		registry.MustRegister(DerivedPhaseEstimatesTotal)
		registry.MustRegister(InsufficientDataPhasesTotal)
		registry.MustRegister(CacheHitsTotal)
		registry.MustRegister(CacheMissesTotal)

		registry.MustRegister(ForecastDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordForecast records a completed forecast and its duration.
func RecordForecast(durationSeconds float64) {
	ForecastsTotal.Inc()
	ForecastDuration.Observe(durationSeconds)
}

// RecordDerivedPhase records a cross-phase estimation.
func RecordDerivedPhase() {
	DerivedPhaseEstimatesTotal.Inc()
}

// RecordInsufficientPhase records a phase with no usable data.
func RecordInsufficientPhase() {
	InsufficientDataPhasesTotal.Inc()
}

// RecordCacheHit records a forecast cache hit.
func RecordCacheHit() {
	CacheHitsTotal.Inc()
}

// RecordCacheMiss records a forecast cache miss.
func RecordCacheMiss() {
	CacheMissesTotal.Inc()
}
