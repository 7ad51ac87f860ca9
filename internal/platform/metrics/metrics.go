package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GeocodeLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geocode_lookups_total",
			Help: "Provider geocode lookups by outcome",
		},
		[]string{"outcome"},
	)

	GeocodeCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geocode_cache_total",
			Help: "Geocode cache lookups by result",
		},
		[]string{"result"},
	)

	TourSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tour_submissions_total",
			Help: "Tour optimizer submissions by outcome",
		},
		[]string{"outcome"},
	)

	UnmatchedStops = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "route_unmatched_stops_total",
			Help: "Provider stops that could not be matched back to an address",
		},
	)

	DegradedDayPlans = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "day_plans_degraded_total",
			Help: "Day groups returned unoptimized after a provider failure",
		},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
