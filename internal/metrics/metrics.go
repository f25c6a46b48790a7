// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60}, // Report fetches can take tens of seconds
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Alma Upstream Metrics
	AlmaUpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alma_upstream_requests_total",
			Help: "Total number of calls to the Alma Analytics API",
		},
		[]string{"outcome"}, // "ok", "http_error", "transport_error", "rejected"
	)

	AlmaUpstreamDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "alma_upstream_duration_seconds",
			Help:    "Duration of Alma Analytics API calls in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
		},
	)

	// Secret Store Metrics
	SecretLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "secret_lookups_total",
			Help: "Total number of API key lookups against the secret store",
		},
		[]string{"provider", "outcome"}, // outcome: "ok", "not_found", "error"
	)

	SecretLookupDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "secret_lookup_duration_seconds",
			Help:    "Duration of secret store lookups in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	// Report Fetch Metrics
	ReportFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_fetch_total",
			Help: "Total number of report fetches by result",
		},
		[]string{"result"}, // "success" or the failure kind
	)

	ReportRowsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "report_rows_returned",
			Help:    "Number of rows returned per successful report fetch",
			Buckets: []float64{1, 10, 50, 100, 250, 500, 750, 1000},
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordAlmaCall records one outbound Alma call. Rejected calls never reached
// the network and are not observed in the duration histogram.
func RecordAlmaCall(outcome string, duration time.Duration) {
	AlmaUpstreamRequests.WithLabelValues(outcome).Inc()
	if outcome != "rejected" {
		AlmaUpstreamDuration.Observe(duration.Seconds())
	}
}

// RecordSecretLookup records one secret store lookup
func RecordSecretLookup(provider, outcome string, duration time.Duration) {
	SecretLookups.WithLabelValues(provider, outcome).Inc()
	SecretLookupDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordReportFetch records the result of a report fetch. rows is only
// observed for successful fetches.
func RecordReportFetch(result string, rows int) {
	ReportFetchTotal.WithLabelValues(result).Inc()
	if result == "success" {
		ReportRowsReturned.Observe(float64(rows))
	}
}
