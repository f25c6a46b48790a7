// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

/*
Package metrics provides Prometheus metrics collection and export for observability.

Metrics are registered on the default registry through promauto and exposed at
GET /metrics in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)

Alma Metrics:
  - alma_upstream_requests_total: Outbound calls (counter)
    Labels: outcome (ok, http_error, transport_error, rejected)
  - alma_upstream_duration_seconds: Outbound call latency (histogram)

Secret Store Metrics:
  - secret_lookups_total: API key lookups (counter)
    Labels: provider (keyvault, aws, static), outcome (ok, not_found, error)
  - secret_lookup_duration_seconds: Lookup latency (histogram)
    Labels: provider

Report Metrics:
  - report_fetch_total: Report fetches (counter)
    Labels: result (success or the failure kind, e.g. no_rows, secret, transport)
  - report_rows_returned: Rows per successful fetch (histogram)

Circuit Breaker Metrics:
  - circuit_breaker_state: Current state (gauge)
    Labels: name
    Values: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total: Requests through the breaker (counter)
    Labels: name, result (success, failure, rejected)
  - circuit_breaker_consecutive_failures: Current failure streak (gauge)
  - circuit_breaker_state_transitions_total: State changes (counter)
    Labels: name, from_state, to_state

# Usage

	start := time.Now()
	// ... handle request ...
	metrics.RecordAPIRequest(r.Method, "/report", strconv.Itoa(status), time.Since(start))

# Thread Safety

All metric types are safe for concurrent use.
*/
package metrics
