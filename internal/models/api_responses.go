// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

package models

import (
	"time"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse represents the success envelope returned by POST /report.
//
// Example:
//
//	{
//	  "status": "success",
//	  "data": {"columns": {...}, "rows": [...], "finished": true},
//	  "metadata": {
//	    "timestamp": "2026-01-12T09:30:00Z",
//	    "query_time_ms": 1830,
//	    "row_count": 2,
//	    "request_id": "5b0e9a3c-..."
//	  }
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
}

// Metadata contains response metadata for observability.
//
// Fields:
//   - Timestamp: Server time when the response was generated (RFC3339)
//   - QueryTimeMS: Wall time of the whole fetch (secret lookup + Alma call + parse)
//   - RowCount: Number of rows in data.rows
//   - RequestID: Same value as the X-Request-ID response header
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms"`
	RowCount    int       `json:"row_count"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError is the flat error envelope returned for every failure.
//
// Common error codes:
//   - VALIDATION_ERROR: Missing or malformed request fields (400)
//   - INVALID_REQUEST: Body is not valid JSON or has unknown fields (400)
//   - NO_COLUMNS, NO_ROWS: Alma answered without schema or data (404)
//   - SECRET_LOOKUP_FAILED, UPSTREAM_TRANSPORT_ERROR, UPSTREAM_HTTP_ERROR,
//     UPSTREAM_APPLICATION_ERROR, MALFORMED_RESPONSE, CONFIGURATION_ERROR (500)
//   - UPSTREAM_UNAVAILABLE: Circuit breaker open (503)
//
// Example:
//
//	{
//	  "status": "error",
//	  "message": "Alma returned no rows for this report",
//	  "code": "NO_ROWS",
//	  "request_id": "5b0e9a3c-..."
//	}
type APIError struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// HealthStatus is the body of the health endpoints.
type HealthStatus struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}
