// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

/*
Package api provides the HTTP layer for Almareport.

Key Components:

  - Router: chi route table and global middleware stack
  - Handler: report, hello and health handlers
  - Response formatting: JSON success and error envelopes
  - Error mapping: alma.FetchError kinds to HTTP status codes and error codes

Endpoints:

  - GET  /              hello response
  - POST /report        fetch an Alma Analytics report
  - GET  /health/live   liveness check
  - GET  /health/ready  readiness check (secret provider configured)
  - GET  /metrics       Prometheus metrics

Report Request:

	POST /report
	{"path": "/shared/University/Reports/Loans", "iz": "01UNI_INST", "region": "eu"}

The handler decodes and validates the body, then hands it to the report
fetcher. Every call reads the API key and calls Alma afresh; nothing is cached.

Success Response:

	{
	  "status": "success",
	  "data": {
	    "columns": {"Column0": "Library", "Column1": "Loans"},
	    "rows": [{"Column0": "Main Library", "Column1": "1024"}],
	    "finished": true
	  },
	  "metadata": {"timestamp": "...", "query_time_ms": 412, "row_count": 1, "request_id": "..."}
	}

Error Response:

	{"status": "error", "message": "No rows found in the response.", "code": "NO_ROWS", "request_id": "..."}

Status codes:

  - 400 malformed JSON or failed validation
  - 404 report without columns or rows
  - 413 body larger than server.max_body_bytes
  - 503 Alma circuit breaker open
  - 500 everything else (secret lookup, transport, upstream and parse failures)

Error messages never contain the API key or the upstream URL.
*/
package api
