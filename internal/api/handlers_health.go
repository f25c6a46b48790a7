// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/almareport/internal/models"
)

// HealthLive handles liveness check requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.HealthStatus{
		Status: "alive",
		Checks: map[string]string{
			"uptime": time.Since(h.startTime).Round(time.Second).String(),
		},
		Timestamp: time.Now(),
	})
}

// HealthReady handles readiness check requests (Kubernetes-style)
// Returns 200 OK only if the service can serve reports. Neither Alma nor the
// secret store is contacted; both are reached per request.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"report_fetcher": "not_configured"}
	ready := false

	if h.fetcher != nil {
		checks, ready = h.fetcher.HealthChecks()
	}

	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, models.HealthStatus{
		Status:    status,
		Checks:    checks,
		Timestamp: time.Now(),
	})
}
