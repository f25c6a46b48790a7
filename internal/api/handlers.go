// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

package api

import (
	"context"
	"time"

	"github.com/tomtom215/almareport/internal/alma"
	"github.com/tomtom215/almareport/internal/config"
	"github.com/tomtom215/almareport/internal/models"
)

// defaultMaxBodyBytes caps request bodies when the server config leaves it unset.
const defaultMaxBodyBytes = 64 << 10

// ReportFetcher runs the Alma report pipeline. *alma.Fetcher implements it.
type ReportFetcher interface {
	Fetch(ctx context.Context, req models.ReportRequest) (*alma.Report, error)
	HealthChecks() (checks map[string]string, ready bool)
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: JSON encoding, error envelope, body decoding
//   - handlers_report.go: GET / and POST /report
//   - handlers_health.go: liveness and readiness checks
type Handler struct {
	fetcher      ReportFetcher
	maxBodyBytes int64
	startTime    time.Time
}

// NewHandler creates an API handler.
//
//	fetcher := alma.NewFetcher(cfg.Alma, provider)
//	handler := api.NewHandler(fetcher, cfg)
//	router := api.NewRouter(handler, api.NewChiMiddleware(nil))
//	http.ListenAndServe(cfg.Server.Addr(), router.SetupChi())
func NewHandler(fetcher ReportFetcher, cfg *config.Config) *Handler {
	maxBody := int64(defaultMaxBodyBytes)
	if cfg != nil && cfg.Server.MaxBodyBytes > 0 {
		maxBody = cfg.Server.MaxBodyBytes
	}

	return &Handler{
		fetcher:      fetcher,
		maxBodyBytes: maxBody,
		startTime:    time.Now(),
	}
}
