// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/almareport/internal/alma"
	"github.com/tomtom215/almareport/internal/middleware"
	"github.com/tomtom215/almareport/internal/models"
)

// Root answers GET / with a fixed greeting.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.HelloResponse{Message: "Hello World"})
}

// Report handles POST /report.
//
// The body is {"path", "iz", "region"}. On success the response is the
// success envelope with columns, rows and the finished flag. Failures use
// the flat error envelope: 400 for bad input, 404 when Alma returned no
// columns or rows, 503 while the Alma circuit breaker is open and 500 for
// every other failure.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.ReportRequest
	if err := decodeJSONBody(w, r, h.maxBodyBytes, &req); err != nil {
		if errors.Is(err, errBodyTooLarge) {
			respondError(w, r, http.StatusRequestEntityTooLarge, CodeRequestTooLarge, "Request body is too large.", err)
			return
		}
		respondError(w, r, http.StatusBadRequest, CodeInvalidRequest,
			`Request body must be a JSON object with "path", "iz" and "region".`, err)
		return
	}

	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	if h.fetcher == nil {
		respondError(w, r, http.StatusInternalServerError, CodeConfiguration, "Report fetching is not configured.", nil)
		return
	}

	report, err := h.fetcher.Fetch(r.Context(), req)
	if err != nil {
		status, code, message := fetchErrorResponse(err)
		var fe *alma.FetchError
		if !errors.As(err, &fe) {
			// Fetch logs its own typed failures; anything else is unexpected.
			respondError(w, r, status, code, message, err)
			return
		}
		respondError(w, r, status, code, message, nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: models.StatusSuccess,
		Data:   reportData(report),
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			RowCount:    len(report.Rows),
			RequestID:   middleware.GetRequestID(r.Context()),
		},
	})
}

// reportData converts a parsed report into the response payload.
func reportData(report *alma.Report) models.ReportData {
	rows := make([]map[string]string, len(report.Rows))
	for i, row := range report.Rows {
		rows[i] = row
	}
	columns := report.Columns
	if columns == nil {
		columns = alma.ColumnMap{}
	}
	return models.ReportData{
		Columns:  columns,
		Rows:     rows,
		Finished: report.Finished,
	}
}
