// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/almareport/internal/alma"
	"github.com/tomtom215/almareport/internal/validation"
)

// API error codes returned in the "code" field of error responses.
const (
	CodeValidation          = validation.ErrorCode
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeRequestTooLarge     = "REQUEST_TOO_LARGE"
	CodeNotFound            = "NOT_FOUND"
	CodeMethodNotAllowed    = "METHOD_NOT_ALLOWED"
	CodeNoColumns           = "NO_COLUMNS"
	CodeNoRows              = "NO_ROWS"
	CodeSecretLookup        = "SECRET_LOOKUP_FAILED"
	CodeUpstreamTransport   = "UPSTREAM_TRANSPORT_ERROR"
	CodeUpstreamHTTP        = "UPSTREAM_HTTP_ERROR"
	CodeUpstreamApplication = "UPSTREAM_APPLICATION_ERROR"
	CodeMalformedResponse   = "MALFORMED_RESPONSE"
	CodeConfiguration       = "CONFIGURATION_ERROR"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	CodeInternal            = "INTERNAL_ERROR"
)

// msgInternal is returned for failures that carry no caller-safe message.
const msgInternal = "An error occurred while processing the request."

// fetchErrorResponse maps a report fetch failure to its HTTP status, error
// code and caller-facing message. Missing data is 404, an open breaker is
// 503 and everything else is 500.
func fetchErrorResponse(err error) (status int, code, message string) {
	var fe *alma.FetchError
	if !errors.As(err, &fe) {
		return http.StatusInternalServerError, CodeInternal, msgInternal
	}

	message = fe.Message
	if message == "" {
		message = msgInternal
	}

	switch fe.Kind {
	case alma.KindNoColumns:
		return http.StatusNotFound, CodeNoColumns, message
	case alma.KindNoRows:
		return http.StatusNotFound, CodeNoRows, message
	case alma.KindUnavailable:
		return http.StatusServiceUnavailable, CodeUpstreamUnavailable, message
	case alma.KindConfig:
		return http.StatusInternalServerError, CodeConfiguration, message
	case alma.KindSecret:
		return http.StatusInternalServerError, CodeSecretLookup, message
	case alma.KindTransport:
		return http.StatusInternalServerError, CodeUpstreamTransport, message
	case alma.KindUpstreamHTTP:
		return http.StatusInternalServerError, CodeUpstreamHTTP, message
	case alma.KindUpstreamApplication:
		return http.StatusInternalServerError, CodeUpstreamApplication, message
	case alma.KindMalformed:
		return http.StatusInternalServerError, CodeMalformedResponse, message
	default:
		return http.StatusInternalServerError, CodeInternal, msgInternal
	}
}
