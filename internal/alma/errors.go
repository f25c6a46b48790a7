// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

package alma

import (
	"errors"
	"fmt"
)

// Kind classifies why a report fetch failed.
type Kind int

// Failure kinds. Each one aborts the whole fetch.
const (
	KindConfig Kind = iota + 1
	KindSecret
	KindTransport
	KindUpstreamHTTP
	KindUpstreamApplication
	KindNoColumns
	KindNoRows
	KindMalformed
	KindUnavailable
)

// String returns the snake_case name used in logs and metric labels.
func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config_error"
	case KindSecret:
		return "secret_error"
	case KindTransport:
		return "transport_error"
	case KindUpstreamHTTP:
		return "upstream_http_error"
	case KindUpstreamApplication:
		return "upstream_application_error"
	case KindNoColumns:
		return "no_columns"
	case KindNoRows:
		return "no_rows"
	case KindMalformed:
		return "malformed_response"
	case KindUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Fixed messages returned to callers.
const (
	msgNoColumns   = "No columns found in the response."
	msgNoRows      = "No rows found in the response."
	msgSecret      = "Failed to retrieve the API key for the institution."
	msgTransport   = "Failed to reach the Alma Analytics API."
	msgUnavailable = "The Alma Analytics API is temporarily unavailable."
	msgMalformed   = "The Alma Analytics API returned a malformed response."
)

// Sentinels for errors.Is. They match any *FetchError of the same Kind.
var (
	ErrConfig              = &FetchError{Kind: KindConfig}
	ErrSecret              = &FetchError{Kind: KindSecret}
	ErrTransport           = &FetchError{Kind: KindTransport}
	ErrUpstreamHTTP        = &FetchError{Kind: KindUpstreamHTTP}
	ErrUpstreamApplication = &FetchError{Kind: KindUpstreamApplication}
	ErrNoColumns           = &FetchError{Kind: KindNoColumns}
	ErrNoRows              = &FetchError{Kind: KindNoRows}
	ErrMalformed           = &FetchError{Kind: KindMalformed}
	ErrUnavailable         = &FetchError{Kind: KindUnavailable}
)

// FetchError is the typed failure of a report fetch.
//
// Message is safe to return to API callers. Err carries the underlying cause
// for logs and never contains the API key.
type FetchError struct {
	Kind     Kind
	Message  string
	Upstream int // HTTP status returned by Alma, 0 when no response was received
	Err      error
}

func (e *FetchError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a FetchError of the same Kind.
func (e *FetchError) Is(target error) bool {
	var t *FetchError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the Kind of err, or 0 when err is not a *FetchError.
func KindOf(err error) Kind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}

func newError(kind Kind, message string, err error) *FetchError {
	return &FetchError{Kind: kind, Message: message, Err: err}
}
