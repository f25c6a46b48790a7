// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Context keys for logging.
type contextKey string

const (
	// requestIDKey is the context key for HTTP request IDs.
	requestIDKey contextKey = "request_id"

	// institutionKey is the context key for the institution code of a report request.
	institutionKey contextKey = "iz"

	// regionKey is the context key for the Alma region of a report request.
	regionKey contextKey = "region"
)

// GenerateRequestID creates a new unique request ID.
func GenerateRequestID() string {
	return uuid.New().String()
}

// ContextWithRequestID returns a new context with the given request ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext retrieves the request ID from context.
// Returns empty string if not present.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithReport tags the context with the institution and region of a
// report request so every log line of the fetch carries them.
func ContextWithReport(ctx context.Context, iz, region string) context.Context {
	ctx = context.WithValue(ctx, institutionKey, iz)
	return context.WithValue(ctx, regionKey, region)
}

// reportFromContext returns the institution and region stored by ContextWithReport.
func reportFromContext(ctx context.Context) (iz, region string) {
	iz, _ = ctx.Value(institutionKey).(string)
	region, _ = ctx.Value(regionKey).(string)
	return iz, region
}

// Ctx returns a logger with context values (request_id, iz, region) automatically added.
//
//	logging.Ctx(ctx).Info().Int("rows", n).Msg("Report fetched")
//	// Output: {"level":"info","request_id":"uuid","iz":"01UNI_INST","region":"eu","rows":42,...}
func Ctx(ctx context.Context) *zerolog.Logger {
	logger := CtxWith(ctx).Logger()
	return &logger
}

// CtxWith returns a logger context builder with context values pre-populated.
//
//	logger := logging.CtxWith(ctx).Str("component", "secrets").Logger()
func CtxWith(ctx context.Context) zerolog.Context {
	logCtx := With()

	if requestID := RequestIDFromContext(ctx); requestID != "" {
		logCtx = logCtx.Str("request_id", requestID)
	}

	iz, region := reportFromContext(ctx)
	if iz != "" {
		logCtx = logCtx.Str("iz", iz)
	}
	if region != "" {
		logCtx = logCtx.Str("region", region)
	}

	return logCtx
}

// WithComponent creates a child logger with a component field.
//
//	secretsLogger := logging.WithComponent("secrets")
func WithComponent(component string) zerolog.Logger {
	return With().Str("component", component).Logger()
}
