// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

package secrets

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/almareport/internal/logging"
	"github.com/tomtom215/almareport/internal/metrics"
)

// Lookup outcomes recorded in secret_lookups_total.
const (
	outcomeOK       = "ok"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
)

// instrumentedProvider bounds each lookup with a timeout and records
// metrics and logs around the wrapped Provider. Values are never logged.
type instrumentedProvider struct {
	next    Provider
	timeout time.Duration
}

// Instrument wraps p with a per-lookup timeout, Prometheus metrics and
// structured logging. A zero timeout leaves the caller's deadline in charge.
func Instrument(p Provider, timeout time.Duration) Provider {
	return &instrumentedProvider{next: p, timeout: timeout}
}

// Name returns the wrapped provider's name.
func (p *instrumentedProvider) Name() string {
	return p.next.Name()
}

// GetSecret delegates to the wrapped provider.
func (p *instrumentedProvider) GetSecret(ctx context.Context, name string) (string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	start := time.Now()
	value, err := p.next.GetSecret(ctx, name)
	elapsed := time.Since(start)

	logger := logging.CtxWith(ctx).
		Str("component", "secrets").
		Str("provider", p.next.Name()).
		Str("secret", name).
		Logger()

	switch {
	case err == nil:
		metrics.RecordSecretLookup(p.next.Name(), outcomeOK, elapsed)
		logger.Debug().Dur("duration", elapsed).Msg("Secret resolved")
	case errors.Is(err, ErrSecretNotFound):
		metrics.RecordSecretLookup(p.next.Name(), outcomeNotFound, elapsed)
		logger.Warn().Dur("duration", elapsed).Msg("Secret not found")
	default:
		metrics.RecordSecretLookup(p.next.Name(), outcomeError, elapsed)
		logger.Error().Err(err).Dur("duration", elapsed).Msg("Secret lookup failed")
	}

	return value, err
}
