// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

package alma

import (
	"context"
	"time"

	"github.com/tomtom215/almareport/internal/config"
	"github.com/tomtom215/almareport/internal/logging"
	"github.com/tomtom215/almareport/internal/metrics"
	"github.com/tomtom215/almareport/internal/models"
	"github.com/tomtom215/almareport/internal/secrets"
)

// Fetcher runs the report pipeline: build URL, fetch secret, call Alma, parse.
// It holds only immutable configuration and is safe for concurrent use.
type Fetcher struct {
	client      *Client
	secrets     secrets.Provider
	baseURL     string
	headingAttr string
}

// NewFetcher creates a Fetcher. provider may be nil, in which case every
// fetch fails with KindConfig.
func NewFetcher(cfg config.AlmaConfig, provider secrets.Provider) *Fetcher {
	return newFetcherWithClient(cfg, provider, NewClient(cfg))
}

func newFetcherWithClient(cfg config.AlmaConfig, provider secrets.Provider, client *Client) *Fetcher {
	headingAttr := cfg.HeadingAttribute
	if headingAttr == "" {
		headingAttr = config.HeadingColumnHeading
	}
	return &Fetcher{
		client:      client,
		secrets:     provider,
		baseURL:     cfg.BaseURL,
		headingAttr: headingAttr,
	}
}

// BuildURL returns the reports endpoint for region, honoring the configured base URL.
func (f *Fetcher) BuildURL(region string) string {
	return buildURLWithBase(f.baseURL, region)
}

// FetchSecret resolves the Alma API key of an institution.
func (f *Fetcher) FetchSecret(ctx context.Context, iz string) (string, error) {
	if f.secrets == nil {
		return "", newError(KindConfig, "No secrets provider is configured.", nil)
	}
	key, err := f.secrets.GetSecret(ctx, secrets.SecretName(iz))
	if err != nil {
		return "", newError(KindSecret, msgSecret, err)
	}
	return key, nil
}

// ExecuteCall performs the outbound report call.
func (f *Fetcher) ExecuteCall(ctx context.Context, endpoint, reportPath, apiKey string) ([]byte, error) {
	return f.client.ExecuteCall(ctx, endpoint, reportPath, apiKey)
}

// ParseResponse parses a report body with the configured heading attribute.
func (f *Fetcher) ParseResponse(body []byte) (*Report, error) {
	return ParseResponse(body, f.headingAttr)
}

// Fetch retrieves and parses one report. Any failure aborts the fetch and is
// returned as a *FetchError; there are no partial results.
func (f *Fetcher) Fetch(ctx context.Context, req models.ReportRequest) (*Report, error) {
	ctx = logging.ContextWithReport(ctx, req.IZ, req.Region)
	start := time.Now()

	report, err := f.fetch(ctx, req)
	if err != nil {
		kind := KindOf(err)
		metrics.RecordReportFetch(kind.String(), 0)

		event := logging.Ctx(ctx).Warn()
		if kind != KindNoColumns && kind != KindNoRows {
			event = logging.Ctx(ctx).Error()
		}
		event.Err(err).
			Str("kind", kind.String()).
			Str("path", req.Path).
			Dur("duration", time.Since(start)).
			Msg("Report fetch failed")
		return nil, err
	}

	metrics.RecordReportFetch("success", len(report.Rows))
	logging.Ctx(ctx).Info().
		Str("path", req.Path).
		Int("columns", len(report.Columns)).
		Int("rows", len(report.Rows)).
		Bool("finished", report.Finished).
		Dur("duration", time.Since(start)).
		Msg("Report fetched")

	return report, nil
}

func (f *Fetcher) fetch(ctx context.Context, req models.ReportRequest) (*Report, error) {
	endpoint := f.BuildURL(req.Region)

	apiKey, err := f.FetchSecret(ctx, req.IZ)
	if err != nil {
		return nil, err
	}
	logging.Ctx(ctx).Debug().Str("apikey", logging.MaskSecret(apiKey)).Msg("API key resolved")

	body, err := f.ExecuteCall(ctx, endpoint, req.Path, apiKey)
	if err != nil {
		return nil, err
	}

	return f.ParseResponse(body)
}

// HealthChecks reports the secrets provider and breaker state for readiness
// checks. The fetcher is ready once a secrets provider is configured; an
// open breaker is reported but does not make the service unready.
func (f *Fetcher) HealthChecks() (checks map[string]string, ready bool) {
	checks = map[string]string{
		"secrets_provider":     "not_configured",
		"alma_circuit_breaker": "disabled",
	}
	if f.secrets != nil {
		checks["secrets_provider"] = f.secrets.Name()
	}
	if f.client.breakers != nil {
		checks["alma_circuit_breaker"] = stateToString(f.client.breakers.summary())
	}
	return checks, f.secrets != nil
}
