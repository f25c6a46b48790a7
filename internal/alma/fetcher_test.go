// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

package alma

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/almareport/internal/config"
	"github.com/tomtom215/almareport/internal/metrics"
	"github.com/tomtom215/almareport/internal/models"
	"github.com/tomtom215/almareport/internal/secrets"
)

// countingProvider records lookups and serves a fixed map or a fixed error.
type countingProvider struct {
	mu      sync.Mutex
	lookups []string
	values  map[string]string
	err     error
}

func (p *countingProvider) Name() string { return "counting" }

func (p *countingProvider) GetSecret(_ context.Context, name string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lookups = append(p.lookups, name)
	if p.err != nil {
		return "", p.err
	}
	v, ok := p.values[name]
	if !ok {
		return "", secrets.ErrSecretNotFound
	}
	return v, nil
}

func newTestFetcher(t *testing.T, status int, body string, provider secrets.Provider) (*Fetcher, *fakeAlma) {
	t.Helper()
	alma := newFakeAlma(t, status, body)
	return NewFetcher(testAlmaConfig(alma.server.URL), provider), alma
}

func validRequest() models.ReportRequest {
	return models.ReportRequest{
		Path:   "/shared/Uni%20Library/Reports/Loans",
		IZ:     "01UNI_INST",
		Region: "eu",
	}
}

func TestFetchSuccess(t *testing.T) {
	provider := &countingProvider{values: map[string]string{"01UNI_INST-ALMA-API-KEY": testAPIKey}}
	fetcher, alma := newTestFetcher(t, http.StatusOK, reportXML, provider)

	before := testutil.ToFloat64(metrics.ReportFetchTotal.WithLabelValues("success"))

	report, err := fetcher.Fetch(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if len(report.Rows) != 2 || report.Rows[0]["Title"] != "Moby Dick" {
		t.Errorf("Rows = %v, want two rows starting with Moby Dick", report.Rows)
	}
	if alma.apiKeySeen.Load().(string) != testAPIKey {
		t.Errorf("apikey sent = %q, want %q", alma.apiKeySeen.Load(), testAPIKey)
	}
	if !reflect.DeepEqual(provider.lookups, []string{"01UNI_INST-ALMA-API-KEY"}) {
		t.Errorf("lookups = %v, want [01UNI_INST-ALMA-API-KEY]", provider.lookups)
	}
	if got := testutil.ToFloat64(metrics.ReportFetchTotal.WithLabelValues("success")); got != before+1 {
		t.Errorf("report_fetch_total{success} = %v, want %v", got, before+1)
	}
}

func TestFetchIsNotCached(t *testing.T) {
	provider := &countingProvider{values: map[string]string{"01UNI_INST-ALMA-API-KEY": testAPIKey}}
	fetcher, alma := newTestFetcher(t, http.StatusOK, reportXML, provider)

	first, err := fetcher.Fetch(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("first Fetch() error = %v", err)
	}
	second, err := fetcher.Fetch(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("second Fetch() error = %v", err)
	}

	if alma.hits.Load() != 2 {
		t.Errorf("upstream hits = %d, want 2", alma.hits.Load())
	}
	if len(provider.lookups) != 2 {
		t.Errorf("secret lookups = %d, want 2", len(provider.lookups))
	}
	if !reflect.DeepEqual(first.Rows, second.Rows) {
		t.Errorf("rows differ between identical fetches: %v vs %v", first.Rows, second.Rows)
	}
}

func TestFetchSecretOutage(t *testing.T) {
	provider := &countingProvider{err: errors.New("DefaultAzureCredential: failed to acquire a token")}
	fetcher, alma := newTestFetcher(t, http.StatusOK, reportXML, provider)

	report, err := fetcher.Fetch(context.Background(), validRequest())
	if report != nil {
		t.Errorf("Fetch() returned partial report %+v", report)
	}
	if !errors.Is(err, ErrSecret) {
		t.Fatalf("Fetch() error = %v, want ErrSecret", err)
	}
	if alma.hits.Load() != 0 {
		t.Errorf("upstream hits = %d, want 0 after secret failure", alma.hits.Load())
	}
	if len(provider.lookups) != 1 {
		t.Errorf("secret lookups = %d, want exactly 1 (no retries)", len(provider.lookups))
	}
}

func TestFetchMissingSecret(t *testing.T) {
	provider := &countingProvider{values: map[string]string{}}
	fetcher, _ := newTestFetcher(t, http.StatusOK, reportXML, provider)

	_, err := fetcher.Fetch(context.Background(), validRequest())
	if !errors.Is(err, ErrSecret) {
		t.Fatalf("Fetch() error = %v, want ErrSecret", err)
	}
	if !errors.Is(err, secrets.ErrSecretNotFound) {
		t.Errorf("Fetch() error = %v, want it to wrap secrets.ErrSecretNotFound", err)
	}
}

func TestFetchWithoutProvider(t *testing.T) {
	fetcher, alma := newTestFetcher(t, http.StatusOK, reportXML, nil)

	_, err := fetcher.Fetch(context.Background(), validRequest())
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("Fetch() error = %v, want ErrConfig", err)
	}
	if alma.hits.Load() != 0 {
		t.Errorf("upstream hits = %d, want 0", alma.hits.Load())
	}
}

func TestFetchFailureKinds(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"application error at 200", http.StatusOK, `<report><error>Bad request</error></report>`, ErrUpstreamApplication},
		{"no columns", http.StatusOK, `<report><QueryResult/></report>`, ErrNoColumns},
		{"no rows", http.StatusOK, `<r><xsd:element name="Column0" saw-sql:columnHeading="T"/></r>`, ErrNoRows},
		{"upstream 401", http.StatusUnauthorized, "Unauthorized: invalid API key", ErrUpstreamHTTP},
		{"malformed", http.StatusOK, `<report>`, ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &countingProvider{values: map[string]string{"01UNI_INST-ALMA-API-KEY": testAPIKey}}
			fetcher, _ := newTestFetcher(t, tt.status, tt.body, provider)

			kind := KindOf(tt.want)
			before := testutil.ToFloat64(metrics.ReportFetchTotal.WithLabelValues(kind.String()))

			report, err := fetcher.Fetch(context.Background(), validRequest())
			if report != nil {
				t.Errorf("Fetch() returned partial report %+v", report)
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("Fetch() error = %v, want %v", err, tt.want)
			}

			if got := testutil.ToFloat64(metrics.ReportFetchTotal.WithLabelValues(kind.String())); got != before+1 {
				t.Errorf("report_fetch_total{%s} = %v, want %v", kind, got, before+1)
			}
		})
	}
}

func TestFetcherBuildURL(t *testing.T) {
	regional := NewFetcher(config.AlmaConfig{}, nil)
	if got := regional.BuildURL("cn"); got != BuildURL("cn") {
		t.Errorf("BuildURL(cn) = %q, want %q", got, BuildURL("cn"))
	}

	proxied := NewFetcher(config.AlmaConfig{BaseURL: "http://egress:3128"}, nil)
	if got := proxied.BuildURL("eu"); got != "http://egress:3128"+reportsPath {
		t.Errorf("BuildURL(eu) = %q, want base override", got)
	}
}

func TestFetcherDefaultsHeadingAttribute(t *testing.T) {
	fetcher := NewFetcher(config.AlmaConfig{}, nil)
	report, err := fetcher.ParseResponse([]byte(reportXML))
	if err != nil {
		t.Fatalf("ParseResponse() error = %v", err)
	}
	if _, ok := report.Rows[0]["Title"]; !ok {
		t.Errorf("Rows[0] = %v, want columnHeading headings by default", report.Rows[0])
	}
}

func TestFetcherHealthChecks(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.AlmaConfig
		provider  secrets.Provider
		wantReady bool
		want      map[string]string
	}{
		{
			name:      "static provider without breaker",
			provider:  secrets.NewStaticProvider(nil),
			wantReady: true,
			want:      map[string]string{"secrets_provider": "static", "alma_circuit_breaker": "disabled"},
		},
		{
			name:      "breaker enabled",
			cfg:       config.AlmaConfig{CircuitBreaker: breakerConfig(time.Minute)},
			provider:  secrets.NewStaticProvider(nil),
			wantReady: true,
			want:      map[string]string{"secrets_provider": "static", "alma_circuit_breaker": "closed"},
		},
		{
			name:      "no provider",
			wantReady: false,
			want:      map[string]string{"secrets_provider": "not_configured", "alma_circuit_breaker": "disabled"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checks, ready := NewFetcher(tt.cfg, tt.provider).HealthChecks()
			if ready != tt.wantReady {
				t.Errorf("ready = %v, want %v", ready, tt.wantReady)
			}
			if !reflect.DeepEqual(checks, tt.want) {
				t.Errorf("checks = %v, want %v", checks, tt.want)
			}
		})
	}
}
