// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

package alma

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tomtom215/almareport/internal/config"
	"github.com/tomtom215/almareport/internal/logging"
	"github.com/tomtom215/almareport/internal/metrics"
)

const (
	// maxErrorBodyBytes bounds how much of a non-2xx body is read into the error message.
	maxErrorBodyBytes = 64 << 10

	// maxReportBytes bounds a successful report body. 1000 wide rows stay well below it.
	maxReportBytes = 64 << 20

	// Outcomes recorded in alma_upstream_requests_total.
	outcomeOK        = "ok"
	outcomeHTTPError = "http_error"
	outcomeTransport = "transport_error"
	outcomeRejected  = "rejected"
)

// Client performs the single outbound call to the Alma Analytics API.
// It never retries.
type Client struct {
	client   *http.Client
	limit    int
	breakers *breakerSet // nil when disabled
}

// NewClient creates an Alma client from config.
func NewClient(cfg config.AlmaConfig) *Client {
	return newClientWithHTTP(cfg, &http.Client{Timeout: cfg.Timeout})
}

func newClientWithHTTP(cfg config.AlmaConfig, httpClient *http.Client) *Client {
	c := &Client{
		client: httpClient,
		limit:  cfg.Limit,
	}
	if c.limit <= 0 {
		c.limit = 1000
	}
	if cfg.CircuitBreaker.Enabled {
		c.breakers = newBreakerSet(cfg.CircuitBreaker)
	}
	return c
}

// ExecuteCall issues exactly one GET to endpoint with the report query and
// returns the raw body. Non-2xx responses become KindUpstreamHTTP errors, or
// KindUpstreamApplication when the body carries an Alma <error> element.
func (c *Client) ExecuteCall(ctx context.Context, endpoint, reportPath, apiKey string) ([]byte, error) {
	var breaker *circuitBreaker
	if c.breakers != nil {
		breaker = c.breakers.forEndpoint(endpoint)
	}
	if breaker == nil {
		return c.do(ctx, endpoint, reportPath, apiKey)
	}

	body, err := breaker.execute(func() ([]byte, error) {
		return c.do(ctx, endpoint, reportPath, apiKey)
	})
	if KindOf(err) == KindUnavailable {
		metrics.RecordAlmaCall(outcomeRejected, 0)
	}
	return body, err
}

func (c *Client) do(ctx context.Context, endpoint, reportPath, apiKey string) ([]byte, error) {
	reqURL := endpoint + "?" + reportQuery(c.limit, reportPath, apiKey)
	logger := logging.CtxWith(ctx).Str("component", "alma").Str("url", logging.RedactURL(reqURL)).Logger()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, newError(KindConfig, "Invalid Alma API URL.", redactURLError(err))
	}
	req.Header.Set("Accept", "application/xml")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		metrics.RecordAlmaCall(outcomeTransport, time.Since(start))
		err = redactURLError(err)
		logger.Warn().Err(err).Dur("duration", time.Since(start)).Msg("Alma request failed")
		return nil, newError(KindTransport, msgTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		elapsed := time.Since(start)
		metrics.RecordAlmaCall(outcomeHTTPError, elapsed)
		body := readBodyForError(resp.Body)
		if apiKey != "" {
			// Some gateways echo the request URL back.
			body = bytes.ReplaceAll(body, []byte(apiKey), []byte(logging.MaskSecret(apiKey)))
		}
		logger.Warn().Int("status", resp.StatusCode).Dur("duration", elapsed).Msg("Alma returned non-2xx status")
		return nil, upstreamStatusError(resp.StatusCode, body)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReportBytes+1))
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordAlmaCall(outcomeTransport, elapsed)
		err = redactURLError(err)
		logger.Warn().Err(err).Msg("Reading Alma response failed")
		return nil, newError(KindTransport, msgTransport, err)
	}
	metrics.RecordAlmaCall(outcomeOK, elapsed)

	if len(body) > maxReportBytes {
		return nil, newError(KindMalformed, msgMalformed, fmt.Errorf("response exceeds %d bytes", maxReportBytes))
	}

	logger.Debug().Int("status", resp.StatusCode).Int("bytes", len(body)).Dur("duration", elapsed).Msg("Alma response received")
	return body, nil
}

// upstreamStatusError converts a non-2xx response into a FetchError.
func upstreamStatusError(status int, body []byte) *FetchError {
	if msg, ok := findUpstreamError(body); ok {
		return &FetchError{
			Kind:     KindUpstreamApplication,
			Message:  msg,
			Upstream: status,
		}
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		text = http.StatusText(status)
	}
	return &FetchError{
		Kind:     KindUpstreamHTTP,
		Message:  fmt.Sprintf("Alma API returned HTTP %d: %s", status, text),
		Upstream: status,
	}
}

// readBodyForError reads at most maxErrorBodyBytes of an error response.
func readBodyForError(body io.Reader) []byte {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBodyBytes))
	if err != nil && len(data) == 0 {
		return nil
	}
	return bytes.ToValidUTF8(data, []byte("\uFFFD"))
}

// redactURLError strips the API key from the URL embedded in *url.Error.
func redactURLError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return &url.Error{Op: ue.Op, URL: logging.RedactURL(ue.URL), Err: ue.Err}
	}
	return err
}
