// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/almareport/internal/alma"
	"github.com/tomtom215/almareport/internal/config"
	"github.com/tomtom215/almareport/internal/models"
	"github.com/tomtom215/almareport/internal/secrets"
)

const testAPIKey = "l8xx0123456789abcdef"

const testReportXML = `<?xml version="1.0" encoding="UTF-8"?>
<report><QueryResult><IsFinished>true</IsFinished><ResultXml>
<rowset xmlns="urn:schemas-microsoft-com:xml-analysis:rowset">
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema" xmlns:saw-sql="urn:saw-sql">
<xsd:complexType name="Row"><xsd:sequence>
<xsd:element name="Column0" type="xsd:string" saw-sql:columnHeading="Library"/>
<xsd:element name="Column1" type="xsd:int" saw-sql:columnHeading="Loans"/>
</xsd:sequence></xsd:complexType>
</xsd:schema>
<Row><Column0>Main Library</Column0><Column1>1024</Column1></Row>
<Row><Column0>Law Library</Column0><Column1>311</Column1></Row>
</rowset></ResultXml></QueryResult></report>`

// fakeAlmaServer serves a fixed response on the reports path and counts hits.
func fakeAlmaServer(t *testing.T, status int, body string, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		if r.URL.Query().Get("apikey") != testAPIKey {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte("<web_service_result><errorList><error><errorMessage>Invalid API Key</errorMessage></error></errorList></web_service_result>"))
			return
		}
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// testConfig returns a config pointing the Alma client at baseURL.
func testConfig(baseURL string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{MaxBodyBytes: 4096},
		Alma: config.AlmaConfig{
			BaseURL:          baseURL,
			Limit:            1000,
			HeadingAttribute: config.HeadingColumnHeading,
			Timeout:          5 * time.Second,
		},
	}
}

// newTestRouter wires the full router against a fake Alma and the given provider.
func newTestRouter(t *testing.T, almaURL string, provider secrets.Provider) http.Handler {
	t.Helper()
	cfg := testConfig(almaURL)
	fetcher := alma.NewFetcher(cfg.Alma, provider)
	return NewRouter(NewHandler(fetcher, cfg), NewChiMiddlewareFromOrigins([]string{"https://library.example.edu"})).SetupChi()
}

func staticKeys() secrets.Provider {
	return secrets.NewStaticProvider(map[string]string{"01UNI_INST-ALMA-API-KEY": testAPIKey})
}

func postReport(handler http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/report", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

// successBody mirrors the success envelope with a typed data field.
type successBody struct {
	Status   string            `json:"status"`
	Data     models.ReportData `json:"data"`
	Metadata models.Metadata   `json:"metadata"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.APIError {
	t.Helper()
	var apiErr models.APIError
	if err := json.Unmarshal(w.Body.Bytes(), &apiErr); err != nil {
		t.Fatalf("error body is not JSON: %v (%s)", err, w.Body.String())
	}
	return apiErr
}
