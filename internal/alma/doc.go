// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

/*
Package alma fetches Ex Libris Alma Analytics reports and converts them to
column maps and rows.

# Pipeline

Fetcher.Fetch runs four sequential stages and aborts on the first failure:

 1. BuildURL: https://api-{region}.hosted.exlibrisgroup.com/almaws/v1/analytics/reports,
    with the host suffixed by .cn for region "cn" (or alma.base_url when set)
 2. FetchSecret: {iz}-ALMA-API-KEY from the configured secrets.Provider
 3. ExecuteCall: one GET with limit, col_names, path and apikey
 4. ParseResponse: streaming XML decode into a Report

Nothing is cached and nothing is retried. Two identical fetches make two
secret lookups and two upstream calls.

# Query Encoding

Parameters are form-encoded in a fixed order. ':' and '%' in the report
path pass through literally so pre-encoded paths such as
"/shared/Uni%20Library/Reports/Loans" reach Alma unchanged.

# Parsing

Schema elements (xsd:element) give the column map from the name attribute
to the heading attribute, saw-sql:columnHeading by default or the plain
type attribute when alma.heading_attribute is "type". Row elements are
matched case-insensitively and each child's local name is looked up in the
column map; unknown children are dropped. An <error> element anywhere in
the body fails the fetch with the element's text.

# Errors

Every failure is a *FetchError with a Kind. Sentinels such as ErrNoRows and
ErrSecret match by Kind through errors.Is:

	report, err := fetcher.Fetch(ctx, req)
	switch {
	case errors.Is(err, alma.ErrNoRows):
	    // 404
	case err != nil:
	    // 500 or 503
	}

FetchError.Message is safe to show to API callers. The API key never
appears in errors or logs; request URLs go through logging.RedactURL.

# Circuit Breaker

When alma.circuit_breaker.enabled is true the outbound call runs through
sony/gobreaker, one breaker per upstream host. Transport failures and 5xx
responses count as failures; unknown hosts and 4xx responses do not. While a
host's breaker is open, calls to that host fail immediately with
KindUnavailable. Other hosts are unaffected.
*/
package alma
