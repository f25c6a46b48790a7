// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

package alma

import (
	"strconv"
	"strings"
)

// queryParam is one key/value pair of an ordered query string.
type queryParam struct {
	key   string
	value string
}

// reportQuery builds the query string for a report call.
// Parameter order is fixed: limit, col_names, path, apikey.
func reportQuery(limit int, reportPath, apiKey string) string {
	return encodeQuery([]queryParam{
		{"limit", strconv.Itoa(limit)},
		{"col_names", "true"},
		{"path", reportPath},
		{"apikey", apiKey},
	})
}

// encodeQuery form-encodes params in order.
func encodeQuery(params []queryParam) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(escapeQueryComponent(p.key))
		b.WriteByte('=')
		b.WriteString(escapeQueryComponent(p.value))
	}
	return b.String()
}

// escapeQueryComponent percent-encodes s like url.QueryEscape except that
// ':' and '%' pass through unchanged. Report paths arrive partly encoded
// (e.g. "%20") and Alma expects those sequences verbatim.
func escapeQueryComponent(s string) string {
	const upperhex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isUnreserved(c), c == ':', c == '%':
			b.WriteByte(c)
		case c == ' ':
			b.WriteByte('+')
		default:
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&15])
		}
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	return 'A' <= c && c <= 'Z' ||
		'a' <= c && c <= 'z' ||
		'0' <= c && c <= '9' ||
		c == '-' || c == '_' || c == '.' || c == '~'
}
