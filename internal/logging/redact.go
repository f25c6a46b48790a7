// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

package logging

import "strings"

// redactedValue replaces secrets in log output.
const redactedValue = "REDACTED"

// RedactURL masks the apikey query parameter of an Alma request URL.
// The URL is treated as plain text because report paths may carry literal
// percent signs that are not valid escapes.
//
//	RedactURL("https://api-eu.../reports?path=/x&apikey=l8xx") // "...&apikey=REDACTED"
func RedactURL(rawURL string) string {
	var b strings.Builder
	b.Grow(len(rawURL))

	rest := rawURL
	for {
		idx := indexParam(rest, "apikey=")
		if idx < 0 {
			b.WriteString(rest)
			return b.String()
		}
		b.WriteString(rest[:idx+len("apikey=")])
		b.WriteString(redactedValue)

		rest = rest[idx+len("apikey="):]
		if amp := strings.IndexByte(rest, '&'); amp >= 0 {
			rest = rest[amp:]
		} else {
			rest = ""
		}
	}
}

// indexParam finds name at the start of a query parameter (after '?' or '&').
func indexParam(s, name string) int {
	offset := 0
	for {
		idx := strings.Index(s[offset:], name)
		if idx < 0 {
			return -1
		}
		idx += offset
		if idx > 0 && (s[idx-1] == '?' || s[idx-1] == '&') {
			return idx
		}
		offset = idx + len(name)
	}
}

// MaskSecret masks a secret value, showing only the first and last 4 characters.
// Short values are fully masked.
//
//	MaskSecret("l8xx0123456789abcdef") // "l8xx...cdef"
func MaskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 12 {
		return "***"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}
