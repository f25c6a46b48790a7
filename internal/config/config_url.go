// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

package config

import (
	"fmt"
	"net/url"
)

// validateBaseURL checks an origin that replaces the regional Alma host.
// The reports path and query are appended to it, so it must be a bare
// scheme://host[:port] with an optional trailing slash. Credentials are
// rejected because the URL ends up in logs.
func validateBaseURL(rawURL, fieldName string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	switch {
	case u.Scheme != "http" && u.Scheme != "https":
		return fmt.Errorf("%s scheme must be http or https, got: %q", fieldName, u.Scheme)
	case u.Host == "":
		return fmt.Errorf("%s host is required", fieldName)
	case u.User != nil:
		return fmt.Errorf("%s must not contain credentials", fieldName)
	case u.Path != "" && u.Path != "/":
		return fmt.Errorf("%s should be an origin only, remove path: %s", fieldName, u.Path)
	case u.RawQuery != "" || u.Fragment != "":
		return fmt.Errorf("%s should not contain a query or fragment", fieldName)
	}
	return nil
}
