// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

package config

import "strings"

// parseMapString parses a comma-separated key=value list into a map.
// Example: STATIC_SECRETS="01UNI_INST-ALMA-API-KEY=l8xx...,02UNI_INST-ALMA-API-KEY=l7xx..."
// Returns an empty map for an empty input. Entries without '=' or with an empty key are skipped.
func parseMapString(value string) map[string]string {
	result := make(map[string]string)
	for _, item := range strings.Split(value, ",") {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		// Split on first = only (value may contain = characters)
		parts := strings.SplitN(trimmed, "=", 2)
		if len(parts) == 2 {
			k := strings.TrimSpace(parts[0])
			v := strings.TrimSpace(parts[1])
			if k != "" {
				result[k] = v
			}
		}
	}
	return result
}
