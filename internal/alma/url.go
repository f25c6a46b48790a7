// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

package alma

import "strings"

const (
	// chinaRegion is hosted under the .com.cn domain.
	chinaRegion = "cn"

	reportsPath = "/almaws/v1/analytics/reports"
)

// BuildURL returns the Analytics reports endpoint for an Alma region.
// The region is not validated; an unknown region yields a host that will
// not resolve.
//
//	BuildURL("eu") // https://api-eu.hosted.exlibrisgroup.com/almaws/v1/analytics/reports
//	BuildURL("cn") // https://api-cn.hosted.exlibrisgroup.com.cn/almaws/v1/analytics/reports
func BuildURL(region string) string {
	host := "https://api-" + region + ".hosted.exlibrisgroup.com"
	if region == chinaRegion {
		host += ".cn"
	}
	return host + reportsPath
}

// buildURLWithBase uses baseURL in place of the regional host when it is set.
func buildURLWithBase(baseURL, region string) string {
	if baseURL == "" {
		return BuildURL(region)
	}
	return strings.TrimRight(baseURL, "/") + reportsPath
}
