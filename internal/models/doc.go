// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

/*
Package models defines the JSON wire types of the Almareport API.

Key Components:

  - ReportRequest: the {path, iz, region} body of POST /report, with
    validator tags checked by the validation package
  - ReportData: columns, rows and the finished flag of a fetched report
  - APIResponse and Metadata: the success envelope
  - APIError: the error envelope
  - HealthStatus: liveness and readiness check bodies

Field names are part of the public contract and must not change.
*/
package models
