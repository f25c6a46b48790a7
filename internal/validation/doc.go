// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

// Package validation provides struct validation using go-playground/validator v10.
//
// A thread-safe singleton validator reports field names from the json tag and
// registers one custom rule:
//   - hostlabel: the value is a single DNS label (used for the Alma region,
//     which becomes part of the upstream hostname)
//
// # Quick Start
//
//	type ReportRequest struct {
//	    Path   string `json:"path" validate:"required,max=2048"`
//	    IZ     string `json:"iz" validate:"required,max=128,printascii"`
//	    Region string `json:"region" validate:"required,hostlabel"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    // apiErr.Code == "VALIDATION_ERROR", apiErr.Message == "path is required; region is required"
//	}
//
// # Thread Safety
//
// GetValidator initializes once via sync.Once; validator.Validate is safe for
// concurrent use and caches struct metadata.
package validation
