// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

package models

// ReportRequest is the body of POST /report.
//
// Example:
//
//	{
//	  "path": "/shared/University of Example/Reports/Loans by Library",
//	  "iz": "01UNI_INST",
//	  "region": "eu"
//	}
//
// Path is forwarded to Alma verbatim (colons and percent signs are never
// escaped). IZ selects the {iz}-ALMA-API-KEY secret. Region selects the
// api-{region}.hosted.exlibrisgroup.com host and must be a single DNS label.
type ReportRequest struct {
	Path   string `json:"path" validate:"required,max=2048"`
	IZ     string `json:"iz" validate:"required,max=128,printascii"`
	Region string `json:"region" validate:"required,max=63,hostlabel"`
}

// ReportData is the data payload of a successful report response.
//
// Columns maps Alma's internal column names (Column0, Column1, ...) to their
// display headings. Each row maps a display heading to the cell text, in
// the order Alma returned the rows. Finished mirrors Alma's IsFinished flag.
//
// Example:
//
//	{
//	  "columns": {"Column0": "0", "Column1": "Library Name", "Column2": "Loans"},
//	  "rows": [
//	    {"0": "0", "Library Name": "Main Library", "Loans": "1024"},
//	    {"0": "0", "Library Name": "Law Library", "Loans": "311"}
//	  ],
//	  "finished": true
//	}
type ReportData struct {
	Columns  map[string]string   `json:"columns"`
	Rows     []map[string]string `json:"rows"`
	Finished bool                `json:"finished"`
}

// HelloResponse is the body of GET /.
type HelloResponse struct {
	Message string `json:"message"`
}
