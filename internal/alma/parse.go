// Almareport - Alma Analytics Report Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/almareport

package alma

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/tomtom215/almareport/internal/config"
)

const (
	// xsdNamespace is the XML Schema namespace of the column definitions.
	xsdNamespace = "http://www.w3.org/2001/XMLSchema"

	// xsdPrefix matches schema elements whose prefix was never declared.
	xsdPrefix = "xsd"
)

// ColumnMap maps internal column names (Column0, Column1, ...) to display headings.
type ColumnMap map[string]string

// Row maps display headings to cell text.
type Row map[string]string

// Report is a parsed Analytics report.
type Report struct {
	Columns  ColumnMap
	Rows     []Row
	Finished bool
}

// upstreamError is Alma's <error> element. Web service errors nest
// errorCode and errorMessage; plain errors carry only text.
type upstreamError struct {
	Code    string `xml:"errorCode"`
	Message string `xml:"errorMessage"`
	Text    string `xml:",chardata"`
}

func (e upstreamError) text() string {
	if msg := strings.TrimSpace(e.Message); msg != "" {
		return msg
	}
	return strings.Join(strings.Fields(e.Text), " ")
}

// textElement captures the character data of a leaf element.
type textElement struct {
	Text string `xml:",chardata"`
}

// ParseResponse decodes an Analytics report body.
//
// Any <error> element fails the parse with KindUpstreamApplication. Schema
// elements build the column map from their name attribute to the heading
// attribute selected by headingAttr (config.HeadingColumnHeading or
// config.HeadingType), falling back to the name when the attribute is absent. Each row element (matched case-insensitively) yields
// one Row whose children are mapped through the column map; children with
// no column are dropped. No schema elements gives KindNoColumns and no rows
// gives KindNoRows.
func ParseResponse(body []byte, headingAttr string) (*Report, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))

	columns := make(ColumnMap)
	var rawRows []map[string]string
	finished := false

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, newError(KindMalformed, msgMalformed, err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch {
		case se.Name.Local == "error":
			var ue upstreamError
			if err := dec.DecodeElement(&ue, &se); err != nil {
				return nil, newError(KindMalformed, msgMalformed, err)
			}
			return nil, newError(KindUpstreamApplication, ue.text(), nil)

		case isSchemaElement(se.Name):
			name, heading := columnAttrs(se.Attr, headingAttr)
			if name == "" {
				continue
			}
			if heading == "" {
				heading = name
			}
			columns[name] = heading

		case strings.EqualFold(se.Name.Local, "row"):
			raw, err := decodeRow(dec)
			if err != nil {
				return nil, err
			}
			rawRows = append(rawRows, raw)

		case se.Name.Local == "IsFinished":
			var te textElement
			if err := dec.DecodeElement(&te, &se); err != nil {
				return nil, newError(KindMalformed, msgMalformed, err)
			}
			finished = strings.EqualFold(strings.TrimSpace(te.Text), "true")
		}
	}

	if len(columns) == 0 {
		return nil, newError(KindNoColumns, msgNoColumns, nil)
	}
	if len(rawRows) == 0 {
		return nil, newError(KindNoRows, msgNoRows, nil)
	}

	rows := make([]Row, 0, len(rawRows))
	for _, raw := range rawRows {
		row := make(Row, len(raw))
		for column, value := range raw {
			if heading, ok := columns[column]; ok {
				row[heading] = value
			}
		}
		rows = append(rows, row)
	}

	return &Report{Columns: columns, Rows: rows, Finished: finished}, nil
}

// findUpstreamError returns the text of the first <error> element in body.
// Non-XML bodies report false.
func findUpstreamError(body []byte) (string, bool) {
	dec := xml.NewDecoder(bytes.NewReader(body))
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", false
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "error" {
			continue
		}
		var ue upstreamError
		if err := dec.DecodeElement(&ue, &se); err != nil {
			return "", false
		}
		return ue.text(), true
	}
}

// isSchemaElement matches xsd:element whether or not the prefix was declared.
func isSchemaElement(name xml.Name) bool {
	return name.Local == "element" && (name.Space == xsdNamespace || name.Space == xsdPrefix)
}

// columnAttrs returns the name and heading of a schema element.
func columnAttrs(attrs []xml.Attr, headingAttr string) (name, heading string) {
	for _, a := range attrs {
		switch {
		case a.Name.Local == "name" && a.Name.Space == "":
			name = a.Value
		case headingAttr == config.HeadingType && a.Name.Local == "type" && a.Name.Space == "":
			heading = a.Value
		case headingAttr != config.HeadingType && a.Name.Local == "columnHeading":
			heading = a.Value
		}
	}
	return name, heading
}

// decodeRow reads the children of a row element up to its end tag, keyed
// by child local name.
func decodeRow(dec *xml.Decoder) (map[string]string, error) {
	raw := make(map[string]string)
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, newError(KindMalformed, msgMalformed, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "error" {
				var ue upstreamError
				if err := dec.DecodeElement(&ue, &t); err != nil {
					return nil, newError(KindMalformed, msgMalformed, err)
				}
				return nil, newError(KindUpstreamApplication, ue.text(), nil)
			}
			var te textElement
			if err := dec.DecodeElement(&te, &t); err != nil {
				return nil, newError(KindMalformed, msgMalformed, err)
			}
			raw[t.Name.Local] = te.Text
		case xml.EndElement:
			return raw, nil
		}
	}
}
