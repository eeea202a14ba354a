// Copyright 2026 Conductor OSS
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package docbridge

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/nicholasgasior/docbridge/ast"
)

// CSVParser turns CSV and TSV files into a single table node. The first
// record becomes the header row.
type CSVParser struct{}

// NewCSVParser creates a new CSVParser.
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

func (p *CSVParser) Accepts(info StreamInfo) bool {
	switch info.Extension {
	case ".csv", ".tsv":
		return true
	}
	mime := strings.ToLower(info.MIMEType)
	return strings.HasPrefix(mime, "text/csv") ||
		strings.HasPrefix(mime, "text/tab-separated-values")
}

func (p *CSVParser) Parse(reader io.ReadSeeker, info StreamInfo) (*ast.Document, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	text := decodeText(data, info.Charset)

	r := csv.NewReader(strings.NewReader(text))
	if info.Extension == ".tsv" || strings.HasPrefix(strings.ToLower(info.MIMEType), "text/tab-separated-values") {
		r.Comma = '\t'
	}
	// Ragged rows happen in the wild; pad rather than fail.
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse CSV: %w", err)
	}

	doc := ast.NewDocument()
	if len(records) == 0 {
		return doc, nil
	}

	width := 0
	for _, rec := range records {
		if len(rec) > width {
			width = len(rec)
		}
	}

	table := &ast.Table{Header: csvRow(records[0], width)}
	for _, rec := range records[1:] {
		table.Rows = append(table.Rows, csvRow(rec, width))
	}
	doc.Children = append(doc.Children, table)
	return doc, nil
}

func csvRow(rec []string, width int) *ast.TableRow {
	row := &ast.TableRow{}
	for i := 0; i < width; i++ {
		var cell string
		if i < len(rec) {
			cell = rec[i]
		}
		row.Cells = append(row.Cells, &ast.TableCell{
			Content: []ast.Inline{&ast.Text{Literal: cell}},
		})
	}
	return row
}
