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
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nicholasgasior/docbridge/ast"
)

// XlsxParser handles XLSX workbooks: one level-2 heading plus one table
// per non-empty sheet.
type XlsxParser struct{}

// NewXlsxParser creates a new XlsxParser.
func NewXlsxParser() *XlsxParser {
	return &XlsxParser{}
}

func (p *XlsxParser) Accepts(info StreamInfo) bool {
	if info.Extension == ".xlsx" {
		return true
	}
	return strings.HasPrefix(strings.ToLower(info.MIMEType),
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

func (p *XlsxParser) Parse(reader io.ReadSeeker, info StreamInfo) (*ast.Document, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, atStage(StageArchiveOpening, fmt.Errorf("open XLSX: %w", err))
	}
	defer f.Close()

	doc := ast.NewDocument()
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) == 0 {
			continue
		}
		doc.Children = append(doc.Children,
			ast.NewHeading(2, &ast.Text{Literal: sheet}),
			sheetTable(rows),
		)
	}
	return doc, nil
}

// sheetTable builds a table from sheet rows, padding ragged rows to the
// widest one. The first row is taken as the header.
func sheetTable(rows [][]string) *ast.Table {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	table := &ast.Table{Header: csvRow(rows[0], width)}
	for _, row := range rows[1:] {
		table.Rows = append(table.Rows, csvRow(row, width))
	}
	return table
}
