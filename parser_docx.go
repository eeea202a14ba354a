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
	"bytes"
	"fmt"
	"io"
	"strings"

	docx "github.com/fumiama/go-docx"

	"github.com/nicholasgasior/docbridge/ast"
)

// DocxParser handles Word .docx files. Heading styles map to heading
// levels, everything else becomes paragraphs and tables.
type DocxParser struct{}

// NewDocxParser creates a new DocxParser.
func NewDocxParser() *DocxParser {
	return &DocxParser{}
}

func (p *DocxParser) Accepts(info StreamInfo) bool {
	if info.Extension == ".docx" {
		return true
	}
	return strings.HasPrefix(strings.ToLower(info.MIMEType),
		"application/vnd.openxmlformats-officedocument.wordprocessingml")
}

func (p *DocxParser) Parse(reader io.ReadSeeker, info StreamInfo) (*ast.Document, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	wordDoc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, atStage(StageArchiveOpening, fmt.Errorf("open docx: %w", err))
	}

	doc := ast.NewDocument()
	for _, item := range wordDoc.Document.Body.Items {
		switch v := item.(type) {
		case *docx.Paragraph:
			text := docxParagraphText(v)
			if text == "" {
				continue
			}
			if level := docxHeadingLevel(v); level > 0 {
				doc.Children = append(doc.Children, ast.NewHeading(level, &ast.Text{Literal: text}))
			} else {
				doc.Children = append(doc.Children, ast.NewParagraph(text))
			}
		case *docx.Table:
			if table := docxTable(v); table != nil {
				doc.Children = append(doc.Children, table)
			}
		}
	}
	return doc, nil
}

// docxHeadingLevel maps a paragraph's style to a heading level, 0 for
// body text.
func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	if !strings.HasPrefix(style, "heading") {
		return 0
	}
	switch style[len("heading"):] {
	case "1":
		return 1
	case "2":
		return 2
	case "3":
		return 3
	case "4":
		return 4
	case "5":
		return 5
	case "6":
		return 6
	}
	return 0
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

// docxTable converts a Word table; the first row is taken as the header.
func docxTable(t *docx.Table) *ast.Table {
	var rows []*ast.TableRow
	for _, tr := range t.TableRows {
		row := &ast.TableRow{}
		for _, tc := range tr.TableCells {
			var cell strings.Builder
			for _, para := range tc.Paragraphs {
				if text := docxParagraphText(para); text != "" {
					if cell.Len() > 0 {
						cell.WriteString(" ")
					}
					cell.WriteString(text)
				}
			}
			row.Cells = append(row.Cells, &ast.TableCell{
				Content: []ast.Inline{&ast.Text{Literal: cell.String()}},
			})
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil
	}
	return &ast.Table{Header: rows[0], Rows: rows[1:]}
}
