package docbridge

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/extrame/xls"

	"github.com/nicholasgasior/docbridge/ast"
)

// XlsParser handles legacy XLS workbooks, producing the same shape as
// the XLSX parser: a level-2 heading plus a table per sheet.
type XlsParser struct{}

// NewXlsParser creates a new XlsParser.
func NewXlsParser() *XlsParser {
	return &XlsParser{}
}

func (p *XlsParser) Accepts(info StreamInfo) bool {
	if info.Extension == ".xls" {
		return true
	}
	return strings.HasPrefix(strings.ToLower(info.MIMEType), "application/vnd.ms-excel")
}

func (p *XlsParser) Parse(reader io.ReadSeeker, info StreamInfo) (*ast.Document, error) {
	// extrame/xls requires a file path, so we need to write to a temp file
	tmpFile, err := os.CreateTemp("", "docbridge-*.xls")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmpFile, reader); err != nil {
		tmpFile.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmpFile.Close()

	wb, err := xls.Open(tmpPath, "utf-8")
	if err != nil {
		return nil, atStage(StageArchiveOpening, fmt.Errorf("open XLS: %w", err))
	}

	doc := ast.NewDocument()
	for i := 0; i < wb.NumSheets(); i++ {
		sheet := wb.GetSheet(i)
		if sheet == nil {
			continue
		}

		sheetName := sheet.Name
		if sheetName == "" {
			sheetName = fmt.Sprintf("Sheet%d", i+1)
		}

		var rows [][]string
		maxRow := int(sheet.MaxRow)
		for rowIdx := 0; rowIdx <= maxRow; rowIdx++ {
			row := sheet.Row(rowIdx)
			if row == nil {
				continue
			}

			var cells []string
			lastCol := row.LastCol()
			for colIdx := 0; colIdx < lastCol; colIdx++ {
				cells = append(cells, row.Col(colIdx))
			}
			rows = append(rows, cells)
		}

		if len(rows) == 0 {
			continue
		}

		doc.Children = append(doc.Children,
			ast.NewHeading(2, &ast.Text{Literal: sheetName}),
			sheetTable(rows),
		)
	}
	return doc, nil
}
