package docbridge

import (
	"io"
	"strings"

	"github.com/nicholasgasior/docbridge/ast"
)

// TextRenderer writes a document tree as plain text: one chunk per
// block, markup discarded.
type TextRenderer struct{}

func (r *TextRenderer) Render(w io.Writer, doc *ast.Document) error {
	var b strings.Builder
	for _, blk := range doc.Children {
		text := blockText(blk)
		if strings.TrimSpace(text) == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(strings.TrimSpace(text))
	}
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func blockText(blk ast.Block) string {
	switch v := blk.(type) {
	case *ast.List:
		var b strings.Builder
		for _, item := range v.Items {
			for _, child := range item.Children {
				if text := strings.TrimSpace(blockText(child)); text != "" {
					b.WriteString(text)
					b.WriteString("\n")
				}
			}
		}
		return b.String()
	case *ast.Table:
		var b strings.Builder
		rows := v.Rows
		if v.Header != nil {
			rows = append([]*ast.TableRow{v.Header}, rows...)
		}
		for _, row := range rows {
			var cells []string
			for _, cell := range row.Cells {
				cells = append(cells, ast.TextOf(cell))
			}
			b.WriteString(strings.Join(cells, "\t"))
			b.WriteString("\n")
		}
		return b.String()
	}
	return ast.TextOf(blk)
}
