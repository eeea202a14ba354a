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

	"gopkg.in/yaml.v3"

	"github.com/nicholasgasior/docbridge/ast"
)

// MarkdownRenderer writes a document tree as GitHub-flavored markdown.
// With Frontmatter set, non-empty document metadata is emitted as a
// leading YAML block.
type MarkdownRenderer struct {
	Frontmatter bool
}

func (r *MarkdownRenderer) Render(w io.Writer, doc *ast.Document) error {
	var b strings.Builder

	if r.Frontmatter && len(doc.Meta) > 0 {
		data, err := yaml.Marshal(map[string]any(doc.Meta))
		if err != nil {
			return fmt.Errorf("marshal frontmatter: %w", err)
		}
		b.WriteString("---\n")
		b.Write(data)
		b.WriteString("---\n\n")
	}

	r.blocks(&b, doc.Children)

	_, err := io.WriteString(w, b.String())
	return err
}

func (r *MarkdownRenderer) blocks(b *strings.Builder, blocks []ast.Block) {
	for i, blk := range blocks {
		if i > 0 {
			b.WriteString("\n")
		}
		r.block(b, blk)
	}
}

func (r *MarkdownRenderer) block(b *strings.Builder, blk ast.Block) {
	switch v := blk.(type) {
	case *ast.Heading:
		b.WriteString(strings.Repeat("#", v.Level))
		b.WriteString(" ")
		b.WriteString(r.inlines(v.Content))
		b.WriteString("\n")
	case *ast.Paragraph:
		b.WriteString(r.inlines(v.Content))
		b.WriteString("\n")
	case *ast.CodeBlock:
		b.WriteString("```")
		b.WriteString(v.Language)
		b.WriteString("\n")
		b.WriteString(v.Literal)
		if !strings.HasSuffix(v.Literal, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("```\n")
	case *ast.BlockQuote:
		var inner strings.Builder
		r.blocks(&inner, v.Children)
		for _, line := range strings.Split(strings.TrimRight(inner.String(), "\n"), "\n") {
			b.WriteString(strings.TrimRight("> "+line, " "))
			b.WriteString("\n")
		}
	case *ast.List:
		r.list(b, v)
	case *ast.Table:
		r.table(b, v)
	case *ast.ThematicBreak:
		b.WriteString("---\n")
	case *ast.HTMLBlock:
		b.WriteString(strings.TrimRight(v.Literal, "\n"))
		b.WriteString("\n")
	case *ast.FootnoteDefinition:
		var inner strings.Builder
		r.blocks(&inner, v.Children)
		b.WriteString("[^")
		b.WriteString(v.Label)
		b.WriteString("]: ")
		b.WriteString(strings.TrimSpace(inner.String()))
		b.WriteString("\n")
	case *ast.MathBlock:
		b.WriteString("$$\n")
		b.WriteString(v.Literal)
		if !strings.HasSuffix(v.Literal, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("$$\n")
	case *ast.DefinitionList:
		r.blocks(b, v.Children)
	case *ast.DefinitionTerm:
		b.WriteString(r.inlines(v.Content))
		b.WriteString("\n")
	case *ast.DefinitionDescription:
		var inner strings.Builder
		r.blocks(&inner, v.Children)
		b.WriteString(": ")
		b.WriteString(strings.TrimSpace(inner.String()))
		b.WriteString("\n")
	case *ast.Comment:
		b.WriteString("<!-- ")
		b.WriteString(v.Literal)
		b.WriteString(" -->\n")
	default:
		// No native markup: flatten to inner text.
		if text := strings.TrimSpace(ast.TextOf(blk)); text != "" {
			b.WriteString(text)
			b.WriteString("\n")
		}
	}
}

func (r *MarkdownRenderer) list(b *strings.Builder, l *ast.List) {
	for i, item := range l.Items {
		marker := "- "
		if l.Ordered {
			start := l.Start
			if start == 0 {
				start = 1
			}
			marker = fmt.Sprintf("%d. ", start+i)
		}

		var inner strings.Builder
		r.blocks(&inner, item.Children)
		lines := strings.Split(strings.TrimRight(inner.String(), "\n"), "\n")

		indent := strings.Repeat(" ", len(marker))
		for j, line := range lines {
			if j == 0 {
				b.WriteString(marker)
			} else if line != "" {
				b.WriteString(indent)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
}

func (r *MarkdownRenderer) table(b *strings.Builder, t *ast.Table) {
	numCols := t.ColumnCount()
	if numCols == 0 {
		return
	}

	writeRow := func(row *ast.TableRow) {
		b.WriteString("|")
		for i := 0; i < numCols; i++ {
			b.WriteString(" ")
			if row != nil && i < len(row.Cells) {
				b.WriteString(tableCellText(r.inlines(row.Cells[i].Content)))
			}
			b.WriteString(" |")
		}
		b.WriteString("\n")
	}

	writeRow(t.Header)
	b.WriteString("|")
	for i := 0; i < numCols; i++ {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")
	for _, row := range t.Rows {
		writeRow(row)
	}
}

// tableCellText makes inline content safe inside a table cell.
func tableCellText(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", "\\|")
}

func (r *MarkdownRenderer) inlines(content []ast.Inline) string {
	var b strings.Builder
	for _, in := range content {
		r.inline(&b, in)
	}
	return b.String()
}

func (r *MarkdownRenderer) inline(b *strings.Builder, in ast.Inline) {
	switch v := in.(type) {
	case *ast.Text:
		b.WriteString(v.Literal)
	case *ast.Strong:
		b.WriteString("**")
		b.WriteString(r.inlines(v.Content))
		b.WriteString("**")
	case *ast.Emphasis:
		b.WriteString("*")
		b.WriteString(r.inlines(v.Content))
		b.WriteString("*")
	case *ast.Code:
		b.WriteString("`")
		b.WriteString(v.Literal)
		b.WriteString("`")
	case *ast.Link:
		b.WriteString("[")
		b.WriteString(r.inlines(v.Content))
		b.WriteString("](")
		b.WriteString(v.URL)
		if v.Title != "" {
			b.WriteString(` "`)
			b.WriteString(v.Title)
			b.WriteString(`"`)
		}
		b.WriteString(")")
	case *ast.Image:
		b.WriteString("![")
		b.WriteString(v.Alt)
		b.WriteString("](")
		b.WriteString(v.URL)
		if v.Title != "" {
			b.WriteString(` "`)
			b.WriteString(v.Title)
			b.WriteString(`"`)
		}
		b.WriteString(")")
	case *ast.LineBreak:
		if v.Hard {
			b.WriteString("  \n")
		} else {
			b.WriteString("\n")
		}
	case *ast.HTMLInline:
		b.WriteString(v.Literal)
	case *ast.FootnoteReference:
		b.WriteString("[^")
		b.WriteString(v.Label)
		b.WriteString("]")
	case *ast.MathInline:
		b.WriteString("$")
		b.WriteString(v.Literal)
		b.WriteString("$")
	case *ast.Strikethrough:
		b.WriteString("~~")
		b.WriteString(r.inlines(v.Content))
		b.WriteString("~~")
	case *ast.Underline:
		b.WriteString("<u>")
		b.WriteString(r.inlines(v.Content))
		b.WriteString("</u>")
	case *ast.Superscript:
		b.WriteString("<sup>")
		b.WriteString(r.inlines(v.Content))
		b.WriteString("</sup>")
	case *ast.Subscript:
		b.WriteString("<sub>")
		b.WriteString(r.inlines(v.Content))
		b.WriteString("</sub>")
	case *ast.CommentInline:
		b.WriteString("<!-- ")
		b.WriteString(v.Literal)
		b.WriteString(" -->")
	default:
		b.WriteString(ast.TextOf(in))
	}
}
