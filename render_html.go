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
	"html"
	"io"
	"strings"

	"github.com/nicholasgasior/docbridge/ast"
)

// HTMLRenderer writes a document tree as an HTML fragment. Raw HTML
// nodes pass through untouched; all other text is escaped.
type HTMLRenderer struct{}

func (r *HTMLRenderer) Render(w io.Writer, doc *ast.Document) error {
	var b strings.Builder
	r.blocks(&b, doc.Children)
	_, err := io.WriteString(w, b.String())
	return err
}

func (r *HTMLRenderer) blocks(b *strings.Builder, blocks []ast.Block) {
	for _, blk := range blocks {
		r.block(b, blk)
	}
}

func (r *HTMLRenderer) block(b *strings.Builder, blk ast.Block) {
	switch v := blk.(type) {
	case *ast.Heading:
		fmt.Fprintf(b, "<h%d>%s</h%d>\n", v.Level, r.inlines(v.Content), v.Level)
	case *ast.Paragraph:
		fmt.Fprintf(b, "<p>%s</p>\n", r.inlines(v.Content))
	case *ast.CodeBlock:
		if v.Language != "" {
			fmt.Fprintf(b, "<pre><code class=\"language-%s\">%s</code></pre>\n",
				html.EscapeString(v.Language), html.EscapeString(v.Literal))
		} else {
			fmt.Fprintf(b, "<pre><code>%s</code></pre>\n", html.EscapeString(v.Literal))
		}
	case *ast.BlockQuote:
		b.WriteString("<blockquote>\n")
		r.blocks(b, v.Children)
		b.WriteString("</blockquote>\n")
	case *ast.List:
		tag := "ul"
		switch {
		case v.Ordered && v.Start > 1:
			tag = "ol"
			fmt.Fprintf(b, "<ol start=\"%d\">\n", v.Start)
		case v.Ordered:
			tag = "ol"
			b.WriteString("<ol>\n")
		default:
			b.WriteString("<ul>\n")
		}
		for _, item := range v.Items {
			b.WriteString("<li>")
			r.blocks(b, item.Children)
			b.WriteString("</li>\n")
		}
		fmt.Fprintf(b, "</%s>\n", tag)
	case *ast.Table:
		r.table(b, v)
	case *ast.ThematicBreak:
		b.WriteString("<hr>\n")
	case *ast.HTMLBlock:
		b.WriteString(v.Literal)
		if !strings.HasSuffix(v.Literal, "\n") {
			b.WriteString("\n")
		}
	case *ast.FootnoteDefinition:
		fmt.Fprintf(b, "<div id=\"fn-%s\">\n", html.EscapeString(v.Label))
		r.blocks(b, v.Children)
		b.WriteString("</div>\n")
	case *ast.MathBlock:
		fmt.Fprintf(b, "<pre class=\"math\">%s</pre>\n", html.EscapeString(v.Literal))
	case *ast.DefinitionList:
		b.WriteString("<dl>\n")
		r.blocks(b, v.Children)
		b.WriteString("</dl>\n")
	case *ast.DefinitionTerm:
		fmt.Fprintf(b, "<dt>%s</dt>\n", r.inlines(v.Content))
	case *ast.DefinitionDescription:
		b.WriteString("<dd>")
		r.blocks(b, v.Children)
		b.WriteString("</dd>\n")
	case *ast.Comment:
		fmt.Fprintf(b, "<!-- %s -->\n", v.Literal)
	default:
		if text := strings.TrimSpace(ast.TextOf(blk)); text != "" {
			fmt.Fprintf(b, "<p>%s</p>\n", html.EscapeString(text))
		}
	}
}

func (r *HTMLRenderer) table(b *strings.Builder, t *ast.Table) {
	b.WriteString("<table>\n")
	if t.Header != nil {
		b.WriteString("<thead>\n<tr>")
		for _, cell := range t.Header.Cells {
			r.cell(b, cell, "th")
		}
		b.WriteString("</tr>\n</thead>\n")
	}
	b.WriteString("<tbody>\n")
	for _, row := range t.Rows {
		b.WriteString("<tr>")
		for _, cell := range row.Cells {
			r.cell(b, cell, "td")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody>\n</table>\n")
}

func (r *HTMLRenderer) cell(b *strings.Builder, c *ast.TableCell, tag string) {
	b.WriteString("<")
	b.WriteString(tag)
	if c.ColSpan > 1 {
		fmt.Fprintf(b, " colspan=\"%d\"", c.ColSpan)
	}
	if c.RowSpan > 1 {
		fmt.Fprintf(b, " rowspan=\"%d\"", c.RowSpan)
	}
	b.WriteString(">")
	b.WriteString(r.inlines(c.Content))
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteString(">")
}

func (r *HTMLRenderer) inlines(content []ast.Inline) string {
	var b strings.Builder
	for _, in := range content {
		r.inline(&b, in)
	}
	return b.String()
}

func (r *HTMLRenderer) inline(b *strings.Builder, in ast.Inline) {
	switch v := in.(type) {
	case *ast.Text:
		b.WriteString(html.EscapeString(v.Literal))
	case *ast.Strong:
		fmt.Fprintf(b, "<strong>%s</strong>", r.inlines(v.Content))
	case *ast.Emphasis:
		fmt.Fprintf(b, "<em>%s</em>", r.inlines(v.Content))
	case *ast.Code:
		fmt.Fprintf(b, "<code>%s</code>", html.EscapeString(v.Literal))
	case *ast.Link:
		b.WriteString(`<a href="`)
		b.WriteString(html.EscapeString(v.URL))
		b.WriteString(`"`)
		if v.Title != "" {
			fmt.Fprintf(b, ` title="%s"`, html.EscapeString(v.Title))
		}
		b.WriteString(">")
		b.WriteString(r.inlines(v.Content))
		b.WriteString("</a>")
	case *ast.Image:
		fmt.Fprintf(b, `<img src="%s" alt="%s"`, html.EscapeString(v.URL), html.EscapeString(v.Alt))
		if v.Title != "" {
			fmt.Fprintf(b, ` title="%s"`, html.EscapeString(v.Title))
		}
		b.WriteString(">")
	case *ast.LineBreak:
		if v.Hard {
			b.WriteString("<br>\n")
		} else {
			b.WriteString("\n")
		}
	case *ast.HTMLInline:
		b.WriteString(v.Literal)
	case *ast.FootnoteReference:
		fmt.Fprintf(b, `<sup><a href="#fn-%s">%s</a></sup>`,
			html.EscapeString(v.Label), html.EscapeString(v.Label))
	case *ast.MathInline:
		fmt.Fprintf(b, `<span class="math">%s</span>`, html.EscapeString(v.Literal))
	case *ast.Strikethrough:
		fmt.Fprintf(b, "<del>%s</del>", r.inlines(v.Content))
	case *ast.Underline:
		fmt.Fprintf(b, "<u>%s</u>", r.inlines(v.Content))
	case *ast.Superscript:
		fmt.Fprintf(b, "<sup>%s</sup>", r.inlines(v.Content))
	case *ast.Subscript:
		fmt.Fprintf(b, "<sub>%s</sub>", r.inlines(v.Content))
	case *ast.CommentInline:
		fmt.Fprintf(b, "<!-- %s -->", v.Literal)
	default:
		b.WriteString(html.EscapeString(ast.TextOf(in)))
	}
}
