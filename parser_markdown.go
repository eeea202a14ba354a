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

	"github.com/yuin/goldmark"
	gast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/nicholasgasior/docbridge/ast"
)

// MarkdownParser handles Markdown files using goldmark with the GFM
// extensions, mapping the goldmark tree onto the shared document tree.
type MarkdownParser struct{}

// NewMarkdownParser creates a new MarkdownParser.
func NewMarkdownParser() *MarkdownParser {
	return &MarkdownParser{}
}

func (p *MarkdownParser) Accepts(info StreamInfo) bool {
	switch info.Extension {
	case ".md", ".markdown":
		return true
	}
	mime := strings.ToLower(info.MIMEType)
	return strings.HasPrefix(mime, "text/markdown") || strings.HasPrefix(mime, "application/markdown")
}

func (p *MarkdownParser) Parse(reader io.ReadSeeker, info StreamInfo) (*ast.Document, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	src := []byte(decodeText(data, info.Charset))

	meta, body, err := splitFrontmatter(src)
	if err != nil {
		return nil, atStage(StageMetadata, err)
	}

	doc, err := parseMarkdown(body)
	if err != nil {
		return nil, err
	}
	for k, v := range meta {
		doc.Meta[k] = v
	}
	return doc, nil
}

// ParseMetadata reads only the frontmatter block, skipping the body.
func (p *MarkdownParser) ParseMetadata(reader io.ReadSeeker, info StreamInfo) (ast.Meta, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	meta, _, err := splitFrontmatter(data)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		meta = ast.Meta{}
	}
	return meta, nil
}

// splitFrontmatter strips a leading YAML frontmatter block ("---" fenced)
// and returns it as metadata along with the remaining body.
func splitFrontmatter(src []byte) (ast.Meta, []byte, error) {
	if !bytes.HasPrefix(src, []byte("---\n")) && !bytes.HasPrefix(src, []byte("---\r\n")) {
		return nil, src, nil
	}
	rest := src[bytes.IndexByte(src, '\n')+1:]
	for _, fence := range []string{"\n---\n", "\n---\r\n", "\r\n---\r\n"} {
		if i := bytes.Index(rest, []byte(fence)); i >= 0 {
			var meta ast.Meta
			if err := yaml.Unmarshal(rest[:i], &meta); err != nil {
				return nil, nil, fmt.Errorf("parse frontmatter: %w", err)
			}
			return meta, rest[i+len(fence):], nil
		}
	}
	return nil, src, nil
}

// parseMarkdown builds a document tree from markdown source. It is
// shared by the HTML, notebook and feed parsers, which funnel markdown
// fragments through it.
func parseMarkdown(src []byte) (*ast.Document, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	root := md.Parser().Parse(text.NewReader(src))

	c := &goldmarkConverter{src: src}
	doc := ast.NewDocument()
	doc.Children = c.blocks(root)
	return doc, nil
}

type goldmarkConverter struct {
	src []byte
}

func (c *goldmarkConverter) blocks(parent gast.Node) []ast.Block {
	var out []ast.Block
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if b := c.block(n); b != nil {
			out = append(out, b)
		}
	}
	return out
}

func (c *goldmarkConverter) block(n gast.Node) ast.Block {
	switch v := n.(type) {
	case *gast.Heading:
		return ast.NewHeading(v.Level, c.inlines(v)...)
	case *gast.Paragraph:
		return &ast.Paragraph{Content: c.inlines(v)}
	case *gast.TextBlock:
		return &ast.Paragraph{Content: c.inlines(v)}
	case *gast.Blockquote:
		return &ast.BlockQuote{Children: c.blocks(v)}
	case *gast.CodeBlock:
		return &ast.CodeBlock{Literal: c.lines(v)}
	case *gast.FencedCodeBlock:
		return &ast.CodeBlock{
			Language: string(v.Language(c.src)),
			Literal:  c.lines(v),
		}
	case *gast.HTMLBlock:
		lit := c.lines(v)
		if v.HasClosure() {
			lit += string(v.ClosureLine.Value(c.src))
		}
		return &ast.HTMLBlock{Literal: lit}
	case *gast.ThematicBreak:
		return &ast.ThematicBreak{}
	case *gast.List:
		list := &ast.List{Ordered: v.IsOrdered(), Start: v.Start}
		for it := v.FirstChild(); it != nil; it = it.NextSibling() {
			list.Items = append(list.Items, &ast.ListItem{Children: c.blocks(it)})
		}
		return list
	case *east.Table:
		return c.table(v)
	}
	// Unknown block kinds degrade to their flattened text.
	if txt := string(n.Text(c.src)); strings.TrimSpace(txt) != "" {
		return ast.NewParagraph(txt)
	}
	return nil
}

func (c *goldmarkConverter) table(t *east.Table) *ast.Table {
	out := &ast.Table{}
	for r := t.FirstChild(); r != nil; r = r.NextSibling() {
		row := &ast.TableRow{}
		for cell := r.FirstChild(); cell != nil; cell = cell.NextSibling() {
			row.Cells = append(row.Cells, &ast.TableCell{Content: c.inlines(cell)})
		}
		if _, ok := r.(*east.TableHeader); ok {
			out.Header = row
		} else {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

func (c *goldmarkConverter) inlines(parent gast.Node) []ast.Inline {
	var out []ast.Inline
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		out = append(out, c.inline(n)...)
	}
	return out
}

func (c *goldmarkConverter) inline(n gast.Node) []ast.Inline {
	switch v := n.(type) {
	case *gast.Text:
		out := []ast.Inline{&ast.Text{Literal: string(v.Segment.Value(c.src))}}
		if v.HardLineBreak() {
			out = append(out, &ast.LineBreak{Hard: true})
		} else if v.SoftLineBreak() {
			out = append(out, &ast.LineBreak{})
		}
		return out
	case *gast.String:
		return []ast.Inline{&ast.Text{Literal: string(v.Value)}}
	case *gast.CodeSpan:
		return []ast.Inline{&ast.Code{Literal: string(v.Text(c.src))}}
	case *gast.Emphasis:
		if v.Level >= 2 {
			return []ast.Inline{&ast.Strong{Content: c.inlines(v)}}
		}
		return []ast.Inline{&ast.Emphasis{Content: c.inlines(v)}}
	case *gast.Link:
		return []ast.Inline{&ast.Link{
			URL:     string(v.Destination),
			Title:   string(v.Title),
			Content: c.inlines(v),
		}}
	case *gast.Image:
		return []ast.Inline{&ast.Image{
			URL:   string(v.Destination),
			Title: string(v.Title),
			Alt:   string(v.Text(c.src)),
		}}
	case *gast.AutoLink:
		url := string(v.URL(c.src))
		label := string(v.Label(c.src))
		return []ast.Inline{&ast.Link{
			URL:     url,
			Content: []ast.Inline{&ast.Text{Literal: label}},
		}}
	case *gast.RawHTML:
		var b strings.Builder
		for i := 0; i < v.Segments.Len(); i++ {
			seg := v.Segments.At(i)
			b.Write(seg.Value(c.src))
		}
		return []ast.Inline{&ast.HTMLInline{Literal: b.String()}}
	case *east.Strikethrough:
		return []ast.Inline{&ast.Strikethrough{Content: c.inlines(v)}}
	case *east.TaskCheckBox:
		mark := "[ ] "
		if v.IsChecked {
			mark = "[x] "
		}
		return []ast.Inline{&ast.Text{Literal: mark}}
	}
	// Unknown inline kinds degrade to their flattened text.
	if txt := string(n.Text(c.src)); txt != "" {
		return []ast.Inline{&ast.Text{Literal: txt}}
	}
	return nil
}

func (c *goldmarkConverter) lines(n gast.Node) string {
	var b strings.Builder
	l := n.Lines()
	for i := 0; i < l.Len(); i++ {
		seg := l.At(i)
		b.Write(seg.Value(c.src))
	}
	return b.String()
}
