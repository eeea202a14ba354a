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

package section

import (
	"fmt"
	"strings"

	"github.com/nicholasgasior/docbridge/ast"
)

// TOCStyle selects the shape of a generated table of contents.
type TOCStyle string

const (
	// TOCMarkdownStyle is a flat markdown outline, one line per section.
	TOCMarkdownStyle TOCStyle = "markdown"
	// TOCFlatStyle is a flat list, one item per section.
	TOCFlatStyle TOCStyle = "list"
	// TOCNestedStyle reconstructs the heading hierarchy as nested lists.
	TOCNestedStyle TOCStyle = "nested"
)

// MarkdownTOC renders a flat textual outline: one markdown link line per
// section with heading level 1..maxLevel, indented two spaces per level.
func MarkdownTOC(doc *ast.Document, maxLevel int) (string, error) {
	secs, err := SectionsInRange(doc, ast.MinHeadingLevel, maxLevel)
	if err != nil {
		return "", err
	}
	seen := map[string]struct{}{}
	var b strings.Builder
	for _, s := range secs {
		text := s.HeadingText()
		slug := UniqueSlug(text, seen)
		b.WriteString(strings.Repeat("  ", s.Level-1))
		fmt.Fprintf(&b, "- [%s](#%s)\n", text, slug)
	}
	return b.String(), nil
}

// ListTOC builds the table of contents as a list node. Flat places one
// item per section in document order; nested reconstructs the hierarchy
// with a frame stack, bridging level gaps (an H1 followed directly by an
// H3) with empty intermediate items. Nesting never adds or drops heading
// entries: the link count equals the flat style's item count.
func ListTOC(doc *ast.Document, maxLevel int, nested bool) (*ast.List, error) {
	secs, err := SectionsInRange(doc, ast.MinHeadingLevel, maxLevel)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	if !nested {
		flat := &ast.List{}
		for _, s := range secs {
			flat.Items = append(flat.Items, tocItem(s, seen))
		}
		return flat, nil
	}

	root := &ast.List{}
	if len(secs) == 0 {
		return root, nil
	}
	minSeen := secs[0].Level
	for _, s := range secs {
		if s.Level < minSeen {
			minSeen = s.Level
		}
	}

	type frame struct {
		list  *ast.List
		level int
	}
	stack := []frame{{root, minSeen}}
	for _, s := range secs {
		// Return to the ancestor frame at or above this level.
		for len(stack) > 1 && stack[len(stack)-1].level > s.Level {
			stack = stack[:len(stack)-1]
		}
		// Descend to the section's level, synthesizing empty items
		// where intermediate heading levels are missing.
		for stack[len(stack)-1].level < s.Level {
			top := stack[len(stack)-1]
			var last *ast.ListItem
			if n := len(top.list.Items); n > 0 {
				last = top.list.Items[n-1]
			} else {
				last = &ast.ListItem{}
				top.list.Items = append(top.list.Items, last)
			}
			sub := &ast.List{}
			last.Children = append(last.Children, sub)
			stack = append(stack, frame{sub, top.level + 1})
		}
		top := stack[len(stack)-1]
		top.list.Items = append(top.list.Items, tocItem(s, seen))
	}
	return root, nil
}

func tocItem(s *Section, seen map[string]struct{}) *ast.ListItem {
	text := s.HeadingText()
	link := &ast.Link{
		URL:     "#" + UniqueSlug(text, seen),
		Content: []ast.Inline{&ast.Text{Literal: text}},
	}
	return &ast.ListItem{
		Children: []ast.Block{&ast.Paragraph{Content: []ast.Inline{link}}},
	}
}

// TOCPosition names where InsertTOC places the generated block.
type TOCPosition string

const (
	// TOCAtStart inserts at the very beginning of the document.
	TOCAtStart TOCPosition = "start"
	// TOCAfterFirstHeading inserts immediately after the first heading,
	// falling back to the start when the document has none.
	TOCAfterFirstHeading TOCPosition = "after_heading"
)

// InsertTOC returns a new document with a "Table of Contents" heading
// and the generated list spliced in at pos. The TOC is built directly as
// tree nodes, never by rendering markdown text and reparsing it, so no
// renderer/parser pairing is involved.
func InsertTOC(doc *ast.Document, pos TOCPosition, maxLevel int, style TOCStyle) (*ast.Document, error) {
	var list *ast.List
	var err error
	switch style {
	case TOCMarkdownStyle, TOCFlatStyle:
		list, err = ListTOC(doc, maxLevel, false)
	case TOCNestedStyle:
		list, err = ListTOC(doc, maxLevel, true)
	default:
		return nil, fmt.Errorf("invalid TOC style %q", style)
	}
	if err != nil {
		return nil, err
	}

	toc := []ast.Block{
		ast.NewHeading(1, &ast.Text{Literal: "Table of Contents"}),
		list,
	}

	idx := 0
	switch pos {
	case TOCAtStart:
	case TOCAfterFirstHeading:
		for i, child := range doc.Children {
			if _, ok := child.(*ast.Heading); ok {
				idx = i + 1
				break
			}
		}
	default:
		return nil, fmt.Errorf("invalid TOC position %q", pos)
	}
	return splice(doc, idx, idx, toc), nil
}
