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

package ast

// Document is the root of every tree. It is neither Block nor Inline and
// may not appear below another node. Meta holds document-wide metadata,
// distinct from the per-node Attrs mapping.
type Document struct {
	BaseNode
	Meta     Meta
	Children []Block
}

func (*Document) Kind() Kind { return KindDocument }

// NewDocument returns an empty document with an allocated metadata map.
func NewDocument(children ...Block) *Document {
	return &Document{Meta: Meta{}, Children: children}
}

// MinHeadingLevel and MaxHeadingLevel bound Heading.Level.
const (
	MinHeadingLevel = 1
	MaxHeadingLevel = 6
)

// ClampHeadingLevel forces level into [MinHeadingLevel, MaxHeadingLevel].
func ClampHeadingLevel(level int) int {
	if level < MinHeadingLevel {
		return MinHeadingLevel
	}
	if level > MaxHeadingLevel {
		return MaxHeadingLevel
	}
	return level
}

// Heading is a section heading. Level is always within [1,6]; writers
// clamp out-of-range values.
type Heading struct {
	BaseBlock
	Level   int
	Content []Inline
}

func (*Heading) Kind() Kind { return KindHeading }

// NewHeading builds a heading with a clamped level.
func NewHeading(level int, content ...Inline) *Heading {
	return &Heading{Level: ClampHeadingLevel(level), Content: content}
}

type Paragraph struct {
	BaseBlock
	Content []Inline
}

func (*Paragraph) Kind() Kind { return KindParagraph }

// NewParagraph wraps literal text in a paragraph.
func NewParagraph(text string) *Paragraph {
	return &Paragraph{Content: []Inline{&Text{Literal: text}}}
}

type CodeBlock struct {
	BaseBlock
	Language string
	Literal  string
}

func (*CodeBlock) Kind() Kind { return KindCodeBlock }

type BlockQuote struct {
	BaseBlock
	Children []Block
}

func (*BlockQuote) Kind() Kind { return KindBlockQuote }

// List holds ordered or unordered items. Items are always ListItems; the
// type of the slice enforces the parent-child contract.
type List struct {
	BaseBlock
	Ordered bool
	Start   int
	Items   []*ListItem
}

func (*List) Kind() Kind { return KindList }

type ListItem struct {
	BaseBlock
	Children []Block
}

func (*ListItem) Kind() Kind { return KindListItem }

// Table separates the optional header row from data rows structurally.
type Table struct {
	BaseBlock
	Header *TableRow
	Rows   []*TableRow
}

func (*Table) Kind() Kind { return KindTable }

// ColumnCount returns the widest row of the grid, spans included.
func (t *Table) ColumnCount() int {
	max := 0
	count := func(r *TableRow) {
		n := 0
		for _, c := range r.Cells {
			span := c.ColSpan
			if span < 1 {
				span = 1
			}
			n += span
		}
		if n > max {
			max = n
		}
	}
	if t.Header != nil {
		count(t.Header)
	}
	for _, r := range t.Rows {
		count(r)
	}
	return max
}

type TableRow struct {
	BaseBlock
	Cells []*TableCell
}

func (*TableRow) Kind() Kind { return KindTableRow }

// TableCell spans default to 1 when zero.
type TableCell struct {
	BaseBlock
	Content []Inline
	ColSpan int
	RowSpan int
}

func (*TableCell) Kind() Kind { return KindTableCell }

type ThematicBreak struct{ BaseBlock }

func (*ThematicBreak) Kind() Kind { return KindThematicBreak }

// HTMLBlock carries raw block-level markup untouched by the tree layer.
type HTMLBlock struct {
	BaseBlock
	Literal string
}

func (*HTMLBlock) Kind() Kind { return KindHTMLBlock }

type FootnoteDefinition struct {
	BaseBlock
	Label    string
	Children []Block
}

func (*FootnoteDefinition) Kind() Kind { return KindFootnoteDefinition }

type MathBlock struct {
	BaseBlock
	Literal string
}

func (*MathBlock) Kind() Kind { return KindMathBlock }

// DefinitionList children are DefinitionTerm and DefinitionDescription
// nodes, in source order.
type DefinitionList struct {
	BaseBlock
	Children []Block
}

func (*DefinitionList) Kind() Kind { return KindDefinitionList }

type DefinitionTerm struct {
	BaseBlock
	Content []Inline
}

func (*DefinitionTerm) Kind() Kind { return KindDefinitionTerm }

type DefinitionDescription struct {
	BaseBlock
	Children []Block
}

func (*DefinitionDescription) Kind() Kind { return KindDefinitionDescription }

// Comment is a block-level comment preserved from the source format
// (e.g. an HTML or Org comment). Renderers may drop it.
type Comment struct {
	BaseBlock
	Literal string
}

func (*Comment) Kind() Kind { return KindComment }
