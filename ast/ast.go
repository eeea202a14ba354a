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

// Package ast defines the shared document tree that every format parser
// produces and every renderer consumes. The node set is closed: Node is
// implemented only by types in this package, so traversal code can switch
// exhaustively over the concrete types.
package ast

// Kind identifies the concrete variant of a Node.
type Kind int

const (
	KindDocument Kind = iota
	KindHeading
	KindParagraph
	KindCodeBlock
	KindBlockQuote
	KindList
	KindListItem
	KindTable
	KindTableRow
	KindTableCell
	KindThematicBreak
	KindHTMLBlock
	KindFootnoteDefinition
	KindMathBlock
	KindDefinitionList
	KindDefinitionTerm
	KindDefinitionDescription
	KindComment
	KindText
	KindStrong
	KindEmphasis
	KindCode
	KindLink
	KindImage
	KindLineBreak
	KindHTMLInline
	KindFootnoteReference
	KindMathInline
	KindStrikethrough
	KindUnderline
	KindSuperscript
	KindSubscript
	KindCommentInline
)

var kindNames = [...]string{
	"Document", "Heading", "Paragraph", "CodeBlock", "BlockQuote",
	"List", "ListItem", "Table", "TableRow", "TableCell",
	"ThematicBreak", "HTMLBlock", "FootnoteDefinition", "MathBlock",
	"DefinitionList", "DefinitionTerm", "DefinitionDescription", "Comment",
	"Text", "Strong", "Emphasis", "Code", "Link", "Image", "LineBreak",
	"HTMLInline", "FootnoteReference", "MathInline", "Strikethrough",
	"Underline", "Superscript", "Subscript", "CommentInline",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// Position records line/column provenance from the source input.
// It is opaque to every tree algorithm; parsers set it, nothing reads it
// except diagnostics.
type Position struct {
	Line   int
	Column int
}

// Meta is an open string-keyed metadata mapping. Values are restricted by
// convention to what yaml.v3 and encoding/json produce: string, bool,
// int, float64, []any and map[string]any.
type Meta map[string]any

// Well-known document metadata keys. Parsers populate them, renderers may
// surface them (e.g. as a frontmatter block).
const (
	MetaTitle    = "title"
	MetaAuthor   = "author"
	MetaDate     = "date"
	MetaKeywords = "keywords"
)

// Clone returns a copy of the mapping one level deep for scalar values and
// deep for nested sequences and maps.
func (m Meta) Clone() Meta {
	if m == nil {
		return nil
	}
	out := make(Meta, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// String returns the value for key if it is a string.
func (m Meta) String(key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

// Node is one element of the document tree.
type Node interface {
	Kind() Kind
	base() *BaseNode
}

// Block marks node types that may appear as children of a Document,
// BlockQuote, ListItem and similar block slots.
type Block interface {
	Node
	blockNode()
}

// Inline marks node types that may only appear inside inline content
// slots (heading text, paragraph content, link text, table cells).
type Inline interface {
	Node
	inlineNode()
}

// BaseNode carries the fields shared by every node: per-node metadata and
// optional source provenance.
type BaseNode struct {
	Attrs Meta
	Pos   *Position
}

func (b *BaseNode) base() *BaseNode { return b }

// SetAttr records a per-node metadata key, allocating the map on first use.
func (b *BaseNode) SetAttr(key string, v any) {
	if b.Attrs == nil {
		b.Attrs = Meta{}
	}
	b.Attrs[key] = v
}

// Attr returns a per-node metadata value, or nil.
func (b *BaseNode) Attr(key string) any {
	if b.Attrs == nil {
		return nil
	}
	return b.Attrs[key]
}

// BaseBlock is embedded by all block-level node types.
type BaseBlock struct{ BaseNode }

func (*BaseBlock) blockNode() {}

// BaseInline is embedded by all inline node types.
type BaseInline struct{ BaseNode }

func (*BaseInline) inlineNode() {}
