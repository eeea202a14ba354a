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

// Clone deep-copies n and its whole subtree. The clone shares no mutable
// state with the original.
func Clone(n Node) Node {
	switch t := n.(type) {
	case *Document:
		c := &Document{Meta: t.Meta.Clone(), Children: CloneBlocks(t.Children)}
		c.BaseNode = CloneBase(t.BaseNode)
		return c
	case *Heading:
		c := &Heading{Level: t.Level, Content: CloneInlines(t.Content)}
		c.BaseNode = CloneBase(t.BaseNode)
		return c
	case *Paragraph:
		c := &Paragraph{Content: CloneInlines(t.Content)}
		c.BaseNode = CloneBase(t.BaseNode)
		return c
	case *CodeBlock:
		c := &CodeBlock{Language: t.Language, Literal: t.Literal}
		c.BaseNode = CloneBase(t.BaseNode)
		return c
	case *BlockQuote:
		c := &BlockQuote{Children: CloneBlocks(t.Children)}
		c.BaseNode = CloneBase(t.BaseNode)
		return c
	case *List:
		c := &List{Ordered: t.Ordered, Start: t.Start, Items: make([]*ListItem, len(t.Items))}
		for i, it := range t.Items {
			c.Items[i] = Clone(it).(*ListItem)
		}
		c.BaseNode = CloneBase(t.BaseNode)
		return c
	case *ListItem:
		c := &ListItem{Children: CloneBlocks(t.Children)}
		c.BaseNode = CloneBase(t.BaseNode)
		return c
	case *Table:
		c := &Table{Rows: make([]*TableRow, len(t.Rows))}
		if t.Header != nil {
			c.Header = Clone(t.Header).(*TableRow)
		}
		for i, r := range t.Rows {
			c.Rows[i] = Clone(r).(*TableRow)
		}
		c.BaseNode = CloneBase(t.BaseNode)
		return c
	case *TableRow:
		c := &TableRow{Cells: make([]*TableCell, len(t.Cells))}
		for i, cell := range t.Cells {
			c.Cells[i] = Clone(cell).(*TableCell)
		}
		c.BaseNode = CloneBase(t.BaseNode)
		return c
	case *TableCell:
		c := &TableCell{Content: CloneInlines(t.Content), ColSpan: t.ColSpan, RowSpan: t.RowSpan}
		c.BaseNode = CloneBase(t.BaseNode)
		return c
	case *ThematicBreak:
		c := &ThematicBreak{}
		c.BaseNode = CloneBase(t.BaseNode)
		return c
	case *HTMLBlock:
		c := &HTMLBlock{Literal: t.Literal}
		c.BaseNode = CloneBase(t.BaseNode)
		return c
	case *FootnoteDefinition:
		c := &FootnoteDefinition{Label: t.Label, Children: CloneBlocks(t.Children)}
		c.BaseNode = CloneBase(t.BaseNode)
		return c
	case *MathBlock:
		c := &MathBlock{Literal: t.Literal}
		c.BaseNode = CloneBase(t.BaseNode)
		return c
	case *DefinitionList:
		c := &DefinitionList{Children: CloneBlocks(t.Children)}
		c.BaseNode = CloneBase(t.BaseNode)
		return c
	case *DefinitionTerm:
		c := &DefinitionTerm{Content: CloneInlines(t.Content)}
		c.BaseNode = CloneBase(t.BaseNode)
		return c
	case *DefinitionDescription:
		c := &DefinitionDescription{Children: CloneBlocks(t.Children)}
		c.BaseNode = CloneBase(t.BaseNode)
		return c
	case *Comment:
		c := &Comment{Literal: t.Literal}
		c.BaseNode = CloneBase(t.BaseNode)
		return c
	case *Text:
		c := &Text{Literal: t.Literal}
		c.BaseNode = CloneBase(t.BaseNode)
		return c
	case *Strong:
		c := &Strong{Content: CloneInlines(t.Content)}
		c.BaseNode = CloneBase(t.BaseNode)
		return c
	case *Emphasis:
		c := &Emphasis{Content: CloneInlines(t.Content)}
		c.BaseNode = CloneBase(t.BaseNode)
		return c
	case *Code:
		c := &Code{Literal: t.Literal}
		c.BaseNode = CloneBase(t.BaseNode)
		return c
	case *Link:
		c := &Link{URL: t.URL, Title: t.Title, Content: CloneInlines(t.Content)}
		c.BaseNode = CloneBase(t.BaseNode)
		return c
	case *Image:
		c := &Image{URL: t.URL, Alt: t.Alt, Title: t.Title}
		c.BaseNode = CloneBase(t.BaseNode)
		return c
	case *LineBreak:
		c := &LineBreak{Hard: t.Hard}
		c.BaseNode = CloneBase(t.BaseNode)
		return c
	case *HTMLInline:
		c := &HTMLInline{Literal: t.Literal}
		c.BaseNode = CloneBase(t.BaseNode)
		return c
	case *FootnoteReference:
		c := &FootnoteReference{Label: t.Label}
		c.BaseNode = CloneBase(t.BaseNode)
		return c
	case *MathInline:
		c := &MathInline{Literal: t.Literal}
		c.BaseNode = CloneBase(t.BaseNode)
		return c
	case *Strikethrough:
		c := &Strikethrough{Content: CloneInlines(t.Content)}
		c.BaseNode = CloneBase(t.BaseNode)
		return c
	case *Underline:
		c := &Underline{Content: CloneInlines(t.Content)}
		c.BaseNode = CloneBase(t.BaseNode)
		return c
	case *Superscript:
		c := &Superscript{Content: CloneInlines(t.Content)}
		c.BaseNode = CloneBase(t.BaseNode)
		return c
	case *Subscript:
		c := &Subscript{Content: CloneInlines(t.Content)}
		c.BaseNode = CloneBase(t.BaseNode)
		return c
	case *CommentInline:
		c := &CommentInline{Literal: t.Literal}
		c.BaseNode = CloneBase(t.BaseNode)
		return c
	}
	return nil
}

// CloneDocument deep-copies a document.
func CloneDocument(doc *Document) *Document {
	return Clone(doc).(*Document)
}

// CloneBlocks deep-copies a block slice.
func CloneBlocks(in []Block) []Block {
	if in == nil {
		return nil
	}
	out := make([]Block, len(in))
	for i, b := range in {
		out[i] = Clone(b).(Block)
	}
	return out
}

// CloneInlines deep-copies an inline slice.
func CloneInlines(in []Inline) []Inline {
	if in == nil {
		return nil
	}
	out := make([]Inline, len(in))
	for i, v := range in {
		out[i] = Clone(v).(Inline)
	}
	return out
}

// CloneBase deep-copies a node's attribute map and position so a shallow
// struct copy stops sharing mutable state with the original.
func CloneBase(b BaseNode) BaseNode {
	out := BaseNode{Attrs: b.Attrs.Clone()}
	if b.Pos != nil {
		p := *b.Pos
		out.Pos = &p
	}
	return out
}
