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

import "strings"

// WalkStatus controls traversal from a Walker callback.
type WalkStatus int

const (
	// WalkContinue descends into the node's children.
	WalkContinue WalkStatus = iota
	// WalkSkipChildren continues with the next sibling.
	WalkSkipChildren
	// WalkStop aborts the walk.
	WalkStop
)

// Walker is called twice per node: once entering (before children) and
// once leaving. Errors propagate unchanged out of Walk.
type Walker func(n Node, entering bool) (WalkStatus, error)

// Walk traverses n in pre-order.
func Walk(n Node, w Walker) error {
	_, err := walk(n, w)
	return err
}

func walk(n Node, w Walker) (WalkStatus, error) {
	status, err := w(n, true)
	if err != nil || status == WalkStop {
		return status, err
	}
	if status != WalkSkipChildren {
		for _, c := range Children(n) {
			if st, err := walk(c, w); err != nil || st == WalkStop {
				return st, err
			}
		}
	}
	return w(n, false)
}

// Children returns the immediate children of n in document order,
// regardless of whether they live in a block or inline slot. Leaf nodes
// return nil.
func Children(n Node) []Node {
	switch t := n.(type) {
	case *Document:
		return blocksToNodes(t.Children)
	case *Heading:
		return inlinesToNodes(t.Content)
	case *Paragraph:
		return inlinesToNodes(t.Content)
	case *BlockQuote:
		return blocksToNodes(t.Children)
	case *List:
		out := make([]Node, len(t.Items))
		for i, it := range t.Items {
			out[i] = it
		}
		return out
	case *ListItem:
		return blocksToNodes(t.Children)
	case *Table:
		var out []Node
		if t.Header != nil {
			out = append(out, t.Header)
		}
		for _, r := range t.Rows {
			out = append(out, r)
		}
		return out
	case *TableRow:
		out := make([]Node, len(t.Cells))
		for i, c := range t.Cells {
			out[i] = c
		}
		return out
	case *TableCell:
		return inlinesToNodes(t.Content)
	case *FootnoteDefinition:
		return blocksToNodes(t.Children)
	case *DefinitionList:
		return blocksToNodes(t.Children)
	case *DefinitionTerm:
		return inlinesToNodes(t.Content)
	case *DefinitionDescription:
		return blocksToNodes(t.Children)
	case *Strong:
		return inlinesToNodes(t.Content)
	case *Emphasis:
		return inlinesToNodes(t.Content)
	case *Link:
		return inlinesToNodes(t.Content)
	case *Strikethrough:
		return inlinesToNodes(t.Content)
	case *Underline:
		return inlinesToNodes(t.Content)
	case *Superscript:
		return inlinesToNodes(t.Content)
	case *Subscript:
		return inlinesToNodes(t.Content)
	}
	return nil
}

func blocksToNodes(in []Block) []Node {
	if len(in) == 0 {
		return nil
	}
	out := make([]Node, len(in))
	for i, b := range in {
		out[i] = b
	}
	return out
}

func inlinesToNodes(in []Inline) []Node {
	if len(in) == 0 {
		return nil
	}
	out := make([]Node, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

// Collect walks n and returns every node (n included) for which pred is
// true, in pre-order.
func Collect(n Node, pred func(Node) bool) []Node {
	var out []Node
	Walk(n, func(c Node, entering bool) (WalkStatus, error) {
		if entering && pred(c) {
			out = append(out, c)
		}
		return WalkContinue, nil
	})
	return out
}

// Count returns the total number of nodes in the tree rooted at n.
func Count(n Node) int {
	return len(Collect(n, func(Node) bool { return true }))
}

// TextOf flattens the subtree rooted at n into plain text, dropping all
// formatting. Code spans and literals contribute their content; raw
// markup and comments contribute nothing.
func TextOf(n Node) string {
	var b strings.Builder
	writeText(&b, n)
	return b.String()
}

func writeText(b *strings.Builder, n Node) {
	switch t := n.(type) {
	case *Text:
		b.WriteString(t.Literal)
	case *Code:
		b.WriteString(t.Literal)
	case *CodeBlock:
		b.WriteString(t.Literal)
	case *MathInline:
		b.WriteString(t.Literal)
	case *MathBlock:
		b.WriteString(t.Literal)
	case *Image:
		b.WriteString(t.Alt)
	case *LineBreak:
		b.WriteByte('\n')
	case *HTMLBlock, *HTMLInline, *Comment, *CommentInline:
		// raw markup carries no plain text
	default:
		for _, c := range Children(n) {
			writeText(b, c)
		}
	}
}
