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

// Package transform rewrites document trees node by node. Every transform
// produces a new tree; the input is never mutated, so a failed transform
// leaves the caller's document intact.
package transform

import (
	"fmt"

	"github.com/nicholasgasior/docbridge/ast"
)

// NodeTransformer maps one node to its replacement. Returning (nil, nil)
// drops the node and its whole subtree. The node handed in is already a
// fresh copy with transformed children, so implementations may modify it
// in place and return it.
type NodeTransformer interface {
	TransformNode(n ast.Node) (ast.Node, error)
}

// Func adapts a plain function to the NodeTransformer interface.
type Func func(n ast.Node) (ast.Node, error)

func (f Func) TransformNode(n ast.Node) (ast.Node, error) { return f(n) }

// Apply rebuilds doc bottom-up through t. When t drops the root, an empty
// document carrying the original metadata is returned.
func Apply(doc *ast.Document, t NodeTransformer) (*ast.Document, error) {
	n, err := applyNode(doc, t)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return &ast.Document{Meta: doc.Meta.Clone()}, nil
	}
	out, ok := n.(*ast.Document)
	if !ok {
		return nil, fmt.Errorf("transformer replaced the document root with %s", n.Kind())
	}
	return out, nil
}

func applyNode(n ast.Node, t NodeTransformer) (ast.Node, error) {
	fresh, err := rebuild(n, t)
	if err != nil {
		return nil, err
	}
	return t.TransformNode(fresh)
}

// rebuild shallow-copies n, detaches its attribute map and position, and
// replaces its child slices with transformed children. Leaf nodes come
// back as full clones, so the node a transformer receives never shares
// mutable state with the input tree.
func rebuild(n ast.Node, t NodeTransformer) (ast.Node, error) {
	switch v := n.(type) {
	case *ast.Document:
		kids, err := applyBlocks(v.Children, t)
		if err != nil {
			return nil, err
		}
		c := *v
		c.BaseNode = ast.CloneBase(v.BaseNode)
		c.Meta = v.Meta.Clone()
		c.Children = kids
		return &c, nil
	case *ast.Heading:
		content, err := applyInlines(v.Content, t)
		if err != nil {
			return nil, err
		}
		c := *v
		c.BaseNode = ast.CloneBase(v.BaseNode)
		c.Content = content
		return &c, nil
	case *ast.Paragraph:
		content, err := applyInlines(v.Content, t)
		if err != nil {
			return nil, err
		}
		c := *v
		c.BaseNode = ast.CloneBase(v.BaseNode)
		c.Content = content
		return &c, nil
	case *ast.BlockQuote:
		kids, err := applyBlocks(v.Children, t)
		if err != nil {
			return nil, err
		}
		c := *v
		c.BaseNode = ast.CloneBase(v.BaseNode)
		c.Children = kids
		return &c, nil
	case *ast.List:
		items, err := applyItems(v.Items, t)
		if err != nil {
			return nil, err
		}
		c := *v
		c.BaseNode = ast.CloneBase(v.BaseNode)
		c.Items = items
		return &c, nil
	case *ast.ListItem:
		kids, err := applyBlocks(v.Children, t)
		if err != nil {
			return nil, err
		}
		c := *v
		c.BaseNode = ast.CloneBase(v.BaseNode)
		c.Children = kids
		return &c, nil
	case *ast.Table:
		c := *v
		c.BaseNode = ast.CloneBase(v.BaseNode)
		if v.Header != nil {
			h, err := applyRow(v.Header, t)
			if err != nil {
				return nil, err
			}
			c.Header = h
		}
		rows := make([]*ast.TableRow, 0, len(v.Rows))
		for _, r := range v.Rows {
			nr, err := applyRow(r, t)
			if err != nil {
				return nil, err
			}
			if nr != nil {
				rows = append(rows, nr)
			}
		}
		c.Rows = rows
		return &c, nil
	case *ast.TableRow:
		cells := make([]*ast.TableCell, 0, len(v.Cells))
		for _, cell := range v.Cells {
			nc, err := applyNode(cell, t)
			if err != nil {
				return nil, err
			}
			if nc == nil {
				continue
			}
			tc, ok := nc.(*ast.TableCell)
			if !ok {
				return nil, fmt.Errorf("transformer replaced a table cell with %s", nc.Kind())
			}
			cells = append(cells, tc)
		}
		c := *v
		c.BaseNode = ast.CloneBase(v.BaseNode)
		c.Cells = cells
		return &c, nil
	case *ast.TableCell:
		content, err := applyInlines(v.Content, t)
		if err != nil {
			return nil, err
		}
		c := *v
		c.BaseNode = ast.CloneBase(v.BaseNode)
		c.Content = content
		return &c, nil
	case *ast.FootnoteDefinition:
		kids, err := applyBlocks(v.Children, t)
		if err != nil {
			return nil, err
		}
		c := *v
		c.BaseNode = ast.CloneBase(v.BaseNode)
		c.Children = kids
		return &c, nil
	case *ast.DefinitionList:
		kids, err := applyBlocks(v.Children, t)
		if err != nil {
			return nil, err
		}
		c := *v
		c.BaseNode = ast.CloneBase(v.BaseNode)
		c.Children = kids
		return &c, nil
	case *ast.DefinitionTerm:
		content, err := applyInlines(v.Content, t)
		if err != nil {
			return nil, err
		}
		c := *v
		c.BaseNode = ast.CloneBase(v.BaseNode)
		c.Content = content
		return &c, nil
	case *ast.DefinitionDescription:
		kids, err := applyBlocks(v.Children, t)
		if err != nil {
			return nil, err
		}
		c := *v
		c.BaseNode = ast.CloneBase(v.BaseNode)
		c.Children = kids
		return &c, nil
	case *ast.Strong:
		return rebuildInlineContainer(v, &v.Content, t)
	case *ast.Emphasis:
		return rebuildInlineContainer(v, &v.Content, t)
	case *ast.Link:
		return rebuildInlineContainer(v, &v.Content, t)
	case *ast.Strikethrough:
		return rebuildInlineContainer(v, &v.Content, t)
	case *ast.Underline:
		return rebuildInlineContainer(v, &v.Content, t)
	case *ast.Superscript:
		return rebuildInlineContainer(v, &v.Content, t)
	case *ast.Subscript:
		return rebuildInlineContainer(v, &v.Content, t)
	default:
		// Leaf node: a deep clone is a shallow copy.
		return ast.Clone(n), nil
	}
}

// rebuildInlineContainer copies an inline container node and swaps in the
// transformed content slice. The original's content pointer is used only
// to read; the returned node is a distinct shallow copy.
func rebuildInlineContainer(n ast.Node, content *[]ast.Inline, t NodeTransformer) (ast.Node, error) {
	newContent, err := applyInlines(*content, t)
	if err != nil {
		return nil, err
	}
	c := ast.Clone(n)
	switch v := c.(type) {
	case *ast.Strong:
		v.Content = newContent
	case *ast.Emphasis:
		v.Content = newContent
	case *ast.Link:
		v.Content = newContent
	case *ast.Strikethrough:
		v.Content = newContent
	case *ast.Underline:
		v.Content = newContent
	case *ast.Superscript:
		v.Content = newContent
	case *ast.Subscript:
		v.Content = newContent
	}
	return c, nil
}

func applyBlocks(in []ast.Block, t NodeTransformer) ([]ast.Block, error) {
	out := make([]ast.Block, 0, len(in))
	for _, b := range in {
		n, err := applyNode(b, t)
		if err != nil {
			return nil, err
		}
		if n == nil {
			continue
		}
		nb, ok := n.(ast.Block)
		if !ok {
			return nil, fmt.Errorf("transformer put %s in a block slot", n.Kind())
		}
		out = append(out, nb)
	}
	return out, nil
}

func applyInlines(in []ast.Inline, t NodeTransformer) ([]ast.Inline, error) {
	out := make([]ast.Inline, 0, len(in))
	for _, v := range in {
		n, err := applyNode(v, t)
		if err != nil {
			return nil, err
		}
		if n == nil {
			continue
		}
		ni, ok := n.(ast.Inline)
		if !ok {
			return nil, fmt.Errorf("transformer put %s in an inline slot", n.Kind())
		}
		out = append(out, ni)
	}
	return out, nil
}

func applyItems(in []*ast.ListItem, t NodeTransformer) ([]*ast.ListItem, error) {
	out := make([]*ast.ListItem, 0, len(in))
	for _, it := range in {
		n, err := applyNode(it, t)
		if err != nil {
			return nil, err
		}
		if n == nil {
			continue
		}
		ni, ok := n.(*ast.ListItem)
		if !ok {
			return nil, fmt.Errorf("transformer replaced a list item with %s", n.Kind())
		}
		out = append(out, ni)
	}
	return out, nil
}

func applyRow(r *ast.TableRow, t NodeTransformer) (*ast.TableRow, error) {
	n, err := applyNode(r, t)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	nr, ok := n.(*ast.TableRow)
	if !ok {
		return nil, fmt.Errorf("transformer replaced a table row with %s", n.Kind())
	}
	return nr, nil
}
