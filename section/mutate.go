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

	"github.com/nicholasgasior/docbridge/ast"
)

// Target selects a section either by its flattened heading text
// (case-insensitive) or by index into the section list.
type Target struct {
	name    string
	index   int
	byIndex bool
}

// Named targets a section by heading text.
func Named(text string) Target { return Target{name: text} }

// Indexed targets a section by position; negative counts from the end.
func Indexed(i int) Target { return Target{index: i, byIndex: true} }

func (t Target) String() string {
	if t.byIndex {
		return fmt.Sprintf("#%d", t.index)
	}
	return fmt.Sprintf("%q", t.name)
}

// NotFoundError reports a target that resolved to no section.
type NotFoundError struct {
	Target Target
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("section %s not found", e.Target)
}

func resolve(doc *ast.Document, t Target) (*Section, error) {
	var s *Section
	if t.byIndex {
		s = At(doc, t.index)
	} else {
		s = FindByHeading(doc, t.name, 0, false)
	}
	if s == nil {
		return nil, &NotFoundError{Target: t}
	}
	return s, nil
}

// splice returns a new document whose children are the old ones with
// [from,to) replaced by insert. The input document is left untouched;
// its metadata is copied by value.
func splice(doc *ast.Document, from, to int, insert []ast.Block) *ast.Document {
	children := make([]ast.Block, 0, len(doc.Children)-(to-from)+len(insert))
	children = append(children, doc.Children[:from]...)
	children = append(children, insert...)
	children = append(children, doc.Children[to:]...)
	return &ast.Document{
		BaseNode: doc.BaseNode,
		Meta:     doc.Meta.Clone(),
		Children: children,
	}
}

func sectionBlocks(s *Section) []ast.Block {
	out := make([]ast.Block, 0, len(s.Content)+1)
	out = append(out, s.Heading)
	out = append(out, s.Content...)
	return out
}

// AddAfter inserts s immediately after the target section and returns
// the new document.
func AddAfter(doc *ast.Document, target Target, s *Section) (*ast.Document, error) {
	at, err := resolve(doc, target)
	if err != nil {
		return nil, err
	}
	return splice(doc, at.End, at.End, sectionBlocks(s)), nil
}

// AddBefore inserts s immediately before the target section.
func AddBefore(doc *ast.Document, target Target, s *Section) (*ast.Document, error) {
	at, err := resolve(doc, target)
	if err != nil {
		return nil, err
	}
	return splice(doc, at.Start, at.Start, sectionBlocks(s)), nil
}

// Remove deletes the target section, heading and content both.
func Remove(doc *ast.Document, target Target) (*ast.Document, error) {
	at, err := resolve(doc, target)
	if err != nil {
		return nil, err
	}
	return splice(doc, at.Start, at.End, nil), nil
}

// Replace swaps the target section for s.
func Replace(doc *ast.Document, target Target, s *Section) (*ast.Document, error) {
	at, err := resolve(doc, target)
	if err != nil {
		return nil, err
	}
	return splice(doc, at.Start, at.End, sectionBlocks(s)), nil
}

// InsertPos names a position inside a section for InsertInto.
type InsertPos string

const (
	// PosStart inserts right after the section heading.
	PosStart InsertPos = "start"
	// PosAfterHeading is an alias for PosStart.
	PosAfterHeading InsertPos = "after_heading"
	// PosEnd inserts after all existing section content.
	PosEnd InsertPos = "end"
)

// InsertInto places nodes inside the target section at pos.
func InsertInto(doc *ast.Document, target Target, pos InsertPos, nodes ...ast.Block) (*ast.Document, error) {
	at, err := resolve(doc, target)
	if err != nil {
		return nil, err
	}
	var idx int
	switch pos {
	case PosStart, PosAfterHeading:
		idx = at.Start + 1
	case PosEnd:
		idx = at.End
	default:
		return nil, fmt.Errorf("invalid insert position %q", pos)
	}
	return splice(doc, idx, idx, nodes), nil
}
