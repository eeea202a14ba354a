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

// Package section groups a document's flat child sequence into heading
// sections and provides queries, persistent mutations, table-of-contents
// generation and range parsing on top of that grouping.
//
// A Section is a view computed on demand from Document.Children, never a
// node stored in the tree. Every query recomputes it with one linear
// scan, and every mutation returns a brand-new document, so a Section
// goes stale the moment its source document is replaced.
package section

import (
	"fmt"
	"strings"

	"github.com/nicholasgasior/docbridge/ast"
)

// Section is a heading plus everything that follows it up to the next
// heading of the same or higher level. Start and End index into the
// source document's children, End exclusive.
type Section struct {
	Heading *ast.Heading
	Content []ast.Block
	Level   int
	Start   int
	End     int
}

// HeadingText flattens the heading's inline content to plain text.
func (s *Section) HeadingText() string {
	return ast.TextOf(s.Heading)
}

// Document wraps the section as a standalone document: the heading
// followed by the section content, deep-copied.
func (s *Section) Document() *ast.Document {
	children := make([]ast.Block, 0, len(s.Content)+1)
	children = append(children, ast.Clone(s.Heading).(*ast.Heading))
	children = append(children, ast.CloneBlocks(s.Content)...)
	return &ast.Document{Meta: ast.Meta{}, Children: children}
}

// New builds a detached section from a title and content blocks, for use
// with AddAfter, AddBefore and Replace.
func New(level int, title string, content ...ast.Block) *Section {
	h := ast.NewHeading(level, &ast.Text{Literal: title})
	return &Section{Heading: h, Content: content, Level: h.Level}
}

// LevelRangeError reports an invalid min/max heading-level request.
type LevelRangeError struct {
	Min, Max int
}

func (e *LevelRangeError) Error() string {
	return fmt.Sprintf("invalid heading level range [%d,%d]: want 1 <= min <= max <= 6", e.Min, e.Max)
}

// Sections returns every section at any heading level.
func Sections(doc *ast.Document) []*Section {
	secs, _ := SectionsInRange(doc, ast.MinHeadingLevel, ast.MaxHeadingLevel)
	return secs
}

// SectionsInRange scans doc.Children once and returns the sections whose
// heading level lies in [minLevel, maxLevel].
//
// An out-of-range heading contributes nothing when no section is open.
// When one is open, a deeper out-of-range heading is absorbed as plain
// content, while a same-or-shallower one closes the open section without
// opening a new one; content after it accumulates nowhere until the next
// in-range heading.
func SectionsInRange(doc *ast.Document, minLevel, maxLevel int) ([]*Section, error) {
	if minLevel < ast.MinHeadingLevel || maxLevel > ast.MaxHeadingLevel || minLevel > maxLevel {
		return nil, &LevelRangeError{Min: minLevel, Max: maxLevel}
	}
	var secs []*Section
	var cur *Section
	for i, child := range doc.Children {
		h, isHeading := child.(*ast.Heading)
		switch {
		case isHeading && h.Level >= minLevel && h.Level <= maxLevel:
			if cur != nil {
				cur.End = i
				secs = append(secs, cur)
			}
			cur = &Section{Heading: h, Level: h.Level, Start: i}
		case isHeading:
			if cur == nil {
				continue
			}
			if h.Level <= cur.Level {
				cur.End = i
				secs = append(secs, cur)
				cur = nil
			} else {
				cur.Content = append(cur.Content, h)
			}
		default:
			if cur != nil {
				cur.Content = append(cur.Content, child)
			}
		}
	}
	if cur != nil {
		cur.End = len(doc.Children)
		secs = append(secs, cur)
	}
	return secs, nil
}

// Preamble returns everything strictly before the first heading of any
// level.
func Preamble(doc *ast.Document) []ast.Block {
	for i, child := range doc.Children {
		if _, ok := child.(*ast.Heading); ok {
			return doc.Children[:i]
		}
	}
	return doc.Children
}

// FindByHeading returns the first section whose flattened heading text
// equals text. level filters by heading level; zero matches any level.
// Comparison folds case unless caseSensitive is set.
func FindByHeading(doc *ast.Document, text string, level int, caseSensitive bool) *Section {
	for _, s := range Sections(doc) {
		if level != 0 && s.Level != level {
			continue
		}
		got := s.HeadingText()
		if caseSensitive {
			if got == text {
				return s
			}
		} else if strings.EqualFold(got, text) {
			return s
		}
	}
	return nil
}

// Find returns every section for which pred holds.
func Find(doc *ast.Document, pred func(*Section) bool) []*Section {
	var out []*Section
	for _, s := range Sections(doc) {
		if pred(s) {
			out = append(out, s)
		}
	}
	return out
}

// At returns the section at index i; negative indexes count from the
// end. Out-of-range indexes return nil rather than an error.
func At(doc *ast.Document, i int) *Section {
	secs := Sections(doc)
	if i < 0 {
		i += len(secs)
	}
	if i < 0 || i >= len(secs) {
		return nil
	}
	return secs[i]
}

// Split returns one document per section. With includePreamble, a
// non-empty preamble becomes the first document.
func Split(doc *ast.Document, includePreamble bool) []*ast.Document {
	var out []*ast.Document
	if includePreamble {
		if pre := Preamble(doc); len(pre) > 0 {
			out = append(out, &ast.Document{
				Meta:     doc.Meta.Clone(),
				Children: ast.CloneBlocks(pre),
			})
		}
	}
	for _, s := range Sections(doc) {
		out = append(out, s.Document())
	}
	return out
}

// WordCount counts whitespace-separated words in the section's content,
// heading excluded.
func (s *Section) WordCount() int {
	n := 0
	for _, b := range s.Content {
		n += len(strings.Fields(ast.TextOf(b)))
	}
	return n
}
