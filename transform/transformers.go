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

package transform

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nicholasgasior/docbridge/ast"
	"github.com/nicholasgasior/docbridge/internal/safety"
)

// HeadingLevelShift adds Offset to every heading level, clamping the
// result into [MinLevel, MaxLevel]. A zero bound means the corresponding
// end of the full [1,6] range, so a bare struct literal shifts within
// the whole range. It is total: no input can fail it.
type HeadingLevelShift struct {
	Offset   int
	MinLevel int
	MaxLevel int
}

// NewHeadingLevelShift returns a shift bounded by the full [1,6] range.
func NewHeadingLevelShift(offset int) *HeadingLevelShift {
	return &HeadingLevelShift{Offset: offset, MinLevel: ast.MinHeadingLevel, MaxLevel: ast.MaxHeadingLevel}
}

func (s *HeadingLevelShift) TransformNode(n ast.Node) (ast.Node, error) {
	h, ok := n.(*ast.Heading)
	if !ok {
		return n, nil
	}
	lo, hi := s.MinLevel, s.MaxLevel
	if lo == 0 {
		lo = ast.MinHeadingLevel
	}
	if hi == 0 {
		hi = ast.MaxHeadingLevel
	}
	level := h.Level + s.Offset
	if level < lo {
		level = lo
	}
	if level > hi {
		level = hi
	}
	h.Level = ast.ClampHeadingLevel(level)
	return h, nil
}

// URLMapper rewrites one URL.
type URLMapper func(url string) (string, error)

// LinkRewriter applies Mapper to every Link and Image URL. With
// ValidateURLs set, each rewritten URL must pass the safety check or the
// whole transform fails and no tree is returned.
type LinkRewriter struct {
	Mapper       URLMapper
	ValidateURLs bool
}

// NewLinkRewriter returns a rewriter with validation enabled.
func NewLinkRewriter(mapper URLMapper) *LinkRewriter {
	return &LinkRewriter{Mapper: mapper, ValidateURLs: true}
}

func (r *LinkRewriter) TransformNode(n ast.Node) (ast.Node, error) {
	var url *string
	switch v := n.(type) {
	case *ast.Link:
		url = &v.URL
	case *ast.Image:
		url = &v.URL
	default:
		return n, nil
	}
	mapped, err := r.Mapper(*url)
	if err != nil {
		return nil, fmt.Errorf("rewrite URL %q: %w", *url, err)
	}
	if r.ValidateURLs {
		if err := safety.CheckURL(mapped); err != nil {
			return nil, err
		}
	}
	*url = mapped
	return n, nil
}

// TextReplacer substitutes inside every Text node, either literally or by
// regular expression. A broken pattern fails at construction, so a
// replacer that exists can never abort mid-tree.
type TextReplacer struct {
	literal     string
	replacement string
	re          *regexp.Regexp
}

// NewTextReplacer builds a replacer. With useRegex the pattern is checked
// against catastrophic-backtracking risk and compiled immediately.
func NewTextReplacer(pattern, replacement string, useRegex bool) (*TextReplacer, error) {
	t := &TextReplacer{replacement: replacement}
	if useRegex {
		if err := safety.CheckPattern(pattern); err != nil {
			return nil, err
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compile pattern: %w", err)
		}
		t.re = re
	} else {
		t.literal = pattern
	}
	return t, nil
}

func (t *TextReplacer) TransformNode(n ast.Node) (ast.Node, error) {
	txt, ok := n.(*ast.Text)
	if !ok {
		return n, nil
	}
	if t.re != nil {
		txt.Literal = t.re.ReplaceAllString(txt.Literal, t.replacement)
	} else {
		txt.Literal = strings.ReplaceAll(txt.Literal, t.literal, t.replacement)
	}
	return txt, nil
}
