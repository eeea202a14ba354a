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

// Text is a run of literal text.
type Text struct {
	BaseInline
	Literal string
}

func (*Text) Kind() Kind { return KindText }

type Strong struct {
	BaseInline
	Content []Inline
}

func (*Strong) Kind() Kind { return KindStrong }

type Emphasis struct {
	BaseInline
	Content []Inline
}

func (*Emphasis) Kind() Kind { return KindEmphasis }

// Code is an inline code span.
type Code struct {
	BaseInline
	Literal string
}

func (*Code) Kind() Kind { return KindCode }

type Link struct {
	BaseInline
	URL     string
	Title   string
	Content []Inline
}

func (*Link) Kind() Kind { return KindLink }

type Image struct {
	BaseInline
	URL   string
	Alt   string
	Title string
}

func (*Image) Kind() Kind { return KindImage }

// LineBreak is a hard or soft break inside inline content.
type LineBreak struct {
	BaseInline
	Hard bool
}

func (*LineBreak) Kind() Kind { return KindLineBreak }

// HTMLInline carries raw inline markup.
type HTMLInline struct {
	BaseInline
	Literal string
}

func (*HTMLInline) Kind() Kind { return KindHTMLInline }

type FootnoteReference struct {
	BaseInline
	Label string
}

func (*FootnoteReference) Kind() Kind { return KindFootnoteReference }

type MathInline struct {
	BaseInline
	Literal string
}

func (*MathInline) Kind() Kind { return KindMathInline }

type Strikethrough struct {
	BaseInline
	Content []Inline
}

func (*Strikethrough) Kind() Kind { return KindStrikethrough }

type Underline struct {
	BaseInline
	Content []Inline
}

func (*Underline) Kind() Kind { return KindUnderline }

type Superscript struct {
	BaseInline
	Content []Inline
}

func (*Superscript) Kind() Kind { return KindSuperscript }

type Subscript struct {
	BaseInline
	Content []Inline
}

func (*Subscript) Kind() Kind { return KindSubscript }

type CommentInline struct {
	BaseInline
	Literal string
}

func (*CommentInline) Kind() Kind { return KindCommentInline }
