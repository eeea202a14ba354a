package ast

import (
	"reflect"
	"testing"
)

func sampleDoc() *Document {
	doc := NewDocument()
	doc.Meta[MetaTitle] = "Sample"
	doc.Children = []Block{
		NewHeading(1, &Text{Literal: "Intro"}),
		&Paragraph{Content: []Inline{
			&Text{Literal: "Hello "},
			&Strong{Content: []Inline{&Text{Literal: "world"}}},
		}},
		&List{Items: []*ListItem{
			{Children: []Block{NewParagraph("one")}},
			{Children: []Block{NewParagraph("two")}},
		}},
	}
	return doc
}

func TestWalkVisitsInOrder(t *testing.T) {
	var kinds []Kind
	err := Walk(sampleDoc(), func(n Node, entering bool) (WalkStatus, error) {
		if entering {
			kinds = append(kinds, n.Kind())
		}
		return WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	want := []Kind{
		KindDocument,
		KindHeading, KindText,
		KindParagraph, KindText, KindStrong, KindText,
		KindList,
		KindListItem, KindParagraph, KindText,
		KindListItem, KindParagraph, KindText,
	}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("walk order = %v, want %v", kinds, want)
	}
}

func TestWalkSkipChildren(t *testing.T) {
	var texts int
	Walk(sampleDoc(), func(n Node, entering bool) (WalkStatus, error) {
		if !entering {
			return WalkContinue, nil
		}
		if _, ok := n.(*Strong); ok {
			return WalkSkipChildren, nil
		}
		if _, ok := n.(*Text); ok {
			texts++
		}
		return WalkContinue, nil
	})
	// "world" inside the Strong must not be visited.
	if texts != 4 {
		t.Errorf("visited %d text nodes, want 4", texts)
	}
}

func TestWalkStop(t *testing.T) {
	var visited int
	Walk(sampleDoc(), func(n Node, entering bool) (WalkStatus, error) {
		if entering {
			visited++
			if n.Kind() == KindHeading {
				return WalkStop, nil
			}
		}
		return WalkContinue, nil
	})
	if visited != 2 {
		t.Errorf("visited %d nodes before stop, want 2", visited)
	}
}

func TestCollect(t *testing.T) {
	texts := Collect(sampleDoc(), func(n Node) bool { return n.Kind() == KindText })
	if len(texts) != 5 {
		t.Errorf("collected %d text nodes, want 5", len(texts))
	}
}

func TestCount(t *testing.T) {
	if got := Count(sampleDoc()); got != 14 {
		t.Errorf("Count = %d, want 14", got)
	}
}

func TestTextOf(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{
			name: "formatting dropped",
			node: &Paragraph{Content: []Inline{
				&Text{Literal: "a "},
				&Emphasis{Content: []Inline{&Text{Literal: "b"}}},
				&Code{Literal: " c"},
			}},
			want: "a b c",
		},
		{
			name: "image contributes alt text",
			node: &Image{URL: "http://example.com/x.png", Alt: "diagram"},
			want: "diagram",
		},
		{
			name: "raw html contributes nothing",
			node: &Paragraph{Content: []Inline{
				&Text{Literal: "x"},
				&HTMLInline{Literal: "<b>y</b>"},
			}},
			want: "x",
		},
		{
			name: "line break becomes newline",
			node: &Paragraph{Content: []Inline{
				&Text{Literal: "a"},
				&LineBreak{Hard: true},
				&Text{Literal: "b"},
			}},
			want: "a\nb",
		},
		{
			name: "link flattens to its text",
			node: &Link{URL: "http://example.com", Content: []Inline{&Text{Literal: "here"}}},
			want: "here",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TextOf(tt.node); got != tt.want {
				t.Errorf("TextOf = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCloneIsolation(t *testing.T) {
	orig := sampleDoc()
	clone := CloneDocument(orig)

	clone.Meta[MetaTitle] = "Changed"
	clone.Children[0].(*Heading).Level = 4
	clone.Children[0].(*Heading).Content[0].(*Text).Literal = "Changed"

	if orig.Meta.String(MetaTitle) != "Sample" {
		t.Error("cloned meta mutation leaked into the original")
	}
	h := orig.Children[0].(*Heading)
	if h.Level != 1 || TextOf(h) != "Intro" {
		t.Error("cloned node mutation leaked into the original")
	}
}

func TestCloneCopiesAttrs(t *testing.T) {
	p := NewParagraph("x")
	p.SetAttr("key", "value")

	c := Clone(p).(*Paragraph)
	c.SetAttr("key", "changed")

	if p.Attr("key") != "value" {
		t.Errorf("Attr(key) = %v after mutating clone, want value", p.Attr("key"))
	}
}

func TestMetaCloneDeep(t *testing.T) {
	m := Meta{
		"tags":   []any{"a", "b"},
		"nested": map[string]any{"k": "v"},
	}
	c := m.Clone()
	c["tags"].([]any)[0] = "z"
	c["nested"].(map[string]any)["k"] = "w"

	if m["tags"].([]any)[0] != "a" {
		t.Error("sequence value shared between clone and original")
	}
	if m["nested"].(map[string]any)["k"] != "v" {
		t.Error("mapping value shared between clone and original")
	}
}

func TestNewHeadingClampsLevel(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 1}, {1, 1}, {3, 3}, {6, 6}, {7, 6}, {-2, 1},
	}
	for _, tt := range tests {
		if got := NewHeading(tt.in).Level; got != tt.want {
			t.Errorf("NewHeading(%d).Level = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestKindString(t *testing.T) {
	if KindDocument.String() != "Document" {
		t.Errorf("KindDocument.String() = %q", KindDocument.String())
	}
	if Kind(99).String() != "Unknown" {
		t.Errorf("Kind(99).String() = %q", Kind(99).String())
	}
}

func TestTableColumnCount(t *testing.T) {
	tbl := &Table{
		Header: &TableRow{Cells: []*TableCell{{}, {}}},
		Rows: []*TableRow{
			{Cells: []*TableCell{{}, {}, {}}},
		},
	}
	if got := tbl.ColumnCount(); got != 3 {
		t.Errorf("ColumnCount = %d, want 3", got)
	}
}
