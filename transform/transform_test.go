package transform

import (
	"errors"
	"strings"
	"testing"

	"github.com/nicholasgasior/docbridge/ast"
)

func testDoc() *ast.Document {
	doc := ast.NewDocument()
	doc.Meta["title"] = "Original"
	doc.Children = []ast.Block{
		ast.NewHeading(1, &ast.Text{Literal: "Title"}),
		&ast.Paragraph{Content: []ast.Inline{
			&ast.Text{Literal: "See "},
			&ast.Link{
				URL:     "http://example.com/a",
				Content: []ast.Inline{&ast.Text{Literal: "the docs"}},
			},
		}},
		ast.NewHeading(5, &ast.Text{Literal: "Deep"}),
	}
	return doc
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	doc := testDoc()
	out, err := Apply(doc, NewHeadingLevelShift(2))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if h := doc.Children[0].(*ast.Heading); h.Level != 1 {
		t.Errorf("input heading level changed to %d", h.Level)
	}
	if h := out.Children[0].(*ast.Heading); h.Level != 3 {
		t.Errorf("output heading level = %d, want 3", h.Level)
	}
}

func TestApplyDetachesNodeAttrs(t *testing.T) {
	doc := testDoc()
	h := doc.Children[0].(*ast.Heading)
	h.SetAttr("id", "orig")

	out, err := Apply(doc, Func(func(n ast.Node) (ast.Node, error) {
		if hh, ok := n.(*ast.Heading); ok {
			hh.SetAttr("id", "changed")
		}
		return n, nil
	}))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if got := h.Attr("id"); got != "orig" {
		t.Errorf("input heading attr changed to %v", got)
	}
	if got := out.Children[0].(*ast.Heading).Attr("id"); got != "changed" {
		t.Errorf("output heading attr = %v, want changed", got)
	}
}

func TestHeadingLevelShiftClamps(t *testing.T) {
	tests := []struct {
		offset int
		want   []int // levels of the two headings (1 and 5)
	}{
		{2, []int{3, 6}},
		{-3, []int{1, 2}},
		{10, []int{6, 6}},
		{0, []int{1, 5}},
	}
	for _, tt := range tests {
		out, err := Apply(testDoc(), NewHeadingLevelShift(tt.offset))
		if err != nil {
			t.Fatalf("Apply(offset=%d): %v", tt.offset, err)
		}
		got := []int{
			out.Children[0].(*ast.Heading).Level,
			out.Children[2].(*ast.Heading).Level,
		}
		if got[0] != tt.want[0] || got[1] != tt.want[1] {
			t.Errorf("offset %d: levels = %v, want %v", tt.offset, got, tt.want)
		}
	}
}

func TestHeadingLevelShiftZeroBoundsDefault(t *testing.T) {
	// A bare struct literal leaves MinLevel/MaxLevel at zero; the shift
	// must still clamp within [1,6], not collapse everything to 1.
	out, err := Apply(testDoc(), &HeadingLevelShift{Offset: 2})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if h := out.Children[0].(*ast.Heading); h.Level != 3 {
		t.Errorf("heading level = %d, want 3", h.Level)
	}
	if h := out.Children[2].(*ast.Heading); h.Level != 6 {
		t.Errorf("deep heading level = %d, want 6", h.Level)
	}
}

func TestDropSubtree(t *testing.T) {
	out, err := Apply(testDoc(), Func(func(n ast.Node) (ast.Node, error) {
		if h, ok := n.(*ast.Heading); ok && h.Level > 1 {
			return nil, nil
		}
		return n, nil
	}))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(out.Children) != 2 {
		t.Errorf("got %d children, want 2", len(out.Children))
	}
}

func TestDropRootYieldsEmptyDocument(t *testing.T) {
	doc := testDoc()
	out, err := Apply(doc, Func(func(n ast.Node) (ast.Node, error) {
		if _, ok := n.(*ast.Document); ok {
			return nil, nil
		}
		return n, nil
	}))
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(out.Children) != 0 {
		t.Errorf("got %d children, want 0", len(out.Children))
	}
	if out.Meta.String("title") != "Original" {
		t.Error("dropped root lost the document metadata")
	}
}

func TestRootReplacementRejected(t *testing.T) {
	_, err := Apply(testDoc(), Func(func(n ast.Node) (ast.Node, error) {
		if _, ok := n.(*ast.Document); ok {
			return ast.NewParagraph("not a document"), nil
		}
		return n, nil
	}))
	if err == nil {
		t.Fatal("expected error for non-document root replacement")
	}
}

func TestLinkRewriter(t *testing.T) {
	r := NewLinkRewriter(func(url string) (string, error) {
		return strings.Replace(url, "http://", "https://", 1), nil
	})
	out, err := Apply(testDoc(), r)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	link := out.Children[1].(*ast.Paragraph).Content[1].(*ast.Link)
	if link.URL != "https://example.com/a" {
		t.Errorf("URL = %q, want https://example.com/a", link.URL)
	}
}

func TestLinkRewriterRejectsUnsafeURL(t *testing.T) {
	doc := testDoc()
	r := NewLinkRewriter(func(string) (string, error) {
		return "javascript:alert(1)", nil
	})
	if _, err := Apply(doc, r); err == nil {
		t.Fatal("expected error for javascript: URL")
	}
	// Failed transform must leave the input untouched.
	link := doc.Children[1].(*ast.Paragraph).Content[1].(*ast.Link)
	if link.URL != "http://example.com/a" {
		t.Errorf("input URL changed to %q", link.URL)
	}
}

func TestLinkRewriterMapperError(t *testing.T) {
	wantErr := errors.New("boom")
	r := NewLinkRewriter(func(string) (string, error) { return "", wantErr })
	if _, err := Apply(testDoc(), r); !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want wrapped %v", err, wantErr)
	}
}

func TestTextReplacerLiteral(t *testing.T) {
	tr, err := NewTextReplacer("docs", "manual", false)
	if err != nil {
		t.Fatalf("NewTextReplacer: %v", err)
	}
	out, err := Apply(testDoc(), tr)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	link := out.Children[1].(*ast.Paragraph).Content[1].(*ast.Link)
	if got := ast.TextOf(link); got != "the manual" {
		t.Errorf("link text = %q, want %q", got, "the manual")
	}
}

func TestTextReplacerRegex(t *testing.T) {
	tr, err := NewTextReplacer(`D\w+`, "X", true)
	if err != nil {
		t.Fatalf("NewTextReplacer: %v", err)
	}
	out, err := Apply(testDoc(), tr)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := ast.TextOf(out.Children[2]); got != "X" {
		t.Errorf("heading text = %q, want X", got)
	}
}

func TestTextReplacerBadPatternFailsAtConstruction(t *testing.T) {
	if _, err := NewTextReplacer("([a-z", "x", true); err == nil {
		t.Error("expected error for unbalanced pattern")
	}
	if _, err := NewTextReplacer("(a+)+", "x", true); err == nil {
		t.Error("expected error for nested quantifier pattern")
	}
}

func TestExtractNodes(t *testing.T) {
	doc := testDoc()

	headings := ExtractNodes(doc, ast.KindHeading)
	if len(headings) != 2 {
		t.Errorf("extracted %d headings, want 2", len(headings))
	}

	mixed := ExtractNodes(doc, ast.KindHeading, ast.KindLink)
	if len(mixed) != 3 {
		t.Errorf("extracted %d heading+link nodes, want 3", len(mixed))
	}

	all := ExtractNodes(doc)
	if len(all) != ast.Count(doc) {
		t.Errorf("extracted %d nodes with no kinds, want all %d", len(all), ast.Count(doc))
	}
}

func TestFilterNodesDropsSubtree(t *testing.T) {
	doc := testDoc()
	out := FilterNodes(doc, func(n ast.Node) bool {
		_, isPara := n.(*ast.Paragraph)
		return !isPara
	})
	if len(out.Children) != 2 {
		t.Errorf("got %d children, want 2", len(out.Children))
	}
	// The link inside the rejected paragraph must be gone too.
	if links := ExtractNodes(out, ast.KindLink); len(links) != 0 {
		t.Errorf("found %d links inside a rejected subtree", len(links))
	}
}

func TestMergeDocuments(t *testing.T) {
	a := ast.NewDocument(ast.NewParagraph("a"))
	a.Meta["v"] = "1.0"
	a.Meta["author"] = "Alice"
	b := ast.NewDocument(ast.NewParagraph("b"))
	b.Meta["v"] = "2.0"
	c := ast.NewDocument(ast.NewParagraph("c"))
	c.Meta["date"] = "2025"

	out := MergeDocuments([]*ast.Document{a, b, c}, LastWriteWins)
	if len(out.Children) != 3 {
		t.Fatalf("got %d children, want 3", len(out.Children))
	}
	if out.Meta.String("v") != "2.0" || out.Meta.String("author") != "Alice" || out.Meta.String("date") != "2025" {
		t.Errorf("merged meta = %v", out.Meta)
	}

	// The result must not share nodes with the inputs.
	out.Children[0].(*ast.Paragraph).Content[0].(*ast.Text).Literal = "changed"
	if ast.TextOf(a.Children[0]) != "a" {
		t.Error("merged document shares nodes with its input")
	}
}

func TestMergePolicies(t *testing.T) {
	acc := ast.Meta{"v": "1.0", "tags": []any{"x"}}
	next := ast.Meta{"v": "2.0", "tags": []any{"y"}}

	if got := FirstWriteWins(acc, next); got.String("v") != "1.0" {
		t.Errorf("FirstWriteWins v = %q, want 1.0", got.String("v"))
	}
	if got := LastWriteWins(acc, next); got.String("v") != "2.0" {
		t.Errorf("LastWriteWins v = %q, want 2.0", got.String("v"))
	}

	merged := MergeLists(acc, next)
	tags, ok := merged["tags"].([]any)
	if !ok || len(tags) != 2 || tags[0] != "x" || tags[1] != "y" {
		t.Errorf("MergeLists tags = %v, want [x y]", merged["tags"])
	}
	if merged.String("v") != "2.0" {
		t.Errorf("MergeLists scalar v = %q, want last-write 2.0", merged.String("v"))
	}
}
