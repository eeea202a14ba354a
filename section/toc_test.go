package section

import (
	"strings"
	"testing"

	"github.com/nicholasgasior/docbridge/ast"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Hello World", "hello-world"},
		{"Café au lait", "cafe-au-lait"},
		{"snake_case_title", "snake-case-title"},
		{"  spaced   out  ", "spaced-out"},
		{"C++ & Go!", "c-go"},
		{"100% Done", "100-done"},
		{"---", "section"},
		{"!!!", "section"},
		{"Über Äpfel", "uber-apfel"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUniqueSlug(t *testing.T) {
	seen := map[string]struct{}{}
	got := []string{
		UniqueSlug("Introduction", seen),
		UniqueSlug("Introduction", seen),
		UniqueSlug("Introduction", seen),
		UniqueSlug("Setup", seen),
	}
	want := []string{"introduction", "introduction-2", "introduction-3", "setup"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slug %d = %q, want %q", i, got[i], want[i])
		}
	}

	// Nil set means no collision tracking.
	if s := UniqueSlug("Introduction", nil); s != "introduction" {
		t.Errorf("UniqueSlug with nil set = %q", s)
	}
}

// linkCount counts link-bearing items in a (possibly nested) TOC list.
// Bridge items synthesized for level gaps carry no link of their own.
func linkCount(l *ast.List) int {
	n := 0
	ast.Walk(l, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if _, ok := node.(*ast.Link); ok {
				n++
			}
		}
		return ast.WalkContinue, nil
	})
	return n
}

func TestListTOCFlat(t *testing.T) {
	list, err := ListTOC(chapters(), 6, false)
	if err != nil {
		t.Fatalf("ListTOC: %v", err)
	}
	if len(list.Items) != 4 {
		t.Errorf("flat TOC has %d items, want 4", len(list.Items))
	}
	link := list.Items[0].Children[0].(*ast.Paragraph).Content[0].(*ast.Link)
	if link.URL != "#chapter-1" {
		t.Errorf("first link URL = %q, want #chapter-1", link.URL)
	}
}

func TestListTOCNestedKeepsEveryEntry(t *testing.T) {
	flat, err := ListTOC(chapters(), 6, false)
	if err != nil {
		t.Fatalf("flat: %v", err)
	}
	nested, err := ListTOC(chapters(), 6, true)
	if err != nil {
		t.Fatalf("nested: %v", err)
	}
	if linkCount(nested) != linkCount(flat) {
		t.Errorf("nested TOC has %d links, flat has %d", linkCount(nested), linkCount(flat))
	}

	// Top level holds the two chapters; subsections nest under chapter 1.
	if len(nested.Items) != 2 {
		t.Fatalf("nested top level has %d items, want 2", len(nested.Items))
	}
	sub := nested.Items[0].Children[len(nested.Items[0].Children)-1].(*ast.List)
	if len(sub.Items) != 2 {
		t.Errorf("chapter 1 sublist has %d items, want 2", len(sub.Items))
	}
}

func TestListTOCBridgesLevelGaps(t *testing.T) {
	doc := ast.NewDocument(
		ast.NewHeading(1, &ast.Text{Literal: "Top"}),
		ast.NewHeading(3, &ast.Text{Literal: "Deep"}),
	)
	nested, err := ListTOC(doc, 6, true)
	if err != nil {
		t.Fatalf("ListTOC: %v", err)
	}
	if linkCount(nested) != 2 {
		t.Errorf("bridged TOC has %d links, want 2", linkCount(nested))
	}
	// H1 -> sublist -> bridge item -> sublist -> H3.
	l2 := nested.Items[0].Children[len(nested.Items[0].Children)-1].(*ast.List)
	bridge := l2.Items[0]
	l3 := bridge.Children[len(bridge.Children)-1].(*ast.List)
	if got := ast.TextOf(l3.Items[0]); got != "Deep" {
		t.Errorf("innermost item = %q, want Deep", got)
	}
}

func TestListTOCRespectsMaxLevel(t *testing.T) {
	list, err := ListTOC(chapters(), 1, false)
	if err != nil {
		t.Fatalf("ListTOC: %v", err)
	}
	if len(list.Items) != 2 {
		t.Errorf("maxLevel=1 TOC has %d items, want 2", len(list.Items))
	}
}

func TestMarkdownTOC(t *testing.T) {
	out, err := MarkdownTOC(chapters(), 6)
	if err != nil {
		t.Fatalf("MarkdownTOC: %v", err)
	}
	want := "- [Chapter 1](#chapter-1)\n" +
		"  - [Section 1.1](#section-11)\n" +
		"  - [Section 1.2](#section-12)\n" +
		"- [Chapter 2](#chapter-2)\n"
	if out != want {
		t.Errorf("MarkdownTOC = %q, want %q", out, want)
	}
}

func TestMarkdownTOCDuplicateHeadings(t *testing.T) {
	doc := ast.NewDocument(
		ast.NewHeading(1, &ast.Text{Literal: "Introduction"}),
		ast.NewHeading(1, &ast.Text{Literal: "Introduction"}),
	)
	out, err := MarkdownTOC(doc, 6)
	if err != nil {
		t.Fatalf("MarkdownTOC: %v", err)
	}
	if !strings.Contains(out, "#introduction)") || !strings.Contains(out, "#introduction-2)") {
		t.Errorf("duplicate headings not disambiguated:\n%s", out)
	}
}

func TestInsertTOCAtStart(t *testing.T) {
	doc := chapters()
	out, err := InsertTOC(doc, TOCAtStart, 6, TOCNestedStyle)
	if err != nil {
		t.Fatalf("InsertTOC: %v", err)
	}
	h, ok := out.Children[0].(*ast.Heading)
	if !ok || ast.TextOf(h) != "Table of Contents" {
		t.Fatal("TOC heading not at document start")
	}
	if _, ok := out.Children[1].(*ast.List); !ok {
		t.Fatal("TOC list not after the TOC heading")
	}
	if len(doc.Children) != 9 {
		t.Error("InsertTOC mutated the input document")
	}
}

func TestInsertTOCAfterFirstHeading(t *testing.T) {
	out, err := InsertTOC(chapters(), TOCAfterFirstHeading, 6, TOCFlatStyle)
	if err != nil {
		t.Fatalf("InsertTOC: %v", err)
	}
	// Children: intro, Chapter 1 heading, then the TOC.
	h, ok := out.Children[2].(*ast.Heading)
	if !ok || ast.TextOf(h) != "Table of Contents" {
		t.Fatalf("TOC heading not after the first document heading")
	}
}

func TestInsertTOCInvalidArgs(t *testing.T) {
	if _, err := InsertTOC(chapters(), TOCAtStart, 6, TOCStyle("fancy")); err == nil {
		t.Error("expected error for invalid style")
	}
	if _, err := InsertTOC(chapters(), TOCPosition("bottom"), 6, TOCFlatStyle); err == nil {
		t.Error("expected error for invalid position")
	}
	if _, err := InsertTOC(chapters(), TOCAtStart, 9, TOCFlatStyle); err == nil {
		t.Error("expected error for out-of-range depth")
	}
}
