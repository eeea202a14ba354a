package section

import (
	"testing"

	"github.com/nicholasgasior/docbridge/ast"
)

// chapters builds the canonical test layout:
//
//	intro paragraph (preamble)
//	# Chapter 1
//	  body
//	  ## Section 1.1
//	    body
//	  ## Section 1.2
//	    body
//	# Chapter 2
//	  body
func chapters() *ast.Document {
	return ast.NewDocument(
		ast.NewParagraph("intro"),
		ast.NewHeading(1, &ast.Text{Literal: "Chapter 1"}),
		ast.NewParagraph("c1 body"),
		ast.NewHeading(2, &ast.Text{Literal: "Section 1.1"}),
		ast.NewParagraph("s11 body"),
		ast.NewHeading(2, &ast.Text{Literal: "Section 1.2"}),
		ast.NewParagraph("s12 body"),
		ast.NewHeading(1, &ast.Text{Literal: "Chapter 2"}),
		ast.NewParagraph("c2 body"),
	)
}

func TestSectionsBoundaries(t *testing.T) {
	secs := Sections(chapters())
	if len(secs) != 4 {
		t.Fatalf("got %d sections, want 4", len(secs))
	}

	wantLevels := []int{1, 2, 2, 1}
	wantTexts := []string{"Chapter 1", "Section 1.1", "Section 1.2", "Chapter 2"}
	wantStarts := []int{1, 3, 5, 7}
	wantEnds := []int{3, 5, 7, 9}
	for i, s := range secs {
		if s.Level != wantLevels[i] {
			t.Errorf("section %d level = %d, want %d", i, s.Level, wantLevels[i])
		}
		if got := s.HeadingText(); got != wantTexts[i] {
			t.Errorf("section %d heading = %q, want %q", i, got, wantTexts[i])
		}
		if s.Start != wantStarts[i] || s.End != wantEnds[i] {
			t.Errorf("section %d range = [%d,%d), want [%d,%d)", i, s.Start, s.End, wantStarts[i], wantEnds[i])
		}
	}
}

func TestSectionsInRangeAbsorbsDeeperHeadings(t *testing.T) {
	// With only level 1 in range, the H2s become plain content of their
	// chapter instead of opening sections.
	secs, err := SectionsInRange(chapters(), 1, 1)
	if err != nil {
		t.Fatalf("SectionsInRange: %v", err)
	}
	if len(secs) != 2 {
		t.Fatalf("got %d sections, want 2", len(secs))
	}
	// Chapter 1 absorbs both subsections: body + 2 headings + 2 bodies.
	if got := len(secs[0].Content); got != 5 {
		t.Errorf("chapter 1 content = %d blocks, want 5", got)
	}
	if secs[0].End != 7 {
		t.Errorf("chapter 1 End = %d, want 7", secs[0].End)
	}
}

func TestSectionsInRangeShallowerHeadingCloses(t *testing.T) {
	// With only level 2 in range, an H1 closes the open section without
	// opening one; "c2 body" accumulates nowhere.
	secs, err := SectionsInRange(chapters(), 2, 2)
	if err != nil {
		t.Fatalf("SectionsInRange: %v", err)
	}
	if len(secs) != 2 {
		t.Fatalf("got %d sections, want 2", len(secs))
	}
	if secs[1].HeadingText() != "Section 1.2" {
		t.Errorf("last section = %q, want Section 1.2", secs[1].HeadingText())
	}
	if secs[1].End != 7 {
		t.Errorf("Section 1.2 End = %d, want 7 (closed by Chapter 2)", secs[1].End)
	}
}

func TestSectionsInRangeValidation(t *testing.T) {
	for _, r := range [][2]int{{0, 3}, {2, 1}, {1, 7}} {
		if _, err := SectionsInRange(chapters(), r[0], r[1]); err == nil {
			t.Errorf("range [%d,%d]: expected error", r[0], r[1])
		}
	}
}

func TestPreamble(t *testing.T) {
	pre := Preamble(chapters())
	if len(pre) != 1 || ast.TextOf(pre[0]) != "intro" {
		t.Errorf("preamble = %d blocks, want the intro paragraph", len(pre))
	}

	headingless := ast.NewDocument(ast.NewParagraph("a"), ast.NewParagraph("b"))
	if got := Preamble(headingless); len(got) != 2 {
		t.Errorf("headingless preamble = %d blocks, want 2", len(got))
	}
}

func TestFindByHeading(t *testing.T) {
	doc := chapters()

	if s := FindByHeading(doc, "section 1.1", 0, false); s == nil || s.Level != 2 {
		t.Error("case-insensitive lookup failed")
	}
	if s := FindByHeading(doc, "section 1.1", 0, true); s != nil {
		t.Error("case-sensitive lookup matched the wrong case")
	}
	if s := FindByHeading(doc, "Chapter 1", 2, false); s != nil {
		t.Error("level filter matched a level-1 heading as level 2")
	}
	if s := FindByHeading(doc, "nope", 0, false); s != nil {
		t.Error("lookup invented a section")
	}
}

func TestFind(t *testing.T) {
	subs := Find(chapters(), func(s *Section) bool { return s.Level == 2 })
	if len(subs) != 2 {
		t.Errorf("found %d level-2 sections, want 2", len(subs))
	}
}

func TestAt(t *testing.T) {
	doc := chapters()
	if s := At(doc, 0); s == nil || s.HeadingText() != "Chapter 1" {
		t.Error("At(0) wrong")
	}
	if s := At(doc, -1); s == nil || s.HeadingText() != "Chapter 2" {
		t.Error("At(-1) wrong")
	}
	if s := At(doc, 4); s != nil {
		t.Error("At(4) should be nil")
	}
	if s := At(doc, -5); s != nil {
		t.Error("At(-5) should be nil")
	}
}

func TestSectionDocumentIsDetached(t *testing.T) {
	doc := chapters()
	sub := Sections(doc)[0].Document()

	sub.Children[0].(*ast.Heading).Content[0].(*ast.Text).Literal = "Renamed"
	if got := Sections(doc)[0].HeadingText(); got != "Chapter 1" {
		t.Errorf("source heading = %q after mutating the extracted document", got)
	}
}

func TestSplit(t *testing.T) {
	docs := Split(chapters(), true)
	if len(docs) != 5 {
		t.Fatalf("got %d documents, want preamble + 4 sections", len(docs))
	}
	if ast.TextOf(docs[0].Children[0]) != "intro" {
		t.Error("first split document is not the preamble")
	}

	docs = Split(chapters(), false)
	if len(docs) != 4 {
		t.Errorf("got %d documents without preamble, want 4", len(docs))
	}
}

func TestWordCount(t *testing.T) {
	s := Sections(chapters())[0]
	if got := s.WordCount(); got != 2 {
		t.Errorf("WordCount = %d, want 2", got)
	}
}
