package section

import (
	"errors"
	"testing"

	"github.com/nicholasgasior/docbridge/ast"
)

func countChildren(doc *ast.Document) int { return len(doc.Children) }

func TestAddAfter(t *testing.T) {
	doc := chapters()
	add := New(1, "Chapter 1.5", ast.NewParagraph("inserted"))

	out, err := AddAfter(doc, Named("Chapter 1"), add)
	if err != nil {
		t.Fatalf("AddAfter: %v", err)
	}

	secs := Sections(out)
	if len(secs) != 5 {
		t.Fatalf("got %d sections, want 5", len(secs))
	}
	// Chapter 1's own span ends where its first subsection begins.
	if secs[1].HeadingText() != "Chapter 1.5" {
		t.Errorf("section 1 = %q, want Chapter 1.5", secs[1].HeadingText())
	}
	if countChildren(doc) != 9 {
		t.Error("AddAfter mutated the input document")
	}
}

func TestAddBefore(t *testing.T) {
	doc := chapters()
	add := New(1, "Chapter 0")

	out, err := AddBefore(doc, Indexed(0), add)
	if err != nil {
		t.Fatalf("AddBefore: %v", err)
	}
	if got := Sections(out)[0].HeadingText(); got != "Chapter 0" {
		t.Errorf("first section = %q, want Chapter 0", got)
	}
}

func TestRemove(t *testing.T) {
	doc := chapters()
	out, err := Remove(doc, Named("Section 1.1"))
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if s := FindByHeading(out, "Section 1.1", 0, false); s != nil {
		t.Error("removed section still present")
	}
	if countChildren(out) != 7 {
		t.Errorf("got %d children, want 7", countChildren(out))
	}
	if countChildren(doc) != 9 {
		t.Error("Remove mutated the input document")
	}
}

func TestReplace(t *testing.T) {
	doc := chapters()
	repl := New(1, "Chapter Two", ast.NewParagraph("new body"), ast.NewParagraph("more"))

	out, err := Replace(doc, Named("Chapter 2"), repl)
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	s := FindByHeading(out, "Chapter Two", 0, false)
	if s == nil {
		t.Fatal("replacement section missing")
	}
	if len(s.Content) != 2 {
		t.Errorf("replacement content = %d blocks, want 2", len(s.Content))
	}
	if FindByHeading(out, "Chapter 2", 0, false) != nil {
		t.Error("replaced section still present")
	}
}

func TestInsertInto(t *testing.T) {
	doc := chapters()

	out, err := InsertInto(doc, Named("Chapter 2"), PosStart, ast.NewParagraph("first"))
	if err != nil {
		t.Fatalf("InsertInto start: %v", err)
	}
	s := FindByHeading(out, "Chapter 2", 0, false)
	if got := ast.TextOf(s.Content[0]); got != "first" {
		t.Errorf("first content block = %q, want first", got)
	}

	out, err = InsertInto(doc, Named("Chapter 2"), PosEnd, ast.NewParagraph("last"))
	if err != nil {
		t.Fatalf("InsertInto end: %v", err)
	}
	s = FindByHeading(out, "Chapter 2", 0, false)
	if got := ast.TextOf(s.Content[len(s.Content)-1]); got != "last" {
		t.Errorf("last content block = %q, want last", got)
	}

	if _, err := InsertInto(doc, Named("Chapter 2"), InsertPos("middle")); err == nil {
		t.Error("expected error for invalid insert position")
	}
}

func TestMutationsTargetNotFound(t *testing.T) {
	doc := chapters()
	var nf *NotFoundError

	_, err := Remove(doc, Named("Ghost"))
	if !errors.As(err, &nf) {
		t.Errorf("Remove err = %v, want NotFoundError", err)
	}

	_, err = AddAfter(doc, Indexed(10), New(1, "X"))
	if !errors.As(err, &nf) {
		t.Errorf("AddAfter err = %v, want NotFoundError", err)
	}
}

func TestIndexedNegativeTarget(t *testing.T) {
	doc := chapters()
	out, err := Remove(doc, Indexed(-1))
	if err != nil {
		t.Fatalf("Remove(-1): %v", err)
	}
	if FindByHeading(out, "Chapter 2", 0, false) != nil {
		t.Error("Indexed(-1) did not remove the last section")
	}
}

func TestMutationMetaIsCopied(t *testing.T) {
	doc := chapters()
	doc.Meta["title"] = "Book"

	out, err := Remove(doc, Indexed(0))
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	out.Meta["title"] = "Changed"
	if doc.Meta.String("title") != "Book" {
		t.Error("mutation result shares metadata with the input")
	}
}
