package docfile

import (
	"testing"

	"github.com/fumiama/go-docx"
)

func run(texts ...string) *docx.Run {
	r := &docx.Run{}
	for _, t := range texts {
		r.Children = append(r.Children, &docx.Text{Text: t})
	}
	return r
}

func paragraph(runs ...*docx.Run) *docx.Paragraph {
	p := &docx.Paragraph{}
	for _, r := range runs {
		p.Children = append(p.Children, r)
	}
	return p
}

func TestRunTexts_FlattensInOrder(t *testing.T) {
	p := paragraph(run("between [Com"), run("pany "), run("Name] and"))
	got := runTexts(p)
	want := []string{"between [Com", "pany ", "Name] and"}
	if len(got) != len(want) {
		t.Fatalf("expected %d runs, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("run %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestFillParagraph_CollapsesSplitToken(t *testing.T) {
	bold := &docx.RunProperties{}
	first := run("between [Com")
	first.RunProperties = bold
	p := paragraph(first, run("pany "), run("Name] and the Investor"))

	fillParagraph(p, map[string]string{"[Company Name]": "Acme Inc."})

	if len(p.Children) != 1 {
		t.Fatalf("expected 1 child after collapse, got %d", len(p.Children))
	}
	kept, ok := p.Children[0].(*docx.Run)
	if !ok {
		t.Fatalf("expected kept child to be a run, got %T", p.Children[0])
	}
	if kept.RunProperties != bold {
		t.Error("collapsed run must carry the first run's properties")
	}
	if len(kept.Children) != 1 {
		t.Fatalf("expected single text child, got %d", len(kept.Children))
	}
	text, ok := kept.Children[0].(*docx.Text)
	if !ok {
		t.Fatalf("expected text child, got %T", kept.Children[0])
	}
	if text.Text != "between Acme Inc. and the Investor" {
		t.Errorf("unexpected rewritten text: %q", text.Text)
	}
	if text.XMLSpace != "preserve" {
		t.Errorf("rewritten text must preserve whitespace, got xml:space=%q", text.XMLSpace)
	}
}

func TestFillParagraph_UnmatchedParagraphUntouched(t *testing.T) {
	r1, r2 := run("no tokens "), run("here")
	p := paragraph(r1, r2)

	fillParagraph(p, map[string]string{"[X]": "y"})

	if len(p.Children) != 2 {
		t.Fatalf("expected 2 runs untouched, got %d", len(p.Children))
	}
	if p.Children[0] != any(r1) || p.Children[1] != any(r2) {
		t.Error("unmatched paragraph must keep its original run fragments")
	}
}

func TestFillParagraph_EmptyParagraph(t *testing.T) {
	p := &docx.Paragraph{}
	fillParagraph(p, map[string]string{"[X]": "y"}) // must not panic
	if len(p.Children) != 0 {
		t.Errorf("expected empty paragraph to stay empty, got %d children", len(p.Children))
	}
}
