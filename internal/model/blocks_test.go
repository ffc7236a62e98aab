package model_test

import (
	"testing"

	"github.com/scribepad/scribe/internal/model"
)

func TestHeadingLevelClamped(t *testing.T) {
	if got := model.NewHeading(0).Level(); got != 1 {
		t.Errorf("NewHeading(0).Level() = %d, want 1", got)
	}
	if got := model.NewHeading(9).Level(); got != 5 {
		t.Errorf("NewHeading(9).Level() = %d, want 5", got)
	}
	if got := model.NewHeading(3).Tag(); got != "h3" {
		t.Errorf("Tag() = %q, want %q", got, "h3")
	}
}

func TestIndentClamped(t *testing.T) {
	p := model.NewParagraph()
	p.SetIndent(99)
	if got := p.Indent(); got != model.MaxIndent {
		t.Errorf("Indent() = %d, want %d", got, model.MaxIndent)
	}
	p.SetIndent(-3)
	if got := p.Indent(); got != 0 {
		t.Errorf("Indent() = %d, want 0", got)
	}
}

func TestCanInsertTab(t *testing.T) {
	blocks := []model.Element{
		model.NewParagraph(),
		model.NewHeading(1),
		model.NewQuote(),
	}
	for _, b := range blocks {
		if b.CanInsertTab() {
			t.Errorf("%s accepts tabs, want indent handling", b.Type())
		}
	}
	if !model.NewCode("go").CanInsertTab() {
		t.Error("code block should accept literal tabs")
	}
}

func TestQuoteCollapseAtStartMigratesChildren(t *testing.T) {
	d := model.New()
	q := model.NewQuote()
	q.SetDirection(model.DirectionLTR)
	d.AppendChild(d.Root(), q)
	run := model.NewText("quoted")
	d.AppendChild(q, run)
	d.AppendChild(q, model.NewLineBreak())

	d.SetSelection(model.NewCaret(model.ElementPoint(q.Key(), 0)))

	if !q.CollapseAtStart(d) {
		t.Fatal("expected the quote to handle the collapse")
	}

	first, ok := d.ChildAt(d.Root(), 0)
	if !ok {
		t.Fatal("root lost its first block")
	}
	p, isPara := first.(*model.ParagraphNode)
	if !isPara {
		t.Fatalf("first block is %q, want paragraph", first.Type())
	}
	if p.ChildCount() != 2 {
		t.Errorf("paragraph has %d children, want 2", p.ChildCount())
	}
	if p.Direction() != model.DirectionLTR {
		t.Errorf("direction = %q, want inherited ltr", p.Direction())
	}
	if _, ok := d.Node(q.Key()); ok {
		t.Error("collapsed quote still registered")
	}

	// The selection point on the old key follows to the paragraph.
	sel := d.Selection().(*model.RangeSelection)
	if sel.Anchor.Key != p.Key() {
		t.Error("selection did not retarget to the replacement block")
	}
}

func TestParagraphCollapseAtStartDeclines(t *testing.T) {
	d := model.New()
	p, _ := para(d, "plain")
	if p.CollapseAtStart(d) {
		t.Error("paragraphs merge through the default path")
	}
}

func TestInsertNewAfterParagraphCarriesAttrs(t *testing.T) {
	d := model.New()
	p, _ := para(d, "src")
	p.SetIndent(2)
	p.SetFormat(model.FormatCenter)
	p.SetDirection(model.DirectionRTL)

	next := p.InsertNewAfter(d)
	if next.Type() != model.TypeParagraph {
		t.Fatalf("successor is %q, want paragraph", next.Type())
	}
	if next.Indent() != 2 || next.Format() != model.FormatCenter || next.Direction() != model.DirectionRTL {
		t.Errorf("successor attrs = indent %d format %q dir %q", next.Indent(), next.Format(), next.Direction())
	}

	sib, ok := d.NextSibling(p)
	if !ok || sib.Key() != next.Key() {
		t.Error("successor not inserted after the source block")
	}
}

func TestInsertNewAfterHeadingDropsAttrs(t *testing.T) {
	d := model.New()
	h := model.NewHeading(2)
	h.SetIndent(3)
	h.SetDirection(model.DirectionRTL)
	d.AppendChild(d.Root(), h)

	next := h.InsertNewAfter(d)
	if next.Type() != model.TypeParagraph {
		t.Fatalf("successor is %q, want paragraph", next.Type())
	}
	if next.Direction() != model.DirectionRTL {
		t.Error("successor should inherit direction")
	}
	if next.Indent() != 0 {
		t.Error("successor should not inherit heading indent")
	}
}
