package model_test

import (
	"testing"

	"github.com/scribepad/scribe/internal/model"
)

func TestFormatTextMiddleRangeSplitsRun(t *testing.T) {
	d := model.New()
	p, run := para(d, "hello world")

	sel := model.NewRange(model.TextPoint(run.Key(), 6), model.TextPoint(run.Key(), 11))
	d.SetSelection(sel)
	d.FormatText(sel, model.StyleBold)

	if p.ChildCount() != 2 {
		t.Fatalf("block has %d runs, want 2", p.ChildCount())
	}
	second, _ := d.ChildAt(p, 1)
	bolded, ok := second.(*model.TextNode)
	if !ok {
		t.Fatal("second child is not a text run")
	}
	if bolded.Text() != "world" || !bolded.Style().Has(model.StyleBold) {
		t.Errorf("run %q style %v, want bold %q", bolded.Text(), bolded.Style(), "world")
	}
	if run.Style() != 0 {
		t.Error("leading run picked up the style")
	}

	// The selection now covers exactly the formatted run.
	after := d.Selection().(*model.RangeSelection)
	if after.Anchor.Key != bolded.Key() || after.Focus.Offset != bolded.Len() {
		t.Error("selection does not span the formatted run")
	}
}

func TestFormatTextMixedRunsAllOrNothing(t *testing.T) {
	d := model.New()
	p := model.NewParagraph()
	d.AppendChild(d.Root(), p)
	plain := model.NewText("plain ")
	d.AppendChild(p, plain)
	bold := model.NewStyledText("bold", model.StyleBold)
	d.AppendChild(p, bold)

	sel := model.NewRange(model.TextPoint(plain.Key(), 0), model.TextPoint(bold.Key(), 4))
	d.SetSelection(sel)
	d.FormatText(sel, model.StyleBold)

	if !plain.Style().Has(model.StyleBold) || !bold.Style().Has(model.StyleBold) {
		t.Error("mixed runs should all gain the style")
	}

	// A second toggle over a uniform range clears it everywhere.
	after := d.Selection().(*model.RangeSelection)
	d.FormatText(after, model.StyleBold)
	if plain.Style().Has(model.StyleBold) || bold.Style().Has(model.StyleBold) {
		t.Error("uniform runs should all lose the style")
	}
}

func TestPendingStyleAppliesToNextInsert(t *testing.T) {
	d := model.New()
	p, run := para(d, "ab")

	sel := model.NewCaret(model.TextPoint(run.Key(), 1))
	d.SetSelection(sel)
	d.FormatText(sel, model.StyleItalic)

	// Nothing changed yet.
	if run.Style() != 0 || run.Text() != "ab" {
		t.Fatal("collapsed toggle mutated the run")
	}

	d.InsertText(sel, "X")
	if p.ChildCount() != 3 {
		t.Fatalf("block has %d runs, want 3 after styled insert", p.ChildCount())
	}
	mid, _ := d.ChildAt(p, 1)
	inserted := mid.(*model.TextNode)
	if inserted.Text() != "X" || !inserted.Style().Has(model.StyleItalic) {
		t.Errorf("inserted run %q style %v, want italic X", inserted.Text(), inserted.Style())
	}
}

func TestPendingStyleDoubleToggleCancels(t *testing.T) {
	d := model.New()
	p, run := para(d, "ab")

	sel := model.NewCaret(model.TextPoint(run.Key(), 2))
	d.SetSelection(sel)
	d.FormatText(sel, model.StyleBold)
	d.FormatText(sel, model.StyleBold)

	d.InsertText(sel, "c")
	if p.ChildCount() != 1 {
		t.Fatalf("block has %d runs, want the insert merged into one", p.ChildCount())
	}
	if run.Text() != "abc" || run.Style() != 0 {
		t.Errorf("run = %q style %v, want plain abc", run.Text(), run.Style())
	}
}

func TestFormatElement(t *testing.T) {
	d := model.New()
	q := model.NewQuote()
	d.AppendChild(d.Root(), q)
	d.AppendChild(q, model.NewText("quoted"))

	d.FormatElement(model.NewNodeSelection(q.Key()), model.FormatCenter)
	if q.Format() != model.FormatCenter {
		t.Errorf("Format = %q, want center", q.Format())
	}
}

func TestStyleFlagNamesRoundTrip(t *testing.T) {
	s := model.StyleBold | model.StyleCode
	names := s.Names()
	if got := model.StyleFromNames(names); got != s {
		t.Errorf("StyleFromNames(%v) = %v, want %v", names, got, s)
	}
	if _, ok := model.ParseStyleFlag("sparkle"); ok {
		t.Error("unknown style flag should not parse")
	}
}
