package model_test

import (
	"testing"

	"github.com/scribepad/scribe/internal/model"
)

func TestCaretNeedsOverrideMidText(t *testing.T) {
	d := model.New()
	_, run := para(d, "abc")

	sel := model.NewCaret(model.TextPoint(run.Key(), 1))
	if d.CaretNeedsOverride(sel, true) || d.CaretNeedsOverride(sel, false) {
		t.Error("mid-text movement needs no override")
	}
}

func TestCaretNeedsOverrideAtLineBreak(t *testing.T) {
	d := model.New()
	p, run := para(d, "ab")
	d.AppendChild(p, model.NewLineBreak())
	d.AppendChild(p, model.NewText("cd"))

	sel := model.NewCaret(model.TextPoint(run.Key(), 2))
	if !d.CaretNeedsOverride(sel, true) {
		t.Error("crossing a hard break needs an override")
	}
}

func TestCaretNeedsOverrideAtBlockBoundary(t *testing.T) {
	d := model.New()
	_, t1 := para(d, "one")
	para(d, "two")

	end := model.NewCaret(model.TextPoint(t1.Key(), 3))
	if !d.CaretNeedsOverride(end, true) {
		t.Error("crossing into the next block needs an override")
	}
	if d.CaretNeedsOverride(end, false) {
		t.Error("moving backward inside the run needs no override")
	}

	start := model.NewCaret(model.TextPoint(t1.Key(), 0))
	if d.CaretNeedsOverride(start, false) {
		t.Error("no previous block to cross into")
	}
}

func TestMoveCaretAcrossBlocks(t *testing.T) {
	d := model.New()
	_, t1 := para(d, "one")
	p2, _ := para(d, "two")

	sel := model.NewCaret(model.TextPoint(t1.Key(), 3))
	d.SetSelection(sel)
	d.MoveCaret(sel, true, false)

	after := d.Selection().(*model.RangeSelection)
	if !after.IsCollapsed() {
		t.Fatal("plain movement should stay collapsed")
	}
	block, ok := d.BlockOf(after.Anchor)
	if !ok || block.Key() != p2.Key() {
		t.Error("caret did not land in the next block")
	}
	if after.Anchor.Offset != 0 {
		t.Errorf("caret offset = %d, want 0", after.Anchor.Offset)
	}
}

func TestMoveCaretExtendKeepsAnchor(t *testing.T) {
	d := model.New()
	_, run := para(d, "abc")

	sel := model.NewCaret(model.TextPoint(run.Key(), 1))
	d.SetSelection(sel)
	d.MoveCaret(sel, true, true)

	after := d.Selection().(*model.RangeSelection)
	if after.IsCollapsed() {
		t.Fatal("extending movement should expand the selection")
	}
	if after.Anchor.Offset != 1 || after.Focus.Offset != 2 {
		t.Errorf("selection = [%d, %d], want [1, 2]", after.Anchor.Offset, after.Focus.Offset)
	}
}
