package model_test

import (
	"errors"
	"testing"

	"github.com/scribepad/scribe/internal/model"
)

func TestStateRoundTrip(t *testing.T) {
	d := model.New()

	h := model.NewHeading(2)
	d.AppendChild(d.Root(), h)
	d.AppendChild(h, model.NewText("Title"))

	p := model.NewParagraph()
	p.SetIndent(1)
	p.SetFormat(model.FormatCenter)
	d.AppendChild(d.Root(), p)
	d.AppendChild(p, model.NewStyledText("bold", model.StyleBold))
	d.AppendChild(p, model.NewLineBreak())
	d.AppendChild(p, model.NewText("tail"))

	code := model.NewCode("go")
	d.AppendChild(d.Root(), code)
	d.AppendChild(code, model.NewText("x := 1"))

	data, err := d.MarshalState()
	if err != nil {
		t.Fatalf("MarshalState: %v", err)
	}

	restored, err := model.UnmarshalState(data)
	if err != nil {
		t.Fatalf("UnmarshalState: %v", err)
	}

	if got, want := restored.TextContent(restored.Root()), d.TextContent(d.Root()); got != want {
		t.Errorf("TextContent = %q, want %q", got, want)
	}
	if got := restored.Root().ChildCount(); got != 3 {
		t.Fatalf("restored root has %d blocks, want 3", got)
	}

	first, _ := restored.ChildAt(restored.Root(), 0)
	rh, ok := first.(*model.HeadingNode)
	if !ok || rh.Level() != 2 {
		t.Errorf("first block = %T level, want heading level 2", first)
	}

	second, _ := restored.ChildAt(restored.Root(), 1)
	rp := second.(model.Element)
	if rp.Indent() != 1 || rp.Format() != model.FormatCenter {
		t.Errorf("paragraph attrs indent %d format %q", rp.Indent(), rp.Format())
	}
	boldRun, _ := restored.ChildAt(rp, 0)
	if run, ok := boldRun.(*model.TextNode); !ok || !run.Style().Has(model.StyleBold) {
		t.Error("bold style lost in round trip")
	}

	third, _ := restored.ChildAt(restored.Root(), 2)
	rc, ok := third.(*model.CodeNode)
	if !ok || rc.Language() != "go" {
		t.Errorf("third block = %T, want code with language go", third)
	}
}

func TestUnmarshalStateRejectsBadInput(t *testing.T) {
	if _, err := model.UnmarshalState([]byte("{not json")); !errors.Is(err, model.ErrBadState) {
		t.Errorf("invalid JSON: err = %v, want ErrBadState", err)
	}
	if _, err := model.UnmarshalState([]byte(`{"other":1}`)); !errors.Is(err, model.ErrBadState) {
		t.Errorf("missing root: err = %v, want ErrBadState", err)
	}
}

func TestUnmarshalStateUnknownNodeType(t *testing.T) {
	state := []byte(`{"root":{"type":"root","children":[{"type":"mystery"}]}}`)
	if _, err := model.UnmarshalState(state); !errors.Is(err, model.ErrUnknownNodeType) {
		t.Errorf("err = %v, want ErrUnknownNodeType", err)
	}
}

func TestMatchExternalMarkup(t *testing.T) {
	conv := model.MatchExternalMarkup("h3")
	if conv == nil {
		t.Fatal("expected a converter for h3")
	}
	h, ok := conv.Convert("h3").(*model.HeadingNode)
	if !ok || h.Level() != 3 {
		t.Errorf("h3 converted to %T, want heading level 3", conv.Convert("h3"))
	}

	if model.MatchExternalMarkup("marquee") != nil {
		t.Error("unexpected converter for an unknown tag")
	}
	if _, ok := model.MatchExternalMarkup("blockquote").Convert("blockquote").(*model.QuoteNode); !ok {
		t.Error("blockquote should convert to a quote node")
	}
	if _, ok := model.MatchExternalMarkup("pre").Convert("pre").(*model.CodeNode); !ok {
		t.Error("pre should convert to a code node")
	}
}
