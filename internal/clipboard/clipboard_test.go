package clipboard_test

import (
	"strings"
	"testing"

	"github.com/scribepad/scribe/internal/clipboard"
	"github.com/scribepad/scribe/internal/command"
	"github.com/scribepad/scribe/internal/dispatcher"
	"github.com/scribepad/scribe/internal/model"
	"github.com/scribepad/scribe/internal/richtext"
)

func fixture(t *testing.T, text string) (*model.Document, *dispatcher.Dispatcher, *model.TextNode) {
	t.Helper()
	doc := model.New()
	p := model.NewParagraph()
	doc.AppendChild(doc.Root(), p)
	run := model.NewText(text)
	doc.AppendChild(p, run)

	d := dispatcher.NewWithDefaults()
	d.SetDocument(doc)
	t.Cleanup(richtext.RegisterAll(d))
	t.Cleanup(clipboard.NewBridge().Register(d))
	return doc, d, run
}

func TestCopyPopulatesSlots(t *testing.T) {
	doc, d, run := fixture(t, "hello world")
	doc.SetSelection(model.NewRange(model.TextPoint(run.Key(), 0), model.TextPoint(run.Key(), 5)))

	data := command.DataTransfer{}
	if !d.Dispatch(command.Copy, command.Payload{Data: data}) {
		t.Fatal("expected copy to be handled")
	}

	if got, _ := data.Get(clipboard.MIMEPlain); got != "hello" {
		t.Errorf("plain slot = %q, want %q", got, "hello")
	}
	if got, _ := data.Get(clipboard.MIMEHTML); !strings.Contains(got, "<p") {
		t.Errorf("html slot = %q, want a rendered paragraph", got)
	}
	if got, _ := data.Get(clipboard.MIMEScribe); !strings.Contains(got, `"paragraph"`) {
		t.Errorf("structured slot = %q, want serialized nodes", got)
	}
}

func TestCopyDeclinesWhenCollapsed(t *testing.T) {
	doc, d, run := fixture(t, "hello")
	doc.SetSelection(model.NewCaret(model.TextPoint(run.Key(), 2)))

	if d.Dispatch(command.Copy, command.Payload{Data: command.DataTransfer{}}) {
		t.Error("copy of a collapsed selection should decline")
	}
	if d.Dispatch(command.Copy, command.Payload{}) {
		t.Error("copy without a payload to write to should decline")
	}
}

func TestCutCopiesThenDeletes(t *testing.T) {
	doc, d, run := fixture(t, "hello world")
	doc.SetSelection(model.NewRange(model.TextPoint(run.Key(), 5), model.TextPoint(run.Key(), 11)))

	data := command.DataTransfer{}
	if !d.Dispatch(command.Cut, command.Payload{Data: data}) {
		t.Fatal("expected cut to be handled")
	}
	if got, _ := data.Get(clipboard.MIMEPlain); got != " world" {
		t.Errorf("plain slot = %q, want %q", got, " world")
	}
	if got := doc.TextContent(doc.Root()); got != "hello" {
		t.Errorf("TextContent = %q after cut, want %q", got, "hello")
	}
}

func TestPastePlainTextLines(t *testing.T) {
	doc, d, run := fixture(t, "ab")
	doc.SetSelection(model.NewCaret(model.TextPoint(run.Key(), 1)))

	data := command.DataTransfer{}
	data.Set(clipboard.MIMEPlain, "X\nY")
	if !d.Dispatch(command.Paste, command.Payload{Data: data}) {
		t.Fatal("expected paste to be handled")
	}

	if got := doc.Root().ChildCount(); got != 2 {
		t.Fatalf("root has %d blocks, want 2", got)
	}
	if got := doc.TextContent(doc.Root()); got != "aX\n\nYb" {
		t.Errorf("TextContent = %q, want %q", got, "aX\n\nYb")
	}
}

func TestPasteStructuredNodes(t *testing.T) {
	doc, d, run := fixture(t, "before")
	doc.SetSelection(model.NewCaret(model.TextPoint(run.Key(), 6)))

	data := command.DataTransfer{}
	data.Set(clipboard.MIMEScribe,
		`[{"type":"heading","level":2,"children":[{"type":"text","text":"Imported"}]}]`)
	if !d.Dispatch(command.Paste, command.Payload{Data: data}) {
		t.Fatal("expected paste to be handled")
	}

	if got := doc.Root().ChildCount(); got != 2 {
		t.Fatalf("root has %d blocks, want 2", got)
	}
	second, _ := doc.ChildAt(doc.Root(), 1)
	h, ok := second.(*model.HeadingNode)
	if !ok || h.Level() != 2 {
		t.Fatalf("pasted block = %T, want heading level 2", second)
	}
	if got := doc.TextContent(h); got != "Imported" {
		t.Errorf("pasted content = %q", got)
	}

	// Caret lands at the end of the pasted block.
	sel := doc.Selection().(*model.RangeSelection)
	block, _ := doc.BlockOf(sel.Anchor)
	if block.Key() != h.Key() {
		t.Error("caret did not land in the pasted block")
	}
}

func TestPasteStructuredReplacesRange(t *testing.T) {
	doc, d, run := fixture(t, "abcdef")
	doc.SetSelection(model.NewRange(model.TextPoint(run.Key(), 1), model.TextPoint(run.Key(), 5)))

	data := command.DataTransfer{}
	data.Set(clipboard.MIMEScribe, `[{"type":"paragraph","children":[{"type":"text","text":"new"}]}]`)
	if !d.Dispatch(command.Paste, command.Payload{Data: data}) {
		t.Fatal("expected paste to be handled")
	}
	if got := doc.TextContent(doc.Root()); got != "af\n\nnew" {
		t.Errorf("TextContent = %q, want %q", got, "af\n\nnew")
	}
}

func TestPasteHTML(t *testing.T) {
	doc, d, run := fixture(t, "x")
	doc.SetSelection(model.NewCaret(model.TextPoint(run.Key(), 1)))

	data := command.DataTransfer{}
	data.Set(clipboard.MIMEHTML, `<p>Hello <strong>bold</strong></p><blockquote>quoted</blockquote>`)
	if !d.Dispatch(command.Paste, command.Payload{Data: data}) {
		t.Fatal("expected paste to be handled")
	}

	if got := doc.Root().ChildCount(); got != 3 {
		t.Fatalf("root has %d blocks, want 3", got)
	}
	second, _ := doc.ChildAt(doc.Root(), 1)
	p, ok := second.(*model.ParagraphNode)
	if !ok {
		t.Fatalf("second block = %T, want paragraph", second)
	}
	boldRun, _ := doc.ChildAt(p, 1)
	if tn, ok := boldRun.(*model.TextNode); !ok || !tn.Style().Has(model.StyleBold) {
		t.Error("strong content did not map to a bold run")
	}

	third, _ := doc.ChildAt(doc.Root(), 2)
	if _, ok := third.(*model.QuoteNode); !ok {
		t.Errorf("third block = %T, want quote", third)
	}
}

func TestPasteHTMLStripsScript(t *testing.T) {
	doc, d, run := fixture(t, "x")
	doc.SetSelection(model.NewCaret(model.TextPoint(run.Key(), 1)))

	data := command.DataTransfer{}
	data.Set(clipboard.MIMEHTML, `<p>ok</p><script>alert(1)</script>`)
	if !d.Dispatch(command.Paste, command.Payload{Data: data}) {
		t.Fatal("expected paste to be handled")
	}
	if got := doc.TextContent(doc.Root()); strings.Contains(got, "alert") {
		t.Errorf("script content leaked into the document: %q", got)
	}
}

func TestPasteMarkdown(t *testing.T) {
	doc, d, run := fixture(t, "x")
	doc.SetSelection(model.NewCaret(model.TextPoint(run.Key(), 1)))

	data := command.DataTransfer{}
	data.Set(clipboard.MIMEMarkdown, "# Title\n\nBody with *emphasis*.")
	if !d.Dispatch(command.Paste, command.Payload{Data: data}) {
		t.Fatal("expected paste to be handled")
	}

	if got := doc.Root().ChildCount(); got != 3 {
		t.Fatalf("root has %d blocks, want 3", got)
	}
	second, _ := doc.ChildAt(doc.Root(), 1)
	h, ok := second.(*model.HeadingNode)
	if !ok || h.Level() != 1 {
		t.Fatalf("second block = %T, want heading level 1", second)
	}
	if got := doc.TextContent(h); got != "Title" {
		t.Errorf("heading text = %q", got)
	}

	third, _ := doc.ChildAt(doc.Root(), 2)
	para := third.(model.Element)
	var sawItalic bool
	for _, key := range para.Children() {
		n, _ := doc.Node(key)
		if tn, ok := n.(*model.TextNode); ok && tn.Style().Has(model.StyleItalic) {
			sawItalic = true
		}
	}
	if !sawItalic {
		t.Error("markdown emphasis did not map to an italic run")
	}
}

func TestPastePrefersStructuredOverPlain(t *testing.T) {
	doc, d, run := fixture(t, "x")
	doc.SetSelection(model.NewCaret(model.TextPoint(run.Key(), 1)))

	data := command.DataTransfer{}
	data.Set(clipboard.MIMEPlain, "plain fallback")
	data.Set(clipboard.MIMEScribe, `[{"type":"quote","children":[{"type":"text","text":"structured"}]}]`)
	if !d.Dispatch(command.Paste, command.Payload{Data: data}) {
		t.Fatal("expected paste to be handled")
	}
	if got := doc.TextContent(doc.Root()); got != "x\n\nstructured" {
		t.Errorf("TextContent = %q, want the structured slot to win", got)
	}
}

func TestPasteDeclinesWithoutSelection(t *testing.T) {
	doc, d, _ := fixture(t, "x")
	doc.SetSelection(nil)

	data := command.DataTransfer{}
	data.Set(clipboard.MIMEPlain, "y")
	if d.Dispatch(command.Paste, command.Payload{Data: data}) {
		t.Error("paste without a range selection should decline")
	}
}
