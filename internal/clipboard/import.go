package clipboard

import (
	"strings"

	"github.com/tidwall/gjson"
	mdast "github.com/yuin/goldmark/ast"
	mdtext "github.com/yuin/goldmark/text"
	"golang.org/x/net/html"

	"github.com/scribepad/scribe/internal/command"
	"github.com/scribepad/scribe/internal/dispatcher/execctx"
	"github.com/scribepad/scribe/internal/model"
)

// InsertTransfer merges external transfer data into the tree at the
// current selection. Slots are tried from most to least structured: the
// editor's own format, then HTML, then Markdown, then plain text. A slot
// that parses to nothing falls through to the next.
func (b *Bridge) InsertTransfer(ctx *execctx.Context, data command.DataTransfer) bool {
	if ctx.Document == nil {
		return false
	}
	if _, ok := ctx.RangeSelection(); !ok {
		return false
	}
	if raw, ok := data.Get(MIMEScribe); ok {
		if b.insertStructured(ctx, raw) {
			return true
		}
	}
	if raw, ok := data.Get(MIMEHTML); ok {
		if b.insertHTML(ctx, raw) {
			return true
		}
	}
	if raw, ok := data.Get(MIMEMarkdown); ok {
		if b.insertMarkdown(ctx, raw) {
			return true
		}
	}
	if raw, ok := data.Get(MIMEPlain); ok {
		return insertPlain(ctx, raw)
	}
	return false
}

// insertStructured imports the editor's structured JSON format: a node
// array, a whole serialized state, or a single node object.
func (b *Bridge) insertStructured(ctx *execctx.Context, raw string) bool {
	if !gjson.Valid(raw) {
		return false
	}
	parsed := gjson.Parse(raw)
	var results []gjson.Result
	switch {
	case parsed.IsArray():
		results = parsed.Array()
	case parsed.Get("root").Exists():
		results = parsed.Get("root.children").Array()
	case parsed.IsObject():
		results = []gjson.Result{parsed}
	}
	if len(results) == 0 {
		return false
	}

	doc := ctx.Document
	staging := model.NewParagraph()
	var wrap model.Element
	for _, r := range results {
		typ := model.NodeType(r.Get("type").String())
		if typ == model.TypeText || typ == model.TypeLineBreak {
			// Loose inline content shares one wrapping paragraph.
			if wrap == nil {
				wrap = model.NewParagraph()
				doc.AppendChild(staging, wrap)
			}
			if _, err := model.ImportNode(doc, wrap, r); err != nil {
				discard(doc, staging)
				return false
			}
			continue
		}
		wrap = nil
		if _, err := model.ImportNode(doc, staging, r); err != nil {
			discard(doc, staging)
			return false
		}
	}
	return insertBlocks(ctx, staging)
}

// insertHTML sanitizes the markup, parses it, and converts recognized
// block tags into node variants. Unrecognized blocks degrade to
// paragraphs; inline tags map onto character styles.
func (b *Bridge) insertHTML(ctx *execctx.Context, raw string) bool {
	clean := b.sanitizer.Sanitize(raw)
	if strings.TrimSpace(clean) == "" {
		return false
	}
	root, err := html.Parse(strings.NewReader(clean))
	if err != nil {
		return false
	}
	body := findBody(root)
	if body == nil {
		return false
	}

	doc := ctx.Document
	staging := model.NewParagraph()
	var wrap model.Element
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			text := collapseSpace(c.Data)
			if strings.TrimSpace(text) == "" {
				continue
			}
			if wrap == nil {
				wrap = model.NewParagraph()
				doc.AppendChild(staging, wrap)
			}
			doc.AppendChild(wrap, model.NewText(text))
		case html.ElementNode:
			wrap = nil
			el := blockForTag(c.Data)
			doc.AppendChild(staging, el)
			importHTMLInline(doc, el, c, 0)
		}
	}
	return insertBlocks(ctx, staging)
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if body := findBody(c); body != nil {
			return body
		}
	}
	return nil
}

// blockForTag resolves a block-level tag through the markup converters,
// falling back to a paragraph.
func blockForTag(tag string) model.Element {
	if conv := model.MatchExternalMarkup(tag); conv != nil {
		return conv.Convert(tag)
	}
	return model.NewParagraph()
}

// importHTMLInline flattens the inline content of n into parent,
// carrying the accumulated character style.
func importHTMLInline(doc execctx.Document, parent model.Element, n *html.Node, style model.StyleFlags) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			text := collapseSpace(c.Data)
			if strings.TrimSpace(text) == "" {
				continue
			}
			doc.AppendChild(parent, model.NewStyledText(text, style))
		case html.ElementNode:
			switch c.Data {
			case "br":
				doc.AppendChild(parent, model.NewLineBreak())
			case "b", "strong":
				importHTMLInline(doc, parent, c, style|model.StyleBold)
			case "em", "i":
				importHTMLInline(doc, parent, c, style|model.StyleItalic)
			case "u":
				importHTMLInline(doc, parent, c, style|model.StyleUnderline)
			case "s", "del", "strike":
				importHTMLInline(doc, parent, c, style|model.StyleStrikethrough)
			case "code":
				importHTMLInline(doc, parent, c, style|model.StyleCode)
			default:
				importHTMLInline(doc, parent, c, style)
			}
		}
	}
}

// collapseSpace folds whitespace runs into single spaces, preserving a
// leading or trailing space when the source had one.
func collapseSpace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	out := strings.Join(fields, " ")
	if r := s[0]; r == ' ' || r == '\t' || r == '\n' {
		out = " " + out
	}
	if r := s[len(s)-1]; r == ' ' || r == '\t' || r == '\n' {
		out += " "
	}
	return out
}

// insertMarkdown parses the source with goldmark and converts the
// block-level AST into node variants.
func (b *Bridge) insertMarkdown(ctx *execctx.Context, raw string) bool {
	src := []byte(raw)
	parsed := b.markdown.Parser().Parse(mdtext.NewReader(src))

	doc := ctx.Document
	staging := model.NewParagraph()
	for c := parsed.FirstChild(); c != nil; c = c.NextSibling() {
		appendMarkdownBlock(doc, staging, c, src)
	}
	return insertBlocks(ctx, staging)
}

func appendMarkdownBlock(doc execctx.Document, staging model.Element, n mdast.Node, src []byte) {
	switch block := n.(type) {
	case *mdast.Heading:
		level := block.Level
		if level > 5 {
			level = 5
		}
		el := model.NewHeading(level)
		doc.AppendChild(staging, el)
		importMarkdownInline(doc, el, block, src, 0)
	case *mdast.Blockquote:
		el := model.NewQuote()
		doc.AppendChild(staging, el)
		first := true
		for c := block.FirstChild(); c != nil; c = c.NextSibling() {
			if !first {
				doc.AppendChild(el, model.NewLineBreak())
			}
			first = false
			importMarkdownInline(doc, el, c, src, 0)
		}
	case *mdast.FencedCodeBlock:
		el := model.NewCode(string(block.Language(src)))
		doc.AppendChild(staging, el)
		appendCodeLines(doc, el, block, src)
	case *mdast.CodeBlock:
		el := model.NewCode("")
		doc.AppendChild(staging, el)
		appendCodeLines(doc, el, block, src)
	case *mdast.List:
		for c := block.FirstChild(); c != nil; c = c.NextSibling() {
			item := model.NewParagraph()
			item.SetIndent(1)
			doc.AppendChild(staging, item)
			for ic := c.FirstChild(); ic != nil; ic = ic.NextSibling() {
				importMarkdownInline(doc, item, ic, src, 0)
			}
		}
	default:
		el := model.NewParagraph()
		doc.AppendChild(staging, el)
		importMarkdownInline(doc, el, block, src, 0)
	}
}

// appendCodeLines copies a code block's raw lines, dropping the trailing
// newline of the final line.
func appendCodeLines(doc execctx.Document, el model.Element, n mdast.Node, src []byte) {
	var buf strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	text := strings.TrimRight(buf.String(), "\n")
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			doc.AppendChild(el, model.NewLineBreak())
		}
		if line != "" {
			doc.AppendChild(el, model.NewText(line))
		}
	}
}

// importMarkdownInline flattens inline AST content into parent, carrying
// the accumulated character style.
func importMarkdownInline(doc execctx.Document, parent model.Element, n mdast.Node, src []byte, style model.StyleFlags) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch inline := c.(type) {
		case *mdast.Text:
			if text := string(inline.Value(src)); text != "" {
				doc.AppendChild(parent, model.NewStyledText(text, style))
			}
			if inline.HardLineBreak() {
				doc.AppendChild(parent, model.NewLineBreak())
			} else if inline.SoftLineBreak() {
				doc.AppendChild(parent, model.NewStyledText(" ", style))
			}
		case *mdast.String:
			if text := string(inline.Value); text != "" {
				doc.AppendChild(parent, model.NewStyledText(text, style))
			}
		case *mdast.Emphasis:
			flag := model.StyleItalic
			if inline.Level >= 2 {
				flag = model.StyleBold
			}
			importMarkdownInline(doc, parent, inline, src, style|flag)
		case *mdast.CodeSpan:
			importMarkdownInline(doc, parent, inline, src, style|model.StyleCode)
		default:
			importMarkdownInline(doc, parent, c, src, style)
		}
	}
}

// insertPlain inserts text line by line: the first line merges into the
// current block, each following line starts a new paragraph.
func insertPlain(ctx *execctx.Context, raw string) bool {
	if raw == "" {
		return false
	}
	doc := ctx.Document
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	for i, line := range lines {
		sel, ok := ctx.RangeSelection()
		if !ok {
			return i > 0
		}
		if i > 0 {
			doc.InsertParagraph(sel)
			if sel, ok = ctx.RangeSelection(); !ok {
				return true
			}
		}
		if line != "" {
			doc.InsertText(sel, line)
		}
	}
	return true
}

// insertBlocks splices the staging element's children in after the block
// holding the selection anchor, collapsing a non-collapsed selection
// first. The caret lands at the end of the last inserted block.
func insertBlocks(ctx *execctx.Context, staging model.Element) bool {
	doc := ctx.Document
	if staging.ChildCount() == 0 {
		return false
	}
	sel, ok := ctx.RangeSelection()
	if !ok {
		discard(doc, staging)
		return false
	}
	if !sel.IsCollapsed() {
		doc.RemoveText(sel)
		if sel, ok = ctx.RangeSelection(); !ok {
			discard(doc, staging)
			return false
		}
	}
	anchor, ok := doc.BlockOf(sel.Anchor)
	if !ok {
		discard(doc, staging)
		return false
	}

	// Snapshot the child list: staging is never attached to the tree, so
	// moving a child does not maintain its list.
	keys := append([]model.NodeKey(nil), staging.Children()...)
	ref := model.Node(anchor)
	var last model.Element
	for _, key := range keys {
		child, ok := doc.Node(key)
		if !ok {
			continue
		}
		doc.InsertAfter(ref, child)
		ref = child
		if el, isEl := child.(model.Element); isEl {
			last = el
		}
	}
	if last == nil {
		return false
	}
	doc.SetSelection(model.NewCaret(doc.PointAtEnd(last)))
	return true
}

// discard drops staged nodes that never made it into the tree from the
// document's node table.
func discard(doc execctx.Document, staging model.Element) {
	for _, key := range staging.Children() {
		if n, ok := doc.Node(key); ok {
			doc.Remove(n)
		}
	}
}
