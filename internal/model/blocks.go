package model

import (
	"strconv"

	"github.com/scribepad/scribe/internal/render"
	"github.com/scribepad/scribe/internal/theme"
)

// RootNode is the document root. It only holds block children.
type RootNode struct {
	baseElement
}

func newRoot() *RootNode {
	r := &RootNode{}
	r.key = NewNodeKey()
	return r
}

func (n *RootNode) Type() NodeType { return TypeRoot }

func (n *RootNode) Clone() Node {
	c := &RootNode{}
	n.cloneInto(&c.baseElement)
	return c
}

// InsertNewAfter is not meaningful on the root.
func (n *RootNode) InsertNewAfter(d *Document) Element { return nil }

// CollapseAtStart is not meaningful on the root.
func (n *RootNode) CollapseAtStart(d *Document) bool { return false }

func (n *RootNode) Render(th *theme.Theme) *render.Element {
	el := render.NewElement("div")
	n.applyBlockAttrs(el)
	return el
}

// ParagraphNode is the default block.
type ParagraphNode struct {
	baseElement
}

// NewParagraph creates a detached paragraph node.
func NewParagraph() *ParagraphNode {
	p := &ParagraphNode{}
	p.key = NewNodeKey()
	return p
}

func (n *ParagraphNode) Type() NodeType { return TypeParagraph }

func (n *ParagraphNode) Clone() Node {
	c := &ParagraphNode{}
	n.cloneInto(&c.baseElement)
	return c
}

// InsertNewAfter produces the paragraph's split successor: another
// paragraph carrying over direction, format, and indent.
func (n *ParagraphNode) InsertNewAfter(d *Document) Element {
	p := NewParagraph()
	p.SetDirection(n.Direction())
	p.SetFormat(n.Format())
	p.SetIndent(n.Indent())
	d.InsertAfter(n, p)
	return p
}

// CollapseAtStart declines; paragraphs merge through the default path.
func (n *ParagraphNode) CollapseAtStart(d *Document) bool { return false }

func (n *ParagraphNode) Render(th *theme.Theme) *render.Element {
	el := render.NewElement("p")
	el.AddClass(th.Paragraph)
	n.applyBlockAttrs(el)
	return el
}

// HeadingNode is a heading block with a level in [1, 5]. The level is
// fixed at construction; cloning preserves it.
type HeadingNode struct {
	baseElement
	level int
}

// NewHeading creates a detached heading node. The level is clamped into
// [1, 5].
func NewHeading(level int) *HeadingNode {
	if level < 1 {
		level = 1
	}
	if level > 5 {
		level = 5
	}
	h := &HeadingNode{level: level}
	h.key = NewNodeKey()
	return h
}

func (n *HeadingNode) Type() NodeType { return TypeHeading }

// Level returns the heading level.
func (n *HeadingNode) Level() int { return n.level }

// Tag returns the markup tag for the heading level ("h1".."h5").
func (n *HeadingNode) Tag() string { return "h" + strconv.Itoa(n.level) }

func (n *HeadingNode) Clone() Node {
	c := &HeadingNode{level: n.level}
	n.cloneInto(&c.baseElement)
	return c
}

// InsertNewAfter always produces a paragraph: splitting a heading does
// not continue the heading. The new block inherits the text direction.
func (n *HeadingNode) InsertNewAfter(d *Document) Element {
	p := NewParagraph()
	p.SetDirection(n.Direction())
	d.InsertAfter(n, p)
	return p
}

// CollapseAtStart replaces the heading with a fresh paragraph carrying
// all its children.
func (n *HeadingNode) CollapseAtStart(d *Document) bool {
	collapseToParagraph(d, n)
	return true
}

func (n *HeadingNode) Render(th *theme.Theme) *render.Element {
	el := render.NewElement(n.Tag())
	el.AddClass(th.HeadingClass(n.Tag()))
	n.applyBlockAttrs(el)
	return el
}

// QuoteNode is a block quote.
type QuoteNode struct {
	baseElement
}

// NewQuote creates a detached quote node.
func NewQuote() *QuoteNode {
	q := &QuoteNode{}
	q.key = NewNodeKey()
	return q
}

func (n *QuoteNode) Type() NodeType { return TypeQuote }

func (n *QuoteNode) Clone() Node {
	c := &QuoteNode{}
	n.cloneInto(&c.baseElement)
	return c
}

// InsertNewAfter produces a direction-preserving paragraph, same as
// headings: splitting a quote leaves the quote.
func (n *QuoteNode) InsertNewAfter(d *Document) Element {
	p := NewParagraph()
	p.SetDirection(n.Direction())
	d.InsertAfter(n, p)
	return p
}

// CollapseAtStart replaces the quote with a fresh paragraph carrying all
// its children.
func (n *QuoteNode) CollapseAtStart(d *Document) bool {
	collapseToParagraph(d, n)
	return true
}

func (n *QuoteNode) Render(th *theme.Theme) *render.Element {
	el := render.NewElement("blockquote")
	el.AddClass(th.Quote)
	n.applyBlockAttrs(el)
	return el
}

// CodeNode is a preformatted block. It is the only built-in variant that
// accepts literal tab characters.
type CodeNode struct {
	baseElement
	language string
}

// NewCode creates a detached code block.
func NewCode(language string) *CodeNode {
	c := &CodeNode{language: language}
	c.key = NewNodeKey()
	return c
}

func (n *CodeNode) Type() NodeType { return TypeCode }

// Language returns the code language hint, if any.
func (n *CodeNode) Language() string { return n.language }

func (n *CodeNode) CanInsertTab() bool { return true }

func (n *CodeNode) Clone() Node {
	c := &CodeNode{language: n.language}
	n.cloneInto(&c.baseElement)
	return c
}

func (n *CodeNode) InsertNewAfter(d *Document) Element {
	p := NewParagraph()
	p.SetDirection(n.Direction())
	d.InsertAfter(n, p)
	return p
}

func (n *CodeNode) CollapseAtStart(d *Document) bool { return false }

func (n *CodeNode) Render(th *theme.Theme) *render.Element {
	el := render.NewElement("pre")
	el.AddClass(th.Code)
	el.SetAttr("spellcheck", "false")
	if n.language != "" {
		el.SetAttr("data-language", n.language)
	}
	n.applyBlockAttrs(el)
	return el
}

// collapseToParagraph reparents all of el's children into a fresh
// paragraph and replaces el with it. The paragraph inherits direction.
func collapseToParagraph(d *Document, el Element) *ParagraphNode {
	p := NewParagraph()
	p.SetDirection(el.Direction())
	d.ReplaceWith(el, p)
	d.MoveChildren(el, p)
	d.unregister(el)
	if sel, ok := d.sel.(*RangeSelection); ok {
		retargetPoint(&sel.Anchor, el.Key(), p.Key())
		retargetPoint(&sel.Focus, el.Key(), p.Key())
	}
	return p
}

func retargetPoint(p *Point, from, to NodeKey) {
	if p.Key == from {
		p.Key = to
	}
}
