// Package render provides the renderable element tree produced by document
// nodes. The actual rendering substrate (DOM, terminal, server-side HTML)
// is external; this package only describes structure and can emit an HTML
// fragment for export paths such as the clipboard bridge.
package render

import (
	"html"
	"sort"
	"strings"
)

// Element is a substrate-neutral renderable node.
type Element struct {
	// Tag is the markup tag name (e.g. "h2", "blockquote", "p", "span").
	Tag string

	// Classes are theme-supplied class names.
	Classes []string

	// Attrs holds additional attributes.
	Attrs map[string]string

	// Children are nested elements, in order.
	Children []*Element

	// Text is the text content for leaf elements. Ignored when Children
	// is non-empty.
	Text string

	// Void marks tags that never carry content (e.g. "br").
	Void bool
}

// NewElement creates an element with the given tag.
func NewElement(tag string) *Element {
	return &Element{Tag: tag}
}

// NewText creates a bare text element with no tag.
func NewText(text string) *Element {
	return &Element{Text: text}
}

// AddClass appends class names, skipping empties.
func (e *Element) AddClass(names ...string) {
	for _, name := range names {
		if name != "" {
			e.Classes = append(e.Classes, name)
		}
	}
}

// SetAttr sets an attribute value.
func (e *Element) SetAttr(key, value string) {
	if e.Attrs == nil {
		e.Attrs = make(map[string]string)
	}
	e.Attrs[key] = value
}

// Append adds child elements.
func (e *Element) Append(children ...*Element) {
	e.Children = append(e.Children, children...)
}

// HTML emits the element as an HTML fragment. Text content and attribute
// values are escaped.
func (e *Element) HTML() string {
	var b strings.Builder
	e.writeHTML(&b)
	return b.String()
}

func (e *Element) writeHTML(b *strings.Builder) {
	if e.Tag == "" {
		b.WriteString(html.EscapeString(e.Text))
		return
	}

	b.WriteByte('<')
	b.WriteString(e.Tag)
	if len(e.Classes) > 0 {
		b.WriteString(` class="`)
		b.WriteString(html.EscapeString(strings.Join(e.Classes, " ")))
		b.WriteByte('"')
	}
	// Deterministic attribute order for stable output.
	for _, key := range sortedKeys(e.Attrs) {
		b.WriteByte(' ')
		b.WriteString(key)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(e.Attrs[key]))
		b.WriteByte('"')
	}
	b.WriteByte('>')

	if e.Void {
		return
	}

	if len(e.Children) > 0 {
		for _, child := range e.Children {
			child.writeHTML(b)
		}
	} else {
		b.WriteString(html.EscapeString(e.Text))
	}

	b.WriteString("</")
	b.WriteString(e.Tag)
	b.WriteByte('>')
}

func sortedKeys(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
