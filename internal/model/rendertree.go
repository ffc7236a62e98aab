package model

import (
	"github.com/scribepad/scribe/internal/render"
	"github.com/scribepad/scribe/internal/theme"
)

// RenderTree composes the renderable element for a subtree. Element
// variants produce their own chrome through Render; text runs become
// spans carrying the theme's style classes (or bare text when unstyled);
// hard breaks become <br>.
func (d *Document) RenderTree(key NodeKey, th *theme.Theme) *render.Element {
	n, ok := d.Node(key)
	if !ok {
		return nil
	}
	return d.renderNode(n, th)
}

func (d *Document) renderNode(n Node, th *theme.Theme) *render.Element {
	switch t := n.(type) {
	case *TextNode:
		return renderTextRun(t, th)
	case *LineBreakNode:
		el := render.NewElement("br")
		el.Void = true
		return el
	case Element:
		el := t.Render(th)
		for _, key := range t.Children() {
			if child, ok := d.Node(key); ok {
				if rendered := d.renderNode(child, th); rendered != nil {
					el.Append(rendered)
				}
			}
		}
		return el
	default:
		return nil
	}
}

func renderTextRun(t *TextNode, th *theme.Theme) *render.Element {
	if t.Style() == 0 {
		return render.NewText(t.Text())
	}
	el := render.NewElement("span")
	style := t.Style()
	if style.Has(StyleBold) {
		el.AddClass(th.Text.Bold)
	}
	if style.Has(StyleItalic) {
		el.AddClass(th.Text.Italic)
	}
	if style.Has(StyleUnderline) {
		el.AddClass(th.Text.Underline)
	}
	if style.Has(StyleStrikethrough) {
		el.AddClass(th.Text.Strikethrough)
	}
	if style.Has(StyleCode) {
		el.AddClass(th.Text.Code)
	}
	el.Text = t.Text()
	return el
}
