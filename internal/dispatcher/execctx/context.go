// Package execctx provides the execution context passed to command
// handlers.
package execctx

import (
	"github.com/scribepad/scribe/internal/command"
	"github.com/scribepad/scribe/internal/model"
	"github.com/scribepad/scribe/internal/render"
	"github.com/scribepad/scribe/internal/theme"
)

// Document abstracts the active document for handlers: selection access
// plus the model's mutation primitives. Handlers re-fetch the selection
// through this interface after every mutation step; they never cache it
// across a mutation.
type Document interface {
	// Selection state. SetSelection(nil) clears the selection.
	Selection() model.Selection
	SetSelection(model.Selection)

	// Update runs fn inside the document's update transaction. Nested
	// calls join the outer transaction.
	Update(fn func())

	// Tree access.
	Node(model.NodeKey) (model.Node, bool)
	ElementNode(model.NodeKey) (model.Element, bool)
	RootKey() model.NodeKey
	BlockOf(model.Point) (model.Element, bool)
	Blocks(model.Selection) []model.Element
	NextSibling(model.Node) (model.Node, bool)
	PointAtStart(model.Element) model.Point
	PointAtEnd(model.Element) model.Point

	// Selection inspection.
	AtBlockStart(*model.RangeSelection) bool
	AtBlockEnd(*model.RangeSelection) bool
	CharBefore(model.Point) (rune, bool)
	CaretNeedsOverride(sel *model.RangeSelection, forward bool) bool

	// Mutation primitives. All are total over well-formed selections:
	// they commit or no-op, never partially apply.
	InsertText(*model.RangeSelection, string)
	RemoveText(*model.RangeSelection)
	DeleteCharacter(sel *model.RangeSelection, backward bool)
	DeleteWord(sel *model.RangeSelection, backward bool)
	DeleteLine(sel *model.RangeSelection, backward bool)
	FormatText(*model.RangeSelection, model.StyleFlags)
	FormatElement(model.Selection, model.ElemFormat)
	InsertLineBreak(sel *model.RangeSelection, selectStart bool)
	InsertParagraph(*model.RangeSelection) model.Element
	MoveCaret(sel *model.RangeSelection, forward, extend bool)

	// Tree surgery used by the transfer-data import path.
	AppendChild(model.Element, model.Node)
	InsertAfter(ref, n model.Node)
	Remove(model.Node)

	// Export surface used by the clipboard bridge.
	TextContent(model.Node) string
	SelectionText(model.Selection) string
	Export(model.Node) model.SerializedNode
	RenderTree(model.NodeKey, *theme.Theme) *render.Element
}

// Context carries the collaborators a handler needs for one dispatch.
// A fresh context is built per dispatch; handlers must not retain it.
type Context struct {
	// Document is the active document handle.
	Document Document

	// Theme is the active render theme.
	Theme *theme.Theme

	// Dispatch re-enters the registry for handler re-dispatch (tab to
	// indent, backspace to deleteCharacter, and so on). The registry's
	// recursion guard applies.
	Dispatch func(name command.Name, p command.Payload) bool

	// Blur releases editor focus. Nil when the host provides no focus
	// handling.
	Blur func()

	// InsertTransfer inserts external transfer data at the current
	// selection, deciding per available MIME type how to merge it.
	InsertTransfer func(ctx *Context, data command.DataTransfer) bool

	// SerializeSelection produces the outbound transfer payload for the
	// current selection.
	SerializeSelection func(ctx *Context) (command.DataTransfer, bool)
}

// RangeSelection re-fetches the active selection and returns it when it
// is a range selection. This is the uniform guard most handlers apply
// first.
func (ctx *Context) RangeSelection() (*model.RangeSelection, bool) {
	if ctx.Document == nil {
		return nil, false
	}
	sel, ok := ctx.Document.Selection().(*model.RangeSelection)
	return sel, ok && sel != nil
}

// Redispatch forwards to another command, declining when no dispatch
// entry point is wired.
func (ctx *Context) Redispatch(name command.Name, p command.Payload) bool {
	if ctx.Dispatch == nil {
		return false
	}
	return ctx.Dispatch(name, p)
}
