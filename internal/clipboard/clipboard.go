// Package clipboard maps the copy, cut, and paste commands onto
// serialize and deserialize operations against the document model.
//
// Copy serializes the selection into three independent payload slots:
// plain text, rendered markup, and the structured editor format. Paste
// walks the available slots from most to least structured and merges the
// external content into the tree.
package clipboard

import (
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/scribepad/scribe/internal/command"
	"github.com/scribepad/scribe/internal/dispatcher"
	"github.com/scribepad/scribe/internal/dispatcher/execctx"
	"github.com/scribepad/scribe/internal/model"
)

// Payload MIME types.
const (
	MIMEPlain    = "text/plain"
	MIMEHTML     = "text/html"
	MIMEMarkdown = "text/markdown"

	// MIMEScribe is the structured editor format: a JSON array of
	// serialized nodes.
	MIMEScribe = "application/x-scribe+json"
)

// Bridge wires the clipboard commands to the model's serialize and
// import surfaces.
type Bridge struct {
	sanitizer *bluemonday.Policy
	markdown  goldmark.Markdown
}

// NewBridge creates a clipboard bridge.
func NewBridge() *Bridge {
	return &Bridge{
		sanitizer: bluemonday.UGCPolicy(),
		markdown:  goldmark.New(),
	}
}

// Register installs the copy, cut, and paste handlers at priority 0 and
// wires the bridge's serializer and importer into the dispatcher's
// execution context. The returned function removes the handlers.
func (b *Bridge) Register(d *dispatcher.Dispatcher) func() {
	d.SetSerializeSelection(b.SerializeSelection)
	d.SetInsertTransfer(b.InsertTransfer)

	tokens := []func(){
		d.Register(command.Copy, 0, b.handleCopy),
		d.Register(command.Cut, 0, b.handleCut),
		d.Register(command.Paste, 0, b.handlePaste),
	}
	return func() {
		for _, unregister := range tokens {
			unregister()
		}
	}
}

// handleCopy serializes the current selection into the event's outbound
// payload. Declines without an active selection or payload to write to.
func (b *Bridge) handleCopy(cmd command.Command, ctx *execctx.Context) bool {
	if cmd.Payload.Data == nil {
		return false
	}
	data, ok := b.SerializeSelection(ctx)
	if !ok {
		return false
	}
	for mime, payload := range data {
		cmd.Payload.Data.Set(mime, payload)
	}
	return true
}

// handleCut performs copy's side effect, then deletes the selected
// content when the selection is a range.
func (b *Bridge) handleCut(cmd command.Command, ctx *execctx.Context) bool {
	if !b.handleCopy(cmd, ctx) {
		return false
	}
	if sel, ok := ctx.Document.Selection().(*model.RangeSelection); ok {
		ctx.Document.RemoveText(sel)
	}
	return true
}

// handlePaste suppresses the platform default and merges the event's
// transfer data into the tree at the selection.
func (b *Bridge) handlePaste(cmd command.Command, ctx *execctx.Context) bool {
	if _, ok := ctx.RangeSelection(); !ok {
		return false
	}
	if cmd.Payload.Data == nil {
		return false
	}
	return b.InsertTransfer(ctx, cmd.Payload.Data)
}
