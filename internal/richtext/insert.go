package richtext

import (
	"github.com/scribepad/scribe/internal/command"
	"github.com/scribepad/scribe/internal/dispatcher/execctx"
)

// handleInsertText inserts plain text at the selection. Events carrying
// transfer data instead of a string delegate to the external
// transfer-data insertion path.
func handleInsertText(cmd command.Command, ctx *execctx.Context) bool {
	sel, ok := ctx.RangeSelection()
	if !ok {
		return false
	}

	if cmd.Payload.Data != nil {
		if ctx.InsertTransfer == nil {
			return false
		}
		return ctx.InsertTransfer(ctx, cmd.Payload.Data)
	}
	if cmd.Payload.Text == "" {
		return false
	}

	ctx.Document.InsertText(sel, cmd.Payload.Text)
	return true
}

// handleInsertLineBreak inserts a hard break within the current block.
func handleInsertLineBreak(cmd command.Command, ctx *execctx.Context) bool {
	sel, ok := ctx.RangeSelection()
	if !ok {
		return false
	}
	ctx.Document.InsertLineBreak(sel, cmd.Payload.Bool)
	return true
}

// handleInsertParagraph splits the current block at the caret through
// the block's own split contract.
func handleInsertParagraph(cmd command.Command, ctx *execctx.Context) bool {
	sel, ok := ctx.RangeSelection()
	if !ok {
		return false
	}
	ctx.Document.InsertParagraph(sel)
	return true
}
