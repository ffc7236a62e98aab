package richtext

import (
	"github.com/scribepad/scribe/internal/command"
	"github.com/scribepad/scribe/internal/dispatcher/execctx"
)

// handleDeleteCharacter deletes one character, or outdents when the
// caret sits at offset 0 of an indented block: indent consumes backspace
// before any structural merge.
func handleDeleteCharacter(cmd command.Command, ctx *execctx.Context) bool {
	sel, ok := ctx.RangeSelection()
	if !ok {
		return false
	}
	backward := cmd.Payload.Bool

	if backward && sel.IsCollapsed() && ctx.Document.AtBlockStart(sel) {
		if block, ok := ctx.Document.BlockOf(sel.Anchor); ok && block.Indent() > 0 {
			return ctx.Redispatch(command.OutdentContent, command.Payload{})
		}
	}

	ctx.Document.DeleteCharacter(sel, backward)
	return true
}

// handleDeleteWord deletes one word next to the caret.
func handleDeleteWord(cmd command.Command, ctx *execctx.Context) bool {
	sel, ok := ctx.RangeSelection()
	if !ok {
		return false
	}
	ctx.Document.DeleteWord(sel, cmd.Payload.Bool)
	return true
}

// handleDeleteLine deletes to the nearest line boundary.
func handleDeleteLine(cmd command.Command, ctx *execctx.Context) bool {
	sel, ok := ctx.RangeSelection()
	if !ok {
		return false
	}
	ctx.Document.DeleteLine(sel, cmd.Payload.Bool)
	return true
}

// handleRemoveText deletes the current range contents.
func handleRemoveText(cmd command.Command, ctx *execctx.Context) bool {
	sel, ok := ctx.RangeSelection()
	if !ok {
		return false
	}
	ctx.Document.RemoveText(sel)
	return true
}
