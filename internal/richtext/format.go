package richtext

import (
	"github.com/scribepad/scribe/internal/command"
	"github.com/scribepad/scribe/internal/dispatcher/execctx"
	"github.com/scribepad/scribe/internal/model"
)

// handleFormatText toggles a character style over the selection.
func handleFormatText(cmd command.Command, ctx *execctx.Context) bool {
	sel, ok := ctx.RangeSelection()
	if !ok {
		return false
	}
	flag, ok := model.ParseStyleFlag(cmd.Payload.Format)
	if !ok {
		return false
	}
	ctx.Document.FormatText(sel, flag)
	return true
}

// handleFormatElement sets block alignment/format on the blocks the
// selection touches. Works for both range and node-set selections.
func handleFormatElement(cmd command.Command, ctx *execctx.Context) bool {
	if ctx.Document == nil {
		return false
	}
	sel := ctx.Document.Selection()
	switch sel.(type) {
	case *model.RangeSelection, *model.NodeSelection:
	default:
		return false
	}
	format, ok := model.ParseElemFormat(cmd.Payload.Format)
	if !ok {
		return false
	}
	ctx.Document.FormatElement(sel, format)
	return true
}
