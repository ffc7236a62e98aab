package richtext

import (
	"github.com/scribepad/scribe/internal/command"
	"github.com/scribepad/scribe/internal/dispatcher/execctx"
	"github.com/scribepad/scribe/internal/model"
)

// handleClick collapses a node-set selection: a plain click always
// clears it. Any other selection declines.
func handleClick(cmd command.Command, ctx *execctx.Context) bool {
	if ctx.Document == nil {
		return false
	}
	if _, ok := ctx.Document.Selection().(*model.NodeSelection); !ok {
		return false
	}
	ctx.Document.SetSelection(nil)
	return true
}

// handleDrag suppresses drag and drop over a range selection. The
// operations are intentionally unimplemented; suppressing the default
// keeps the platform from mutating the tree behind the model's back.
func handleDrag(cmd command.Command, ctx *execctx.Context) bool {
	_, ok := ctx.RangeSelection()
	return ok
}
