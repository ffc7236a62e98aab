package richtext

import (
	"github.com/scribepad/scribe/internal/command"
	"github.com/scribepad/scribe/internal/dispatcher/execctx"
	"github.com/scribepad/scribe/internal/model"
)

// handleIndent increments the indent of every touched block, clamped at
// the bound. Blocks that accept literal tabs (preformatted code) get a
// tab character instead.
func handleIndent(cmd command.Command, ctx *execctx.Context) bool {
	sel, ok := ctx.RangeSelection()
	if !ok {
		return false
	}

	if block, ok := ctx.Document.BlockOf(sel.Anchor); ok && block.CanInsertTab() {
		ctx.Document.InsertText(sel, "\t")
		return true
	}

	for _, block := range ctx.Document.Blocks(sel) {
		block.SetIndent(block.Indent() + 1)
	}
	return true
}

// handleOutdent decrements the indent of every touched block, clamped at
// zero. In tab-accepting blocks a tab immediately before the caret is
// deleted instead.
func handleOutdent(cmd command.Command, ctx *execctx.Context) bool {
	sel, ok := ctx.RangeSelection()
	if !ok {
		return false
	}

	if block, ok := ctx.Document.BlockOf(sel.Anchor); ok && block.CanInsertTab() {
		if r, ok := ctx.Document.CharBefore(sel.Anchor); ok && r == '\t' {
			p := sel.Anchor
			tab := model.NewRange(model.TextPoint(p.Key, p.Offset-1), p)
			ctx.Document.RemoveText(tab)
			return true
		}
	}

	for _, block := range ctx.Document.Blocks(sel) {
		block.SetIndent(block.Indent() - 1)
	}
	return true
}
