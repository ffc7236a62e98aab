package richtext

import (
	"github.com/scribepad/scribe/internal/command"
	"github.com/scribepad/scribe/internal/dispatcher/execctx"
)

// handleKeyBackspace suppresses the platform default and re-dispatches a
// backward character deletion.
func handleKeyBackspace(cmd command.Command, ctx *execctx.Context) bool {
	if _, ok := ctx.RangeSelection(); !ok {
		return false
	}
	return ctx.Redispatch(command.DeleteCharacter, command.Payload{Bool: true})
}

// handleKeyDelete suppresses the platform default and re-dispatches a
// forward character deletion.
func handleKeyDelete(cmd command.Command, ctx *execctx.Context) bool {
	if _, ok := ctx.RangeSelection(); !ok {
		return false
	}
	return ctx.Redispatch(command.DeleteCharacter, command.Payload{Bool: false})
}

// handleKeyEnter splits the block, or inserts a line break with shift
// held.
func handleKeyEnter(cmd command.Command, ctx *execctx.Context) bool {
	if _, ok := ctx.RangeSelection(); !ok {
		return false
	}
	if cmd.Payload.ShiftHeld() {
		return ctx.Redispatch(command.InsertLineBreak, command.Payload{Bool: false})
	}
	return ctx.Redispatch(command.InsertParagraph, command.Payload{})
}

// handleKeyTab re-dispatches to indent, or outdent with shift held.
func handleKeyTab(cmd command.Command, ctx *execctx.Context) bool {
	if _, ok := ctx.RangeSelection(); !ok {
		return false
	}
	if cmd.Payload.ShiftHeld() {
		return ctx.Redispatch(command.OutdentContent, command.Payload{})
	}
	return ctx.Redispatch(command.IndentContent, command.Payload{})
}

// handleKeyEscape releases editor focus.
func handleKeyEscape(cmd command.Command, ctx *execctx.Context) bool {
	if _, ok := ctx.RangeSelection(); !ok {
		return false
	}
	if ctx.Blur == nil {
		return false
	}
	ctx.Blur()
	return true
}

// handleArrow intervenes only when default caret movement must be
// overridden (crossing a non-text boundary); it then advances or extends
// the selection by one character and suppresses the default. Otherwise
// it declines and default caret movement proceeds.
func handleArrow(forward bool) func(command.Command, *execctx.Context) bool {
	return func(cmd command.Command, ctx *execctx.Context) bool {
		sel, ok := ctx.RangeSelection()
		if !ok {
			return false
		}
		if !ctx.Document.CaretNeedsOverride(sel, forward) {
			return false
		}
		extend := cmd.Payload.ShiftHeld()
		ctx.Document.MoveCaret(sel, forward, extend)
		return true
	}
}
