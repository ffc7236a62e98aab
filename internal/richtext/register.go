package richtext

import (
	"github.com/scribepad/scribe/internal/command"
	"github.com/scribepad/scribe/internal/dispatcher"
)

// DefaultPriority is the priority the built-in handlers register at.
// Consumers override them by registering at anything higher.
const DefaultPriority = 0

// RegisterAll installs the built-in rich-text handlers. The returned
// function removes them all; it is idempotent.
func RegisterAll(d *dispatcher.Dispatcher) func() {
	regs := []struct {
		name command.Name
		h    dispatcher.Handler
	}{
		{command.Click, handleClick},
		{command.DeleteCharacter, handleDeleteCharacter},
		{command.DeleteWord, handleDeleteWord},
		{command.DeleteLine, handleDeleteLine},
		{command.InsertText, handleInsertText},
		{command.RemoveText, handleRemoveText},
		{command.FormatText, handleFormatText},
		{command.FormatElement, handleFormatElement},
		{command.InsertLineBreak, handleInsertLineBreak},
		{command.InsertParagraph, handleInsertParagraph},
		{command.IndentContent, handleIndent},
		{command.OutdentContent, handleOutdent},
		{command.KeyArrowLeft, handleArrow(false)},
		{command.KeyArrowRight, handleArrow(true)},
		{command.KeyBackspace, handleKeyBackspace},
		{command.KeyDelete, handleKeyDelete},
		{command.KeyEnter, handleKeyEnter},
		{command.KeyTab, handleKeyTab},
		{command.KeyEscape, handleKeyEscape},
		{command.Drop, handleDrag},
		{command.DragStart, handleDrag},
	}

	tokens := make([]func(), 0, len(regs))
	for _, r := range regs {
		tokens = append(tokens, d.Register(r.name, DefaultPriority, r.h))
	}

	return func() {
		for _, unregister := range tokens {
			unregister()
		}
	}
}
