// Package command defines the editing command set and payload types
// dispatched through the command registry.
package command

// Name identifies an editing command. The set is fixed; consumers extend
// behavior by registering higher-priority handlers for existing names,
// not by inventing new ones.
type Name string

// Editing commands.
const (
	// Click clears a node-set selection on a plain click.
	Click Name = "click"

	// DeleteCharacter deletes one character, or outdents at a block start.
	DeleteCharacter Name = "deleteCharacter"

	// DeleteWord deletes one word.
	DeleteWord Name = "deleteWord"

	// DeleteLine deletes to the line boundary.
	DeleteLine Name = "deleteLine"

	// InsertText inserts text, or delegates to the transfer-data path.
	InsertText Name = "insertText"

	// RemoveText deletes the current range contents.
	RemoveText Name = "removeText"

	// FormatText toggles a character style on the selection.
	FormatText Name = "formatText"

	// FormatElement sets block alignment/format.
	FormatElement Name = "formatElement"

	// InsertLineBreak inserts a line break within the current block.
	InsertLineBreak Name = "insertLineBreak"

	// InsertParagraph splits the current block at the caret.
	InsertParagraph Name = "insertParagraph"

	// IndentContent increments indent or inserts a literal tab.
	IndentContent Name = "indentContent"

	// OutdentContent decrements indent or deletes a literal tab.
	OutdentContent Name = "outdentContent"
)

// Key commands. These bridge raw key events onto editing commands.
const (
	KeyArrowLeft  Name = "keyArrowLeft"
	KeyArrowRight Name = "keyArrowRight"
	KeyBackspace  Name = "keyBackspace"
	KeyDelete     Name = "keyDelete"
	KeyEnter      Name = "keyEnter"
	KeyTab        Name = "keyTab"
	KeyEscape     Name = "keyEscape"
)

// Drag and clipboard commands.
const (
	Drop      Name = "drop"
	DragStart Name = "dragstart"
	Copy      Name = "copy"
	Cut       Name = "cut"
	Paste     Name = "paste"
)

// KeyEvent carries the raw key state for key commands.
type KeyEvent struct {
	// Rune is the character for printable key events.
	Rune rune

	// Modifier state at the time of the event.
	Shift bool
	Ctrl  bool
	Alt   bool
	Meta  bool
}

// DataTransfer holds clipboard or drag payload slots keyed by MIME type.
// Each slot is independent; a missing slot simply is not populated.
type DataTransfer map[string]string

// Get returns the payload for a MIME type.
func (dt DataTransfer) Get(mime string) (string, bool) {
	if dt == nil {
		return "", false
	}
	v, ok := dt[mime]
	return v, ok
}

// Set stores the payload for a MIME type.
func (dt DataTransfer) Set(mime, data string) {
	dt[mime] = data
}

// Payload holds command-specific arguments. Which fields are meaningful
// depends on the command name.
type Payload struct {
	// Bool is the backward flag for delete commands and the select-start
	// flag for insertLineBreak.
	Bool bool

	// Text is the text for insertText.
	Text string

	// Format is the style flag name for formatText, or the alignment for
	// formatElement.
	Format string

	// Key is the raw key event for key commands.
	Key *KeyEvent

	// Data is the transfer payload for clipboard and drag commands, and
	// for insertText events that carry transfer data instead of a string.
	Data DataTransfer
}

// Command pairs a command name with its payload for one dispatch.
// Commands are ephemeral; they hold no state beyond a single dispatch.
type Command struct {
	Name    Name
	Payload Payload
}

// ShiftHeld reports whether the payload's key event has shift held.
func (p Payload) ShiftHeld() bool {
	return p.Key != nil && p.Key.Shift
}
