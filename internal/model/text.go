package model

import (
	"strings"

	"github.com/rivo/uniseg"
)

// StyleFlags is the character style bitmask of a text run.
type StyleFlags uint8

// Character styles.
const (
	StyleBold StyleFlags = 1 << iota
	StyleItalic
	StyleUnderline
	StyleStrikethrough
	StyleCode
)

var styleNames = []struct {
	flag StyleFlags
	name string
}{
	{StyleBold, "bold"},
	{StyleItalic, "italic"},
	{StyleUnderline, "underline"},
	{StyleStrikethrough, "strikethrough"},
	{StyleCode, "code"},
}

// Has reports whether all flags in f are set.
func (s StyleFlags) Has(f StyleFlags) bool { return s&f == f }

// Names returns the set flag names in a fixed order.
func (s StyleFlags) Names() []string {
	var out []string
	for _, sn := range styleNames {
		if s.Has(sn.flag) {
			out = append(out, sn.name)
		}
	}
	return out
}

// ParseStyleFlag maps a style flag name to its bit.
func ParseStyleFlag(name string) (StyleFlags, bool) {
	for _, sn := range styleNames {
		if sn.name == name {
			return sn.flag, true
		}
	}
	return 0, false
}

// StyleFromNames builds a bitmask from flag names, ignoring unknown ones.
func StyleFromNames(names []string) StyleFlags {
	var s StyleFlags
	for _, name := range names {
		if f, ok := ParseStyleFlag(name); ok {
			s |= f
		}
	}
	return s
}

// TextNode is a styled text run. Offsets into a text node count runes.
type TextNode struct {
	baseNode
	text  string
	style StyleFlags
}

// NewText creates a detached text node.
func NewText(text string) *TextNode {
	t := &TextNode{text: text}
	t.key = NewNodeKey()
	return t
}

// NewStyledText creates a detached text node with style flags.
func NewStyledText(text string, style StyleFlags) *TextNode {
	t := NewText(text)
	t.style = style
	return t
}

func (n *TextNode) Type() NodeType { return TypeText }

// Text returns the run's text.
func (n *TextNode) Text() string { return n.text }

// SetText replaces the run's text.
func (n *TextNode) SetText(s string) { n.text = s }

// Style returns the run's style flags.
func (n *TextNode) Style() StyleFlags { return n.style }

// SetStyle replaces the run's style flags.
func (n *TextNode) SetStyle(s StyleFlags) { n.style = s }

// ToggleStyle flips the given flags.
func (n *TextNode) ToggleStyle(f StyleFlags) { n.style ^= f }

// Len returns the text length in runes.
func (n *TextNode) Len() int { return len([]rune(n.text)) }

func (n *TextNode) Clone() Node {
	c := &TextNode{text: n.text, style: n.style}
	c.baseNode = n.baseNode
	return c
}

// slice returns the rune range [from, to) of the text.
func (n *TextNode) slice(from, to int) string {
	r := []rune(n.text)
	if from < 0 {
		from = 0
	}
	if to > len(r) {
		to = len(r)
	}
	if from >= to {
		return ""
	}
	return string(r[from:to])
}

// spliceText replaces the rune range [from, to) with repl.
func (n *TextNode) spliceText(from, to int, repl string) {
	r := []rune(n.text)
	if from < 0 {
		from = 0
	}
	if to > len(r) {
		to = len(r)
	}
	var b strings.Builder
	b.WriteString(string(r[:from]))
	b.WriteString(repl)
	b.WriteString(string(r[to:]))
	n.text = b.String()
}

// LineBreakNode is an inline hard break.
type LineBreakNode struct {
	baseNode
}

// NewLineBreak creates a detached line break node.
func NewLineBreak() *LineBreakNode {
	b := &LineBreakNode{}
	b.key = NewNodeKey()
	return b
}

func (n *LineBreakNode) Type() NodeType { return TypeLineBreak }

func (n *LineBreakNode) Clone() Node {
	c := &LineBreakNode{}
	c.baseNode = n.baseNode
	return c
}

// prevGraphemeStart returns the rune index where the grapheme cluster
// ending at rune offset off begins.
func prevGraphemeStart(s string, off int) int {
	if off <= 0 {
		return 0
	}
	start := 0
	pos := 0
	state := -1
	rest := s
	for len(rest) > 0 && pos < off {
		cluster, tail, _, next := uniseg.StepString(rest, state)
		width := len([]rune(cluster))
		if pos+width > off {
			break
		}
		start = pos
		pos += width
		rest = tail
		state = next
	}
	return start
}

// nextGraphemeEnd returns the rune index just past the grapheme cluster
// beginning at rune offset off.
func nextGraphemeEnd(s string, off int) int {
	pos := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		cluster, tail, _, next := uniseg.StepString(rest, state)
		width := len([]rune(cluster))
		if pos >= off {
			return pos + width
		}
		pos += width
		rest = tail
		state = next
	}
	return pos
}
