// Package model provides the in-memory rich-text document tree: node
// variants, selection types, and the mutation primitives the command
// handlers build on.
//
// Every node has an opaque stable key. The tree owns nodes through child
// lists; parent links are back references only. Indent is bounded to
// [0, MaxIndent] and every node except the root has exactly one parent.
package model

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/scribepad/scribe/internal/render"
	"github.com/scribepad/scribe/internal/theme"
)

// NodeKey is the opaque stable identity of a node.
type NodeKey string

// NewNodeKey generates a fresh node key.
func NewNodeKey() NodeKey {
	return NodeKey(uuid.NewString())
}

// NodeType identifies a node variant.
type NodeType string

// Node variants. The set is closed; external markup maps onto these
// through MatchExternalMarkup.
const (
	TypeRoot      NodeType = "root"
	TypeParagraph NodeType = "paragraph"
	TypeHeading   NodeType = "heading"
	TypeQuote     NodeType = "quote"
	TypeCode      NodeType = "code"
	TypeText      NodeType = "text"
	TypeLineBreak NodeType = "linebreak"
)

// MaxIndent is the upper bound for block indentation.
const MaxIndent = 10

// Direction is the text direction of an element.
type Direction string

// Text directions. DirectionNone means unset.
const (
	DirectionNone Direction = ""
	DirectionLTR  Direction = "ltr"
	DirectionRTL  Direction = "rtl"
)

// ElemFormat is a block-level alignment/format flag.
type ElemFormat string

// Block formats. FormatNone means unset.
const (
	FormatNone    ElemFormat = ""
	FormatLeft    ElemFormat = "left"
	FormatCenter  ElemFormat = "center"
	FormatRight   ElemFormat = "right"
	FormatJustify ElemFormat = "justify"
)

// ParseElemFormat maps a format flag name to an ElemFormat.
func ParseElemFormat(name string) (ElemFormat, bool) {
	switch ElemFormat(name) {
	case FormatNone, FormatLeft, FormatCenter, FormatRight, FormatJustify:
		return ElemFormat(name), true
	}
	return FormatNone, false
}

// Node is the common contract of all document nodes.
type Node interface {
	// Key returns the node's stable identity.
	Key() NodeKey

	// Type returns the node variant.
	Type() NodeType

	// Parent returns the parent key, or "" for the root and detached nodes.
	Parent() NodeKey

	// Clone returns a deep copy of the node's own attributes. The clone
	// keeps the key; child lists are copied as-is.
	Clone() Node

	setParent(NodeKey)
}

// Element is the capability set of block-level container nodes.
type Element interface {
	Node

	// Children returns a copy of the ordered child key list.
	Children() []NodeKey

	// ChildCount returns the number of children.
	ChildCount() int

	// Indent returns the indent level in [0, MaxIndent].
	Indent() int

	// SetIndent sets the indent level, clamped to [0, MaxIndent].
	SetIndent(n int)

	// Direction returns the text direction.
	Direction() Direction

	// SetDirection sets the text direction.
	SetDirection(dir Direction)

	// Format returns the block alignment/format flag.
	Format() ElemFormat

	// SetFormat sets the block alignment/format flag.
	SetFormat(f ElemFormat)

	// CanInsertTab reports whether the block accepts literal tab
	// characters instead of indentation.
	CanInsertTab() bool

	// InsertNewAfter creates the block's successor for a block split,
	// inserts it immediately after this block, and returns it.
	InsertNewAfter(d *Document) Element

	// CollapseAtStart handles a merge into the preceding block when this
	// block is first in its parent. It reports whether the collapse was
	// handled.
	CollapseAtStart(d *Document) bool

	// Render produces the block's renderable element with theme classes
	// applied. Children are composed externally; see RenderTree.
	Render(th *theme.Theme) *render.Element

	// Reconcile reports whether the rendered element must be replaced
	// given the previous node snapshot.
	Reconcile(prev Node, el *render.Element) bool

	childrenRef() *[]NodeKey
}

// baseNode carries identity and the parent back reference.
type baseNode struct {
	key    NodeKey
	parent NodeKey
}

func (n *baseNode) Key() NodeKey        { return n.key }
func (n *baseNode) Parent() NodeKey     { return n.parent }
func (n *baseNode) setParent(k NodeKey) { n.parent = k }

// baseElement carries the shared element attribute set.
type baseElement struct {
	baseNode
	children []NodeKey
	indent   int
	dir      Direction
	format   ElemFormat
}

func (e *baseElement) Children() []NodeKey {
	out := make([]NodeKey, len(e.children))
	copy(out, e.children)
	return out
}

func (e *baseElement) ChildCount() int          { return len(e.children) }
func (e *baseElement) Indent() int              { return e.indent }
func (e *baseElement) Direction() Direction     { return e.dir }
func (e *baseElement) SetDirection(d Direction) { e.dir = d }
func (e *baseElement) Format() ElemFormat       { return e.format }
func (e *baseElement) SetFormat(f ElemFormat)   { e.format = f }
func (e *baseElement) CanInsertTab() bool       { return false }
func (e *baseElement) childrenRef() *[]NodeKey  { return &e.children }

func (e *baseElement) SetIndent(n int) {
	if n < 0 {
		n = 0
	}
	if n > MaxIndent {
		n = MaxIndent
	}
	e.indent = n
}

// Reconcile on the base element always reports "no update needed": block
// chrome is static once created, content lives in children.
func (e *baseElement) Reconcile(prev Node, el *render.Element) bool {
	return false
}

func (e *baseElement) cloneInto(dst *baseElement) {
	dst.baseNode = e.baseNode
	dst.children = make([]NodeKey, len(e.children))
	copy(dst.children, e.children)
	dst.indent = e.indent
	dst.dir = e.dir
	dst.format = e.format
}

// applyBlockAttrs applies shared block attributes to a rendered element.
func (e *baseElement) applyBlockAttrs(el *render.Element) {
	if e.dir != DirectionNone {
		el.SetAttr("dir", string(e.dir))
	}
	if e.format != FormatNone {
		el.SetAttr("style", "text-align: "+string(e.format)+";")
	}
	if e.indent > 0 {
		el.SetAttr("data-indent", strconv.Itoa(e.indent))
	}
}
