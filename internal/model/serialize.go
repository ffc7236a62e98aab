package model

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// Serialization errors.
var (
	// ErrBadState indicates the serialized state is not valid JSON or is
	// missing the root.
	ErrBadState = errors.New("model: invalid serialized state")

	// ErrUnknownNodeType indicates a serialized node of an unknown type.
	ErrUnknownNodeType = errors.New("model: unknown node type")
)

// SerializedNode is the JSON shape of one node subtree.
type SerializedNode struct {
	Type      NodeType         `json:"type"`
	Level     int              `json:"level,omitempty"`
	Language  string           `json:"language,omitempty"`
	Indent    int              `json:"indent,omitempty"`
	Direction Direction        `json:"direction,omitempty"`
	Format    ElemFormat       `json:"format,omitempty"`
	Style     []string         `json:"style,omitempty"`
	Text      string           `json:"text,omitempty"`
	Children  []SerializedNode `json:"children,omitempty"`
}

// SerializedState is the JSON shape of a whole document.
type SerializedState struct {
	Root SerializedNode `json:"root"`
}

// Export serializes a subtree.
func (d *Document) Export(n Node) SerializedNode {
	out := SerializedNode{Type: n.Type()}
	switch t := n.(type) {
	case *TextNode:
		out.Text = t.Text()
		out.Style = t.Style().Names()
	case *LineBreakNode:
	case *HeadingNode:
		out.Level = t.Level()
		d.exportElement(t, &out)
	case *CodeNode:
		out.Language = t.Language()
		d.exportElement(t, &out)
	case Element:
		d.exportElement(t, &out)
	}
	return out
}

func (d *Document) exportElement(el Element, out *SerializedNode) {
	out.Indent = el.Indent()
	out.Direction = el.Direction()
	out.Format = el.Format()
	for _, key := range el.Children() {
		if child, ok := d.Node(key); ok {
			out.Children = append(out.Children, d.Export(child))
		}
	}
}

// MarshalState serializes the whole document.
func (d *Document) MarshalState() ([]byte, error) {
	state := SerializedState{Root: d.Export(d.Root())}
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("marshaling document state: %w", err)
	}
	return data, nil
}

// UnmarshalState parses a serialized document state into a fresh
// document.
func UnmarshalState(data []byte) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrBadState
	}
	root := gjson.GetBytes(data, "root")
	if !root.Exists() {
		return nil, ErrBadState
	}

	d := New()
	for _, child := range root.Get("children").Array() {
		if _, err := importResult(d, d.Root(), child); err != nil {
			return nil, err
		}
	}
	applyElementAttrs(d.Root(), root)
	return d, nil
}

// TreeWriter is the minimal tree-building surface importers need. It is
// satisfied by *Document and by the execution-context document handle.
type TreeWriter interface {
	AppendChild(parent Element, child Node)
}

// ImportNode builds a node from a parsed JSON result and attaches it
// under parent.
func ImportNode(w TreeWriter, parent Element, r gjson.Result) (Node, error) {
	return importResult(w, parent, r)
}

func importResult(d TreeWriter, parent Element, r gjson.Result) (Node, error) {
	typ := NodeType(r.Get("type").String())
	switch typ {
	case TypeText:
		t := NewStyledText(r.Get("text").String(), styleFromResult(r))
		d.AppendChild(parent, t)
		return t, nil
	case TypeLineBreak:
		br := NewLineBreak()
		d.AppendChild(parent, br)
		return br, nil
	case TypeParagraph, TypeHeading, TypeQuote, TypeCode:
		el := newElementOf(typ, r)
		d.AppendChild(parent, el)
		applyElementAttrs(el, r)
		for _, child := range r.Get("children").Array() {
			if _, err := importResult(d, el, child); err != nil {
				return nil, err
			}
		}
		return el, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNodeType, typ)
	}
}

func newElementOf(typ NodeType, r gjson.Result) Element {
	switch typ {
	case TypeHeading:
		return NewHeading(int(r.Get("level").Int()))
	case TypeQuote:
		return NewQuote()
	case TypeCode:
		return NewCode(r.Get("language").String())
	default:
		return NewParagraph()
	}
}

func applyElementAttrs(el Element, r gjson.Result) {
	el.SetIndent(int(r.Get("indent").Int()))
	el.SetDirection(Direction(r.Get("direction").String()))
	if f, ok := ParseElemFormat(r.Get("format").String()); ok {
		el.SetFormat(f)
	}
}

func styleFromResult(r gjson.Result) StyleFlags {
	var names []string
	for _, s := range r.Get("style").Array() {
		names = append(names, s.String())
	}
	return StyleFromNames(names)
}
