package model

// PointKind distinguishes the two addressing modes of a point.
type PointKind uint8

const (
	// PointText addresses a rune offset inside a text node.
	PointText PointKind = iota

	// PointElement addresses a child index inside an element node.
	PointElement
)

// Point is a position in the document tree.
type Point struct {
	// Key is the node the point references.
	Key NodeKey

	// Offset is a rune offset for text points and a child index for
	// element points.
	Offset int

	// Kind selects the addressing mode.
	Kind PointKind
}

// TextPoint builds a text point.
func TextPoint(key NodeKey, offset int) Point {
	return Point{Key: key, Offset: offset, Kind: PointText}
}

// ElementPoint builds an element point.
func ElementPoint(key NodeKey, offset int) Point {
	return Point{Key: key, Offset: offset, Kind: PointElement}
}

// Selection is the tagged selection union: *RangeSelection,
// *NodeSelection, or nil for no selection.
type Selection interface {
	isSelection()

	// CloneSelection returns an independent copy.
	CloneSelection() Selection
}

// RangeSelection is an anchor/focus pair of points. A collapsed range is
// a caret.
type RangeSelection struct {
	Anchor Point
	Focus  Point

	// style is the pending character style toggled on a collapsed
	// selection, applied to the next inserted text.
	style    StyleFlags
	styleSet bool
}

func (*RangeSelection) isSelection() {}

// NewCaret builds a collapsed range selection at a point.
func NewCaret(p Point) *RangeSelection {
	return &RangeSelection{Anchor: p, Focus: p}
}

// NewRange builds a range selection.
func NewRange(anchor, focus Point) *RangeSelection {
	return &RangeSelection{Anchor: anchor, Focus: focus}
}

// IsCollapsed reports whether anchor and focus are the same position.
func (s *RangeSelection) IsCollapsed() bool {
	return s.Anchor == s.Focus
}

// Collapse moves both points to p.
func (s *RangeSelection) Collapse(p Point) {
	s.Anchor = p
	s.Focus = p
}

// CloneSelection implements Selection.
func (s *RangeSelection) CloneSelection() Selection {
	c := *s
	return &c
}

// NodeSelection is a set of whole-node selections.
type NodeSelection struct {
	Keys []NodeKey
}

func (*NodeSelection) isSelection() {}

// NewNodeSelection builds a node-set selection.
func NewNodeSelection(keys ...NodeKey) *NodeSelection {
	return &NodeSelection{Keys: keys}
}

// Has reports whether the set contains key.
func (s *NodeSelection) Has(key NodeKey) bool {
	for _, k := range s.Keys {
		if k == key {
			return true
		}
	}
	return false
}

// CloneSelection implements Selection.
func (s *NodeSelection) CloneSelection() Selection {
	keys := make([]NodeKey, len(s.Keys))
	copy(keys, s.Keys)
	return &NodeSelection{Keys: keys}
}
