package model

import "strings"

// Document owns the node tree, the active selection, and the version
// counter bumped once per top-level update transaction.
type Document struct {
	nodes   map[NodeKey]Node
	root    NodeKey
	sel     Selection
	version uint64
	depth   int
}

// New creates a document containing only the root.
func New() *Document {
	root := newRoot()
	d := &Document{nodes: map[NodeKey]Node{root.Key(): root}}
	d.root = root.Key()
	return d
}

// RootKey returns the root node key.
func (d *Document) RootKey() NodeKey { return d.root }

// Root returns the root node.
func (d *Document) Root() *RootNode {
	return d.nodes[d.root].(*RootNode)
}

// Node returns the node for a key.
func (d *Document) Node(key NodeKey) (Node, bool) {
	n, ok := d.nodes[key]
	return n, ok
}

// ElementNode returns the node for a key if it is element-capable.
func (d *Document) ElementNode(key NodeKey) (Element, bool) {
	n, ok := d.nodes[key]
	if !ok {
		return nil, false
	}
	el, ok := n.(Element)
	return el, ok
}

// Version returns the current document version.
func (d *Document) Version() uint64 { return d.version }

// Update runs fn as part of an update transaction. Nested calls join the
// outer transaction; the version is bumped once when the outermost call
// returns.
func (d *Document) Update(fn func()) {
	d.depth++
	defer func() {
		d.depth--
		if d.depth == 0 {
			d.version++
		}
	}()
	fn()
}

// Selection returns the active selection. Handlers must re-fetch it
// after every mutation step rather than caching it.
func (d *Document) Selection() Selection { return d.sel }

// SetSelection installs a new active selection (nil clears it).
func (d *Document) SetSelection(s Selection) { d.sel = s }

// register adds a node to the key table.
func (d *Document) register(n Node) { d.nodes[n.Key()] = n }

// unregister drops a node and its subtree from the key table.
func (d *Document) unregister(n Node) {
	if el, ok := n.(Element); ok {
		for _, key := range el.Children() {
			if child, ok := d.nodes[key]; ok {
				d.unregister(child)
			}
		}
	}
	delete(d.nodes, n.Key())
}

// AppendChild attaches child as the last child of parent, detaching it
// from any previous parent first.
func (d *Document) AppendChild(parent Element, child Node) {
	d.InsertChildAt(parent, parent.ChildCount(), child)
}

// InsertChildAt attaches child at index idx of parent's child list.
func (d *Document) InsertChildAt(parent Element, idx int, child Node) {
	d.Detach(child)
	d.register(child)

	list := parent.childrenRef()
	if idx < 0 {
		idx = 0
	}
	if idx > len(*list) {
		idx = len(*list)
	}
	*list = append(*list, "")
	copy((*list)[idx+1:], (*list)[idx:])
	(*list)[idx] = child.Key()
	child.setParent(parent.Key())
}

// InsertAfter attaches n immediately after ref under ref's parent.
func (d *Document) InsertAfter(ref, n Node) {
	parent, ok := d.ElementNode(ref.Parent())
	if !ok {
		return
	}
	d.InsertChildAt(parent, d.indexOf(parent, ref.Key())+1, n)
}

// InsertBefore attaches n immediately before ref under ref's parent.
func (d *Document) InsertBefore(ref, n Node) {
	parent, ok := d.ElementNode(ref.Parent())
	if !ok {
		return
	}
	d.InsertChildAt(parent, d.indexOf(parent, ref.Key()), n)
}

// Detach removes n from its parent's child list. The node stays
// registered.
func (d *Document) Detach(n Node) {
	parent, ok := d.ElementNode(n.Parent())
	if !ok {
		return
	}
	list := parent.childrenRef()
	for i, key := range *list {
		if key == n.Key() {
			*list = append((*list)[:i], (*list)[i+1:]...)
			break
		}
	}
	n.setParent("")
}

// Remove detaches n and drops its subtree from the document.
func (d *Document) Remove(n Node) {
	d.Detach(n)
	d.unregister(n)
}

// ReplaceWith puts repl in old's position. Children are not moved; the
// caller migrates them if needed. old is detached but stays registered
// until unregistered.
func (d *Document) ReplaceWith(old Node, repl Node) {
	parent, ok := d.ElementNode(old.Parent())
	if !ok {
		return
	}
	idx := d.indexOf(parent, old.Key())
	d.Detach(old)
	d.InsertChildAt(parent, idx, repl)
}

// MoveChildren appends all children of from to to, preserving order.
func (d *Document) MoveChildren(from, to Element) {
	for _, key := range from.Children() {
		if child, ok := d.nodes[key]; ok {
			d.AppendChild(to, child)
		}
	}
}

func (d *Document) indexOf(parent Element, key NodeKey) int {
	for i, k := range *parent.childrenRef() {
		if k == key {
			return i
		}
	}
	return -1
}

// ChildAt returns parent's child at index i.
func (d *Document) ChildAt(parent Element, i int) (Node, bool) {
	list := *parent.childrenRef()
	if i < 0 || i >= len(list) {
		return nil, false
	}
	return d.Node(list[i])
}

// PrevSibling returns the sibling before n.
func (d *Document) PrevSibling(n Node) (Node, bool) {
	parent, ok := d.ElementNode(n.Parent())
	if !ok {
		return nil, false
	}
	return d.ChildAt(parent, d.indexOf(parent, n.Key())-1)
}

// NextSibling returns the sibling after n.
func (d *Document) NextSibling(n Node) (Node, bool) {
	parent, ok := d.ElementNode(n.Parent())
	if !ok {
		return nil, false
	}
	return d.ChildAt(parent, d.indexOf(parent, n.Key())+1)
}

// BlockOf returns the top-level block containing the point: the ancestor
// that is a direct child of the root. A point on the root itself resolves
// through its child index.
func (d *Document) BlockOf(p Point) (Element, bool) {
	n, ok := d.Node(p.Key)
	if !ok {
		return nil, false
	}
	if n.Key() == d.root {
		child, ok := d.ChildAt(n.(Element), clampIndex(p.Offset, n.(Element).ChildCount()))
		if !ok {
			return nil, false
		}
		n = child
	}
	return d.blockForNode(n)
}

func (d *Document) blockForNode(n Node) (Element, bool) {
	for n.Parent() != "" && n.Parent() != d.root {
		parent, ok := d.Node(n.Parent())
		if !ok {
			return nil, false
		}
		n = parent
	}
	if n.Parent() != d.root {
		return nil, false
	}
	el, ok := n.(Element)
	return el, ok
}

func clampIndex(i, count int) int {
	if i < 0 {
		return 0
	}
	if i >= count {
		return count - 1
	}
	return i
}

// Blocks returns the top-level blocks touched by a selection, in
// document order.
func (d *Document) Blocks(sel Selection) []Element {
	switch s := sel.(type) {
	case *RangeSelection:
		first, last := d.orderedPoints(s)
		firstBlock, ok := d.BlockOf(first)
		if !ok {
			return nil
		}
		lastBlock, ok := d.BlockOf(last)
		if !ok {
			return []Element{firstBlock}
		}
		var out []Element
		collecting := false
		for _, key := range d.Root().Children() {
			if key == firstBlock.Key() {
				collecting = true
			}
			if collecting {
				if el, ok := d.ElementNode(key); ok {
					out = append(out, el)
				}
			}
			if key == lastBlock.Key() {
				break
			}
		}
		return out
	case *NodeSelection:
		var out []Element
		for _, key := range s.Keys {
			if el, ok := d.ElementNode(key); ok {
				out = append(out, el)
			}
		}
		return out
	default:
		return nil
	}
}

// path returns child indexes from the root down to key.
func (d *Document) path(key NodeKey) []int {
	var rev []int
	n, ok := d.Node(key)
	if !ok {
		return nil
	}
	for n.Parent() != "" {
		parent, ok := d.ElementNode(n.Parent())
		if !ok {
			return nil
		}
		rev = append(rev, d.indexOf(parent, n.Key()))
		n = parent
	}
	out := make([]int, len(rev))
	for i, v := range rev {
		out[len(rev)-1-i] = v
	}
	return out
}

// comparePoints orders two points in document order.
func (d *Document) comparePoints(a, b Point) int {
	pa := append(d.path(a.Key), a.Offset)
	pb := append(d.path(b.Key), b.Offset)
	for i := 0; i < len(pa) && i < len(pb); i++ {
		if pa[i] != pb[i] {
			if pa[i] < pb[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(pa) < len(pb):
		return -1
	case len(pa) > len(pb):
		return 1
	default:
		return 0
	}
}

// samePosition reports whether two points address the same document
// position even when expressed through different nodes, such as a text
// point at a run edge versus an element point beside that run.
func (d *Document) samePosition(a, b Point) bool {
	if a == b {
		return true
	}
	ba, oka := d.BlockOf(a)
	bb, okb := d.BlockOf(b)
	if !oka || !okb || ba.Key() != bb.Key() {
		return false
	}
	ua, oka := d.pointUnits(ba, a)
	ub, okb := d.pointUnits(bb, b)
	return oka && okb && ua == ub
}

// pointUnits measures a point's position under n in content units: one
// unit per text rune, one per non-text leaf.
func (d *Document) pointUnits(n Node, p Point) (int, bool) {
	if n.Key() == p.Key {
		if p.Kind == PointText {
			return p.Offset, true
		}
		el, ok := n.(Element)
		if !ok {
			return 0, false
		}
		units := 0
		for i := 0; i < p.Offset && i < el.ChildCount(); i++ {
			if child, ok := d.ChildAt(el, i); ok {
				units += d.subtreeUnits(child)
			}
		}
		return units, true
	}
	el, ok := n.(Element)
	if !ok {
		return 0, false
	}
	units := 0
	for _, key := range el.Children() {
		child, ok := d.Node(key)
		if !ok {
			continue
		}
		if u, found := d.pointUnits(child, p); found {
			return units + u, true
		}
		units += d.subtreeUnits(child)
	}
	return 0, false
}

func (d *Document) subtreeUnits(n Node) int {
	switch t := n.(type) {
	case *TextNode:
		return t.Len()
	case Element:
		units := 0
		for _, key := range t.Children() {
			if child, ok := d.Node(key); ok {
				units += d.subtreeUnits(child)
			}
		}
		return units
	default:
		return 1
	}
}

// orderedPoints returns the selection's points in document order.
func (d *Document) orderedPoints(s *RangeSelection) (first, last Point) {
	if d.comparePoints(s.Anchor, s.Focus) <= 0 {
		return s.Anchor, s.Focus
	}
	return s.Focus, s.Anchor
}

// leaves appends the leaf nodes under n in document order.
func (d *Document) leaves(n Node, out []Node) []Node {
	el, ok := n.(Element)
	if !ok {
		return append(out, n)
	}
	children := el.Children()
	if len(children) == 0 {
		return out
	}
	for _, key := range children {
		if child, ok := d.Node(key); ok {
			out = d.leaves(child, out)
		}
	}
	return out
}

// BlockLeaves returns the leaf nodes of a block in order.
func (d *Document) BlockLeaves(block Element) []Node {
	return d.leaves(block, nil)
}

// TextContent returns the plain text of a subtree. Line breaks render as
// "\n"; top-level blocks are separated by "\n\n".
func (d *Document) TextContent(n Node) string {
	var b strings.Builder
	d.writeText(n, &b)
	return b.String()
}

func (d *Document) writeText(n Node, b *strings.Builder) {
	switch t := n.(type) {
	case *TextNode:
		b.WriteString(t.Text())
	case *LineBreakNode:
		b.WriteByte('\n')
	case Element:
		children := t.Children()
		for i, key := range children {
			child, ok := d.Node(key)
			if !ok {
				continue
			}
			if i > 0 && n.Key() == d.root {
				b.WriteString("\n\n")
			}
			d.writeText(child, b)
		}
	}
}

// SelectionText returns the plain text covered by a selection.
func (d *Document) SelectionText(sel Selection) string {
	switch s := sel.(type) {
	case *RangeSelection:
		if s.IsCollapsed() {
			return ""
		}
		first, last := d.orderedPoints(s)
		if first.Kind == PointText && first.Key == last.Key {
			if t, ok := d.textNode(first.Key); ok {
				return t.slice(first.Offset, last.Offset)
			}
			return ""
		}
		var b strings.Builder
		leaves, fi, li := d.leafSpan(first, last)
		for i := fi; i <= li && i < len(leaves); i++ {
			switch t := leaves[i].(type) {
			case *TextNode:
				from, to := 0, t.Len()
				if i == fi && first.Kind == PointText {
					from = first.Offset
				}
				if i == li && last.Kind == PointText {
					to = last.Offset
				}
				b.WriteString(t.slice(from, to))
			case *LineBreakNode:
				b.WriteByte('\n')
			}
		}
		return b.String()
	case *NodeSelection:
		var parts []string
		for _, key := range s.Keys {
			if n, ok := d.Node(key); ok {
				parts = append(parts, d.TextContent(n))
			}
		}
		return strings.Join(parts, "\n\n")
	default:
		return ""
	}
}

func (d *Document) textNode(key NodeKey) (*TextNode, bool) {
	n, ok := d.Node(key)
	if !ok {
		return nil, false
	}
	t, ok := n.(*TextNode)
	return t, ok
}

// leafSpan returns all document leaves plus the indexes of the leaves
// holding the first and last points.
func (d *Document) leafSpan(first, last Point) (leaves []Node, fi, li int) {
	leaves = d.leaves(d.Root(), nil)
	fi, li = -1, -1
	firstLeaf := d.leafForPoint(first, false)
	lastLeaf := d.leafForPoint(last, true)
	for i, leaf := range leaves {
		if firstLeaf != nil && leaf.Key() == firstLeaf.Key() {
			fi = i
		}
		if lastLeaf != nil && leaf.Key() == lastLeaf.Key() {
			li = i
		}
	}
	if fi == -1 {
		fi = len(leaves)
	}
	if li == -1 {
		li = -1
	}
	return leaves, fi, li
}

// leafForPoint resolves a point to the leaf it addresses. For element
// points the child at the offset index is descended (its last leaf when
// atEnd is set).
func (d *Document) leafForPoint(p Point, atEnd bool) Node {
	n, ok := d.Node(p.Key)
	if !ok {
		return nil
	}
	if p.Kind == PointText {
		return n
	}
	el, ok := n.(Element)
	if !ok {
		return n
	}
	idx := p.Offset
	if atEnd {
		idx--
	}
	child, ok := d.ChildAt(el, clampIndex(idx, el.ChildCount()))
	if !ok {
		return nil
	}
	under := d.leaves(child, nil)
	if len(under) == 0 {
		return nil
	}
	if atEnd {
		return under[len(under)-1]
	}
	return under[0]
}
