package model

import (
	"unicode"
)

// caretTo installs a collapsed selection at p.
func (d *Document) caretTo(p Point) *RangeSelection {
	sel := NewCaret(p)
	d.sel = sel
	return sel
}

// PointAtStart returns the caret position at the start of an element.
func (d *Document) PointAtStart(el Element) Point {
	if first, ok := d.ChildAt(el, 0); ok {
		if t, isText := first.(*TextNode); isText {
			return TextPoint(t.Key(), 0)
		}
	}
	return ElementPoint(el.Key(), 0)
}

// PointAtEnd returns the caret position at the end of an element.
func (d *Document) PointAtEnd(el Element) Point {
	if last, ok := d.ChildAt(el, el.ChildCount()-1); ok {
		if t, isText := last.(*TextNode); isText {
			return TextPoint(t.Key(), t.Len())
		}
	}
	return ElementPoint(el.Key(), el.ChildCount())
}

// AtBlockStart reports whether a collapsed selection sits at the very
// start of its containing block.
func (d *Document) AtBlockStart(sel *RangeSelection) bool {
	if !sel.IsCollapsed() {
		return false
	}
	return d.atBlockEdge(sel.Anchor, false)
}

// AtBlockEnd reports whether a collapsed selection sits at the very end
// of its containing block.
func (d *Document) AtBlockEnd(sel *RangeSelection) bool {
	if !sel.IsCollapsed() {
		return false
	}
	return d.atBlockEdge(sel.Anchor, true)
}

func (d *Document) atBlockEdge(p Point, end bool) bool {
	block, ok := d.BlockOf(p)
	if !ok {
		return false
	}
	switch p.Kind {
	case PointElement:
		if p.Key != block.Key() {
			return false
		}
		if end {
			return p.Offset >= block.ChildCount()
		}
		return p.Offset == 0
	case PointText:
		t, ok := d.textNode(p.Key)
		if !ok {
			return false
		}
		leaves := d.BlockLeaves(block)
		if len(leaves) == 0 {
			return false
		}
		if end {
			return leaves[len(leaves)-1].Key() == t.Key() && p.Offset == t.Len()
		}
		return leaves[0].Key() == t.Key() && p.Offset == 0
	}
	return false
}

// CharBefore returns the rune immediately before a text point within its
// text node.
func (d *Document) CharBefore(p Point) (rune, bool) {
	if p.Kind != PointText || p.Offset == 0 {
		return 0, false
	}
	t, ok := d.textNode(p.Key)
	if !ok {
		return 0, false
	}
	r := []rune(t.Text())
	if p.Offset > len(r) {
		return 0, false
	}
	return r[p.Offset-1], true
}

// InsertText inserts text at the selection, replacing any range contents
// first. The caret lands after the inserted text.
func (d *Document) InsertText(sel *RangeSelection, text string) {
	if !sel.IsCollapsed() {
		d.RemoveText(sel)
		sel = d.sel.(*RangeSelection)
	}
	if text == "" {
		return
	}

	p := sel.Anchor
	switch p.Kind {
	case PointText:
		t, ok := d.textNode(p.Key)
		if !ok {
			return
		}
		if sel.styleSet && sel.style != t.Style() {
			d.insertStyledRun(t, p.Offset, text, sel.style)
			return
		}
		t.spliceText(p.Offset, p.Offset, text)
		d.caretTo(TextPoint(t.Key(), p.Offset+len([]rune(text))))
	case PointElement:
		el, ok := d.ElementNode(p.Key)
		if !ok {
			return
		}
		style := StyleFlags(0)
		if sel.styleSet {
			style = sel.style
		}
		t := NewStyledText(text, style)
		d.InsertChildAt(el, p.Offset, t)
		d.caretTo(TextPoint(t.Key(), t.Len()))
	}
}

// insertStyledRun splits a text run at off and inserts a new run with a
// different style between the halves.
func (d *Document) insertStyledRun(t *TextNode, off int, text string, style StyleFlags) {
	run := NewStyledText(text, style)
	switch {
	case off == 0:
		d.InsertBefore(t, run)
	case off >= t.Len():
		d.InsertAfter(t, run)
	default:
		right := NewStyledText(t.slice(off, t.Len()), t.Style())
		t.spliceText(off, t.Len(), "")
		d.InsertAfter(t, right)
		d.InsertAfter(t, run)
	}
	d.caretTo(TextPoint(run.Key(), run.Len()))
}

// RemoveText deletes the current range contents and collapses the
// selection at the deletion site.
func (d *Document) RemoveText(sel *RangeSelection) {
	if sel.IsCollapsed() {
		return
	}
	first, last := d.orderedPoints(sel)
	caret := d.removeRange(first, last)
	d.caretTo(caret)
}

// removeRange deletes everything between two ordered points and returns
// the caret position at the deletion site.
func (d *Document) removeRange(first, last Point) Point {
	// Fast path: both points in one text node.
	if first.Kind == PointText && last.Kind == PointText && first.Key == last.Key {
		if t, ok := d.textNode(first.Key); ok {
			t.spliceText(first.Offset, last.Offset, "")
			return d.normalizeTextCaret(t, first.Offset)
		}
		return first
	}

	firstBlock, okA := d.BlockOf(first)
	lastBlock, okB := d.BlockOf(last)
	if !okA || !okB {
		return first
	}

	leaves, fi, li := d.leafSpan(first, last)
	var keepFirst *TextNode
	for i := fi; i <= li && i >= 0 && i < len(leaves); i++ {
		leaf := leaves[i]
		t, isText := leaf.(*TextNode)
		if !isText {
			d.Remove(leaf)
			continue
		}
		from, to := 0, t.Len()
		if i == fi && first.Kind == PointText {
			from = first.Offset
		}
		if i == li && last.Kind == PointText {
			to = last.Offset
		}
		if from == 0 && to == t.Len() {
			d.Remove(t)
			continue
		}
		t.spliceText(from, to, "")
		if i == fi && from > 0 {
			keepFirst = t
		}
	}

	// Merge the boundary blocks when the range spanned more than one.
	if firstBlock.Key() != lastBlock.Key() {
		between := false
		for _, key := range d.Root().Children() {
			if key == firstBlock.Key() {
				between = true
				continue
			}
			if key == lastBlock.Key() {
				break
			}
			if between {
				if n, ok := d.Node(key); ok {
					d.Remove(n)
				}
			}
		}
		d.MoveChildren(lastBlock, firstBlock)
		d.Remove(lastBlock)
	}

	if keepFirst != nil {
		return d.normalizeTextCaret(keepFirst, first.Offset)
	}
	if first.Kind == PointText {
		// The first leaf was wholly removed; land at the block start.
		return d.PointAtStart(firstBlock)
	}
	return ElementPoint(firstBlock.Key(), clampChildOffset(first.Offset, firstBlock))
}

// normalizeTextCaret drops a text node that became empty and returns the
// resulting caret position.
func (d *Document) normalizeTextCaret(t *TextNode, off int) Point {
	if t.Text() != "" {
		if off > t.Len() {
			off = t.Len()
		}
		return TextPoint(t.Key(), off)
	}
	parent, ok := d.ElementNode(t.Parent())
	if !ok {
		return TextPoint(t.Key(), 0)
	}
	idx := d.indexOf(parent, t.Key())
	d.Remove(t)
	return ElementPoint(parent.Key(), idx)
}

func clampChildOffset(off int, el Element) int {
	if off < 0 {
		return 0
	}
	if off > el.ChildCount() {
		return el.ChildCount()
	}
	return off
}

// DeleteCharacter deletes one grapheme cluster next to a collapsed
// selection, or the range contents of an expanded one. At a block
// boundary the adjacent blocks merge; a Heading or Quote first in the
// document collapses into a paragraph instead.
func (d *Document) DeleteCharacter(sel *RangeSelection, backward bool) {
	if !sel.IsCollapsed() {
		d.RemoveText(sel)
		return
	}

	p := sel.Anchor
	if p.Kind == PointText {
		t, ok := d.textNode(p.Key)
		if !ok {
			return
		}
		if backward && p.Offset > 0 {
			start := prevGraphemeStart(t.Text(), p.Offset)
			t.spliceText(start, p.Offset, "")
			d.caretTo(d.normalizeTextCaret(t, start))
			return
		}
		if !backward && p.Offset < t.Len() {
			end := nextGraphemeEnd(t.Text(), p.Offset)
			t.spliceText(p.Offset, end, "")
			d.caretTo(d.normalizeTextCaret(t, p.Offset))
			return
		}
	}

	// At a leaf boundary: try the adjacent leaf within the block.
	if leaf, ok := d.adjacentLeaf(p, backward); ok {
		switch t := leaf.(type) {
		case *LineBreakNode:
			parent, hasParent := d.ElementNode(t.Parent())
			idx := -1
			if hasParent {
				idx = d.indexOf(parent, t.Key())
			}
			d.Remove(t)
			if hasParent && idx >= 0 {
				d.caretTo(ElementPoint(parent.Key(), idx))
			}
			return
		case *TextNode:
			if backward {
				start := prevGraphemeStart(t.Text(), t.Len())
				t.spliceText(start, t.Len(), "")
				d.caretTo(d.normalizeTextCaret(t, start))
			} else {
				end := nextGraphemeEnd(t.Text(), 0)
				t.spliceText(0, end, "")
				d.caretTo(d.normalizeTextCaret(t, 0))
			}
			return
		}
	}

	// Block boundary: merge with the neighbor block.
	block, ok := d.BlockOf(p)
	if !ok {
		return
	}
	if backward {
		prev, hasPrev := d.PrevSibling(block)
		if !hasPrev {
			block.CollapseAtStart(d)
			return
		}
		prevBlock, isEl := prev.(Element)
		if !isEl {
			return
		}
		caret := d.PointAtEnd(prevBlock)
		d.MoveChildren(block, prevBlock)
		d.Remove(block)
		d.caretTo(caret)
		return
	}
	next, hasNext := d.NextSibling(block)
	if !hasNext {
		return
	}
	nextBlock, isEl := next.(Element)
	if !isEl {
		return
	}
	caret := d.PointAtEnd(block)
	d.MoveChildren(nextBlock, block)
	d.Remove(nextBlock)
	d.caretTo(caret)
}

// adjacentLeaf returns the leaf immediately before (backward) or after
// the point within its block, if the point sits at a leaf boundary.
func (d *Document) adjacentLeaf(p Point, backward bool) (Node, bool) {
	block, ok := d.BlockOf(p)
	if !ok {
		return nil, false
	}
	leaves := d.BlockLeaves(block)

	switch p.Kind {
	case PointText:
		t, ok := d.textNode(p.Key)
		if !ok {
			return nil, false
		}
		if backward && p.Offset != 0 {
			return nil, false
		}
		if !backward && p.Offset != t.Len() {
			return nil, false
		}
		for i, leaf := range leaves {
			if leaf.Key() != t.Key() {
				continue
			}
			if backward && i > 0 {
				return leaves[i-1], true
			}
			if !backward && i < len(leaves)-1 {
				return leaves[i+1], true
			}
			return nil, false
		}
		return nil, false
	case PointElement:
		el, ok := d.ElementNode(p.Key)
		if !ok {
			return nil, false
		}
		idx := p.Offset
		if backward {
			idx--
		}
		child, ok := d.ChildAt(el, idx)
		if !ok {
			return nil, false
		}
		if _, isEl := child.(Element); isEl {
			return nil, false
		}
		return child, true
	}
	return nil, false
}

// DeleteWord deletes the word adjacent to a collapsed selection within
// its text run. Whitespace between the caret and the word is consumed
// too. With nothing to scan it falls back to a character delete.
func (d *Document) DeleteWord(sel *RangeSelection, backward bool) {
	if !sel.IsCollapsed() {
		d.RemoveText(sel)
		return
	}

	p := sel.Anchor
	if p.Kind != PointText {
		d.DeleteCharacter(sel, backward)
		return
	}
	t, ok := d.textNode(p.Key)
	if !ok {
		return
	}
	r := []rune(t.Text())

	if backward {
		i := p.Offset
		for i > 0 && unicode.IsSpace(r[i-1]) {
			i--
		}
		for i > 0 && !unicode.IsSpace(r[i-1]) {
			i--
		}
		if i == p.Offset {
			d.DeleteCharacter(sel, true)
			return
		}
		t.spliceText(i, p.Offset, "")
		d.caretTo(d.normalizeTextCaret(t, i))
		return
	}

	i := p.Offset
	for i < len(r) && unicode.IsSpace(r[i]) {
		i++
	}
	for i < len(r) && !unicode.IsSpace(r[i]) {
		i++
	}
	if i == p.Offset {
		d.DeleteCharacter(sel, false)
		return
	}
	t.spliceText(p.Offset, i, "")
	d.caretTo(d.normalizeTextCaret(t, p.Offset))
}

// DeleteLine deletes from the caret to the nearest line boundary within
// the block: the closest line break in the given direction, or the block
// edge. An empty span falls back to a character delete so repeated
// invocations keep consuming content.
func (d *Document) DeleteLine(sel *RangeSelection, backward bool) {
	if !sel.IsCollapsed() {
		d.RemoveText(sel)
		return
	}

	boundary, ok := d.lineBoundary(sel.Anchor, backward)
	// The boundary beside an adjacent line break is the caret's own
	// position expressed through a different node, so compare
	// semantically, not structurally.
	if !ok || d.samePosition(boundary, sel.Anchor) {
		d.DeleteCharacter(sel, backward)
		return
	}
	if backward {
		d.caretTo(d.removeRange(boundary, sel.Anchor))
		return
	}
	d.caretTo(d.removeRange(sel.Anchor, boundary))
}

// lineBoundary finds the position of the nearest line boundary in the
// given direction within the point's block.
func (d *Document) lineBoundary(p Point, backward bool) (Point, bool) {
	block, ok := d.BlockOf(p)
	if !ok {
		return Point{}, false
	}
	leaves := d.BlockLeaves(block)

	idx := -1
	for i, leaf := range leaves {
		if leaf.Key() == p.Key {
			idx = i
			break
		}
	}
	if idx == -1 && p.Kind == PointElement {
		idx = clampIndex(p.Offset, len(leaves))
	}
	if idx == -1 {
		return Point{}, false
	}

	if backward {
		for i := idx - 1; i >= 0; i-- {
			if _, isBreak := leaves[i].(*LineBreakNode); isBreak {
				return d.pointAfterLeaf(leaves[i]), true
			}
		}
		return d.PointAtStart(block), true
	}
	start := idx
	if p.Kind == PointText {
		start = idx + 1
	}
	for i := start; i < len(leaves); i++ {
		if _, isBreak := leaves[i].(*LineBreakNode); isBreak {
			return d.pointBeforeLeaf(leaves[i]), true
		}
	}
	return d.PointAtEnd(block), true
}

func (d *Document) pointAfterLeaf(leaf Node) Point {
	if parent, ok := d.ElementNode(leaf.Parent()); ok {
		return ElementPoint(parent.Key(), d.indexOf(parent, leaf.Key())+1)
	}
	return Point{}
}

func (d *Document) pointBeforeLeaf(leaf Node) Point {
	if parent, ok := d.ElementNode(leaf.Parent()); ok {
		return ElementPoint(parent.Key(), d.indexOf(parent, leaf.Key()))
	}
	return Point{}
}

// InsertLineBreak inserts a hard break at the selection. With selectStart
// set the caret stays before the break.
func (d *Document) InsertLineBreak(sel *RangeSelection, selectStart bool) {
	if !sel.IsCollapsed() {
		d.RemoveText(sel)
		sel = d.sel.(*RangeSelection)
	}

	br := NewLineBreak()
	p := sel.Anchor
	switch p.Kind {
	case PointText:
		t, ok := d.textNode(p.Key)
		if !ok {
			return
		}
		switch {
		case p.Offset == 0:
			d.InsertBefore(t, br)
		case p.Offset >= t.Len():
			d.InsertAfter(t, br)
		default:
			right := NewStyledText(t.slice(p.Offset, t.Len()), t.Style())
			t.spliceText(p.Offset, t.Len(), "")
			d.InsertAfter(t, right)
			d.InsertAfter(t, br)
		}
	case PointElement:
		el, ok := d.ElementNode(p.Key)
		if !ok {
			return
		}
		d.InsertChildAt(el, p.Offset, br)
	}

	if selectStart {
		d.caretTo(d.pointBeforeLeaf(br))
		return
	}
	d.caretTo(d.pointAfterLeaf(br))
}

// InsertParagraph splits the current block at the caret through the
// block's own InsertNewAfter contract and moves the trailing content into
// the new block. Returns the new block with the caret at its start.
func (d *Document) InsertParagraph(sel *RangeSelection) Element {
	if !sel.IsCollapsed() {
		d.RemoveText(sel)
		sel = d.sel.(*RangeSelection)
	}

	p := sel.Anchor
	block, ok := d.BlockOf(p)
	if !ok {
		return nil
	}
	newBlock := block.InsertNewAfter(d)
	if newBlock == nil {
		return nil
	}

	// Collect the content after the caret and move it into the new block.
	var moved []Node
	switch p.Kind {
	case PointText:
		t, ok := d.textNode(p.Key)
		if !ok {
			break
		}
		parent, ok := d.ElementNode(t.Parent())
		if !ok {
			break
		}
		start := d.indexOf(parent, t.Key()) + 1
		if p.Offset == 0 {
			start--
		} else if p.Offset < t.Len() {
			right := NewStyledText(t.slice(p.Offset, t.Len()), t.Style())
			t.spliceText(p.Offset, t.Len(), "")
			d.InsertAfter(t, right)
		}
		children := parent.Children()
		for i := start; i < len(children); i++ {
			if child, ok := d.Node(children[i]); ok {
				moved = append(moved, child)
			}
		}
	case PointElement:
		el, ok := d.ElementNode(p.Key)
		if !ok {
			break
		}
		children := el.Children()
		for i := p.Offset; i < len(children); i++ {
			if child, ok := d.Node(children[i]); ok {
				moved = append(moved, child)
			}
		}
	}
	for _, n := range moved {
		d.AppendChild(newBlock, n)
	}

	d.caretTo(d.PointAtStart(newBlock))
	return newBlock
}
