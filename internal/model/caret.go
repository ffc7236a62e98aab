package model

// CaretNeedsOverride reports whether default single-character caret
// movement would cross a non-text boundary and must be performed
// explicitly by the editing layer. This is the case when the position
// adjacent to the caret in the movement direction is not plain text:
// a hard break, or the edge of the block.
func (d *Document) CaretNeedsOverride(sel *RangeSelection, forward bool) bool {
	p := sel.Focus
	switch p.Kind {
	case PointText:
		t, ok := d.textNode(p.Key)
		if !ok {
			return false
		}
		if forward && p.Offset < t.Len() {
			return false
		}
		if !forward && p.Offset > 0 {
			return false
		}
	case PointElement:
		// Element points always sit between nodes.
	}
	leaf, ok := d.adjacentLeaf(p, !forward)
	if ok {
		_, isText := leaf.(*TextNode)
		return !isText
	}
	// Block edge: crossing into the neighbor block.
	return d.hasNeighborBlock(p, forward)
}

func (d *Document) hasNeighborBlock(p Point, forward bool) bool {
	block, ok := d.BlockOf(p)
	if !ok {
		return false
	}
	if forward {
		_, ok = d.NextSibling(block)
	} else {
		_, ok = d.PrevSibling(block)
	}
	return ok
}

// MoveCaret advances the focus point by one position in the given
// direction. Without extend the selection collapses onto the new
// position.
func (d *Document) MoveCaret(sel *RangeSelection, forward, extend bool) {
	p := d.stepPoint(sel.Focus, forward)
	if extend {
		d.sel = NewRange(sel.Anchor, p)
		return
	}
	d.caretTo(p)
}

// stepPoint computes the position one caret step away from p.
func (d *Document) stepPoint(p Point, forward bool) Point {
	if p.Kind == PointText {
		t, ok := d.textNode(p.Key)
		if !ok {
			return p
		}
		if forward && p.Offset < t.Len() {
			return TextPoint(p.Key, nextGraphemeEnd(t.Text(), p.Offset))
		}
		if !forward && p.Offset > 0 {
			return TextPoint(p.Key, prevGraphemeStart(t.Text(), p.Offset))
		}
	}

	// Step over the adjacent leaf in this block.
	if leaf, ok := d.adjacentLeaf(p, !forward); ok {
		if t, isText := leaf.(*TextNode); isText {
			if forward {
				return TextPoint(t.Key(), nextGraphemeEnd(t.Text(), 0))
			}
			return TextPoint(t.Key(), prevGraphemeStart(t.Text(), t.Len()))
		}
		if forward {
			return d.pointAfterLeaf(leaf)
		}
		return d.pointBeforeLeaf(leaf)
	}

	// Step across the block boundary.
	block, ok := d.BlockOf(p)
	if !ok {
		return p
	}
	if forward {
		if next, ok := d.NextSibling(block); ok {
			if el, isEl := next.(Element); isEl {
				return d.PointAtStart(el)
			}
		}
		return p
	}
	if prev, ok := d.PrevSibling(block); ok {
		if el, isEl := prev.(Element); isEl {
			return d.PointAtEnd(el)
		}
	}
	return p
}
