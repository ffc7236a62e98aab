package model

// FormatText toggles character style flags over the selection. On a
// collapsed selection the toggle is pending: it applies to the next
// inserted text.
func (d *Document) FormatText(sel *RangeSelection, flags StyleFlags) {
	if flags == 0 {
		return
	}

	if sel.IsCollapsed() {
		if !sel.styleSet {
			sel.styleSet = true
			if t, ok := d.textNode(sel.Anchor.Key); ok {
				sel.style = t.Style()
			}
		}
		sel.style ^= flags
		return
	}

	first, last := d.orderedPoints(sel)

	// Fast path: range within one text node.
	if first.Kind == PointText && last.Kind == PointText && first.Key == last.Key {
		t, ok := d.textNode(first.Key)
		if !ok {
			return
		}
		mid := d.isolateRun(t, first.Offset, last.Offset)
		mid.ToggleStyle(flags)
		d.sel = NewRange(TextPoint(mid.Key(), 0), TextPoint(mid.Key(), mid.Len()))
		return
	}

	leaves, fi, li := d.leafSpan(first, last)
	var runs []*TextNode
	for i := fi; i <= li && i >= 0 && i < len(leaves); i++ {
		t, isText := leaves[i].(*TextNode)
		if !isText {
			continue
		}
		from, to := 0, t.Len()
		if i == fi && first.Kind == PointText {
			from = first.Offset
		}
		if i == li && last.Kind == PointText {
			to = last.Offset
		}
		if from == to {
			continue
		}
		runs = append(runs, d.isolateRun(t, from, to))
	}
	if len(runs) == 0 {
		return
	}

	toggle := toggleFor(runs, flags)
	for _, run := range runs {
		if toggle {
			run.SetStyle(run.Style() | flags)
		} else {
			run.SetStyle(run.Style() &^ flags)
		}
	}

	firstRun, lastRun := runs[0], runs[len(runs)-1]
	d.sel = NewRange(TextPoint(firstRun.Key(), 0), TextPoint(lastRun.Key(), lastRun.Len()))
}

// toggleFor decides toggle direction: clear when every run already has
// all the flags, set otherwise.
func toggleFor(runs []*TextNode, flags StyleFlags) bool {
	for _, run := range runs {
		if !run.Style().Has(flags) {
			return true
		}
	}
	return false
}

// isolateRun splits a text node so that [from, to) becomes its own run
// and returns it.
func (d *Document) isolateRun(t *TextNode, from, to int) *TextNode {
	if to > t.Len() {
		to = t.Len()
	}
	if from == 0 && to == t.Len() {
		return t
	}

	if to < t.Len() {
		right := NewStyledText(t.slice(to, t.Len()), t.Style())
		t.spliceText(to, t.Len(), "")
		d.InsertAfter(t, right)
	}
	if from > 0 {
		mid := NewStyledText(t.slice(from, t.Len()), t.Style())
		t.spliceText(from, t.Len(), "")
		d.InsertAfter(t, mid)
		return mid
	}
	return t
}

// FormatElement sets the block alignment/format flag on every block the
// selection touches.
func (d *Document) FormatElement(sel Selection, format ElemFormat) {
	for _, block := range d.Blocks(sel) {
		block.SetFormat(format)
	}
}
