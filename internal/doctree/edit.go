package doctree

// The functions in this file emulate native editing of the surface: they
// change run text in place of the host and never restyle. The next render
// pass rebuilds styling from the raw text.

// InsertAt inserts s at the caret. The run holding the caret is replaced by
// a new run keeping its class, and the returned caret sits right after the
// inserted text. It returns false, leaving tree untouched, when the caret is
// not inside tree.
func InsertAt(tree *Node, caret Caret, s string) (*Node, Caret, bool) {
	if !Contains(tree, caret) {
		return tree, caret, false
	}
	offset := clamp(caret.Offset, 0, len(caret.Run.text))
	var next Caret
	out := mapRuns(tree, func(run *Node) *Node {
		if run != caret.Run {
			return run
		}
		replaced := NewRun(run.Class, run.text[:offset]+s+run.text[offset:])
		next = Caret{Run: replaced, Offset: offset + len(s)}
		return replaced
	})
	return out, next, true
}

// DeleteRange removes the raw text bytes in [from, to), which may span
// several runs, and collapses the caret at from.
func DeleteRange(tree *Node, from, to Position) (*Node, Caret) {
	if tree == nil {
		return nil, Caret{}
	}
	total := Position(tree.Len())
	from = Position(clamp(int(from), 0, int(total)))
	to = Position(clamp(int(to), int(from), int(total)))

	offset := 0
	out := mapRuns(tree, func(run *Node) *Node {
		start, end := offset, offset+len(run.text)
		offset = end
		lo := clamp(int(from)-start, 0, len(run.text))
		hi := clamp(int(to)-start, 0, len(run.text))
		if lo >= hi {
			return run
		}
		return NewRun(run.Class, run.text[:lo]+run.text[hi:])
	})

	caret, _ := Locate(out, from)
	return out, caret
}
