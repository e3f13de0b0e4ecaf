package doctree

// Position is the number of bytes preceding the caret in the pre-order
// concatenation of run text.
type Position int

// Caret identifies a run and a byte offset within it. The zero value means
// "no caret".
type Caret struct {
	Run    *Node
	Offset int
}

// IsZero reports whether the caret is unset.
func (c Caret) IsZero() bool {
	return c.Run == nil
}

// Capture flattens a caret into a Position. It returns false when the
// caret's run is not part of tree. A tree without runs yields position 0 for
// any caret.
//
// Capture and Locate walk the tree in the same pre-order.
func Capture(tree *Node, caret Caret) (Position, bool) {
	if tree == nil {
		return 0, false
	}
	consumed, found := capture(tree, caret)
	if found {
		return Position(consumed), true
	}
	if !hasRuns(tree) {
		return 0, true
	}
	return 0, false
}

// capture returns the bytes consumed under n and whether the caret was
// found. When found, consumed stops at the caret.
func capture(n *Node, caret Caret) (int, bool) {
	if n.run {
		if caret.Run != nil && n == caret.Run {
			return clamp(caret.Offset, 0, len(n.text)), true
		}
		return len(n.text), false
	}
	total := 0
	for _, child := range n.Children {
		consumed, found := capture(child, caret)
		total += consumed
		if found {
			return total, true
		}
	}
	return total, false
}

// Locate maps a Position back to a caret inside tree. The first run whose
// end reaches pos receives the caret. Positions past the end clamp to the
// end of the last run. It returns false only when the tree has no runs.
func Locate(tree *Node, pos Position) (Caret, bool) {
	if tree == nil {
		return Caret{}, false
	}
	_, caret, found, last := locate(tree, max(int(pos), 0))
	if found {
		return caret, true
	}
	if last == nil {
		return Caret{}, false
	}
	return Caret{Run: last, Offset: len(last.text)}, true
}

// locate returns the bytes consumed under n, the caret if it falls under n,
// and the last run visited.
func locate(n *Node, remaining int) (int, Caret, bool, *Node) {
	if n.run {
		if remaining <= len(n.text) {
			return remaining, Caret{Run: n, Offset: remaining}, true, n
		}
		return len(n.text), Caret{}, false, n
	}
	total := 0
	var last *Node
	for _, child := range n.Children {
		consumed, caret, found, childLast := locate(child, remaining-total)
		if found {
			return total + consumed, caret, true, childLast
		}
		total += consumed
		if childLast != nil {
			last = childLast
		}
	}
	return total, Caret{}, false, last
}

// Contains reports whether the caret's run belongs to tree.
func Contains(tree *Node, caret Caret) bool {
	if tree == nil || caret.Run == nil {
		return false
	}
	if tree.run {
		return tree == caret.Run
	}
	for _, child := range tree.Children {
		if Contains(child, caret) {
			return true
		}
	}
	return false
}

func hasRuns(n *Node) bool {
	if n.run {
		return true
	}
	for _, child := range n.Children {
		if hasRuns(child) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
