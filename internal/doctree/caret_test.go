package doctree

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// sampleTree builds surface[name("a") box[">" number("1")] ""] with an empty
// trailing run and a nested container.
func sampleTree() (*Node, []*Node) {
	a := NewRun("name", "a")
	gt := NewRun("", ">")
	one := NewRun("number", "1")
	tail := NewRun("", "")
	tree := NewContainer("surface", a, NewContainer("box", gt, one), tail)
	return tree, []*Node{a, gt, one, tail}
}

func TestNode_TextAndLen(t *testing.T) {
	tree, runs := sampleTree()
	require.Equal(t, "a>1", tree.Text())
	require.Equal(t, 3, tree.Len())
	require.Equal(t, runs, tree.Runs())
	require.Equal(t, `surface[name("a") box[">" number("1")] ""]`, tree.String())
}

func TestNode_Equal(t *testing.T) {
	left, _ := sampleTree()
	right, _ := sampleTree()
	require.True(t, left.Equal(right))

	right.Children[0] = NewRun("string", "a")
	require.False(t, left.Equal(right))

	var nilNode *Node
	require.True(t, nilNode.Equal(nil))
	require.False(t, left.Equal(nil))
}

func TestCapture_AccumulatesPrecedingRuns(t *testing.T) {
	tree, runs := sampleTree()

	tests := []struct {
		name     string
		caret    Caret
		expected Position
	}{
		{"start of first run", Caret{Run: runs[0], Offset: 0}, 0},
		{"end of first run", Caret{Run: runs[0], Offset: 1}, 1},
		{"nested run", Caret{Run: runs[1], Offset: 1}, 2},
		{"second nested run", Caret{Run: runs[2], Offset: 0}, 2},
		{"empty trailing run", Caret{Run: runs[3], Offset: 0}, 3},
		{"offset clamped to run", Caret{Run: runs[2], Offset: 7}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, ok := Capture(tree, tt.caret)
			require.True(t, ok)
			require.Equal(t, tt.expected, pos)
		})
	}
}

func TestCapture_CaretOutsideTree(t *testing.T) {
	tree, _ := sampleTree()

	_, ok := Capture(tree, Caret{Run: NewRun("", "a"), Offset: 0})
	require.False(t, ok)

	_, ok = Capture(tree, Caret{})
	require.False(t, ok)

	_, ok = Capture(nil, Caret{})
	require.False(t, ok)
}

func TestCapture_TreeWithoutRuns(t *testing.T) {
	tree := NewContainer("surface", NewContainer("empty"))

	pos, ok := Capture(tree, Caret{Run: NewRun("", "elsewhere"), Offset: 3})
	require.True(t, ok)
	require.Equal(t, Position(0), pos)
}

func TestLocate(t *testing.T) {
	tree, runs := sampleTree()

	tests := []struct {
		name     string
		pos      Position
		expected Caret
	}{
		{"zero restores before first character", 0, Caret{Run: runs[0], Offset: 0}},
		{"boundary prefers earlier run", 1, Caret{Run: runs[0], Offset: 1}},
		{"inside nested container", 2, Caret{Run: runs[1], Offset: 1}},
		{"end of text", 3, Caret{Run: runs[2], Offset: 1}},
		{"past end clamps to last run", 10, Caret{Run: runs[3], Offset: 0}},
		{"negative clamps to start", -4, Caret{Run: runs[0], Offset: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caret, ok := Locate(tree, tt.pos)
			require.True(t, ok)
			require.Equal(t, tt.expected, caret)
		})
	}
}

func TestLocate_EndRestoresToEndOfLastRun(t *testing.T) {
	last := NewRun("number", "12")
	tree := NewContainer("surface", NewRun("name", "a"), NewRun("", " "), last)

	caret, ok := Locate(tree, Position(tree.Len()))
	require.True(t, ok)
	require.Equal(t, Caret{Run: last, Offset: 2}, caret)
}

func TestLocate_NoRuns(t *testing.T) {
	_, ok := Locate(NewContainer("surface"), 0)
	require.False(t, ok)

	_, ok = Locate(nil, 0)
	require.False(t, ok)
}

func TestContains(t *testing.T) {
	tree, runs := sampleTree()
	for _, run := range runs {
		require.True(t, Contains(tree, Caret{Run: run}))
	}
	require.False(t, Contains(tree, Caret{Run: NewRun("", "x")}))
	require.False(t, Contains(tree, Caret{}))
}

// randomTree draws a tree whose runs concatenate to a random string.
func randomTree(t *rapid.T) *Node {
	var build func(depth int) *Node
	build = func(depth int) *Node {
		if depth > 2 || rapid.Bool().Draw(t, "leaf") {
			return NewRun(rapid.SampledFrom([]string{"", "name", "number"}).Draw(t, "class"),
				rapid.StringMatching(`[a-z >=1"]{0,4}`).Draw(t, "text"))
		}
		n := rapid.IntRange(0, 4).Draw(t, "children")
		kids := make([]*Node, n)
		for i := range kids {
			kids[i] = build(depth + 1)
		}
		return NewContainer("box", kids...)
	}
	return NewContainer("surface", build(0), build(0))
}

func TestLocateCapture_RoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree := randomTree(t)
		pos := Position(rapid.IntRange(0, tree.Len()).Draw(t, "pos"))

		caret, ok := Locate(tree, pos)
		if !ok {
			// Only possible when the tree has no runs at all.
			if len(tree.Runs()) != 0 {
				t.Fatalf("Locate failed on tree with runs: %s", tree)
			}
			return
		}

		got, ok := Capture(tree, caret)
		if !ok || got != pos {
			t.Fatalf("round trip of %d through %s gave %d (ok=%v)", pos, tree, got, ok)
		}
	})
}

func TestCaptureLocate_RoundTripPerRun(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tree := randomTree(t)
		runs := tree.Runs()
		if len(runs) == 0 {
			return
		}
		run := runs[rapid.IntRange(0, len(runs)-1).Draw(t, "run")]
		offset := rapid.IntRange(0, len(run.RunText())).Draw(t, "offset")

		pos, ok := Capture(tree, Caret{Run: run, Offset: offset})
		if !ok {
			t.Fatalf("caret in own run not captured")
		}

		caret, ok := Locate(tree, pos)
		if !ok {
			t.Fatalf("Locate(%d) failed", pos)
		}
		again, _ := Capture(tree, caret)
		if again != pos {
			t.Fatalf("position %d relocated to %d", pos, again)
		}
	})
}
