// Package doctree models the rendered content of an editable surface as an
// ordered tree of styling containers and text runs, and maps carets to and
// from linear byte positions.
//
// Concatenating the text of every run in pre-order yields the raw text of
// the surface.
package doctree

import (
	"strconv"
	"strings"
)

// Node is either a container with ordered children or a run owning an
// immutable text string.
type Node struct {
	Class    string
	Children []*Node

	text string
	run  bool
}

// NewRun creates a leaf run.
func NewRun(class, text string) *Node {
	return &Node{Class: class, text: text, run: true}
}

// NewContainer creates a styling container.
func NewContainer(class string, children ...*Node) *Node {
	return &Node{Class: class, Children: children}
}

// IsRun reports whether n is a leaf run.
func (n *Node) IsRun() bool {
	return n != nil && n.run
}

// RunText returns the text of a run, or "" for containers.
func (n *Node) RunText() string {
	if !n.IsRun() {
		return ""
	}
	return n.text
}

// Len returns the byte length of the text under n.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	if n.run {
		return len(n.text)
	}
	total := 0
	for _, child := range n.Children {
		total += child.Len()
	}
	return total
}

// Text returns the pre-order concatenation of all run text under n.
func (n *Node) Text() string {
	var sb strings.Builder
	sb.Grow(n.Len())
	for _, run := range n.Runs() {
		sb.WriteString(run.text)
	}
	return sb.String()
}

// Runs returns the runs under n in pre-order.
func (n *Node) Runs() []*Node {
	if n == nil {
		return nil
	}
	if n.run {
		return []*Node{n}
	}
	var runs []*Node
	for _, child := range n.Children {
		runs = append(runs, child.Runs()...)
	}
	return runs
}

// Equal reports whether two trees have the same shape, classes, and text.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.run != other.run || n.Class != other.Class || n.text != other.text {
		return false
	}
	if len(n.Children) != len(other.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// String renders the tree for debugging, e.g. surface[name("a") ">"].
// Runs without a class print as their quoted text.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.run {
		if n.Class == "" {
			return strconv.Quote(n.text)
		}
		return n.Class + "(" + strconv.Quote(n.text) + ")"
	}
	parts := make([]string, len(n.Children))
	for i, child := range n.Children {
		parts[i] = child.String()
	}
	return n.Class + "[" + strings.Join(parts, " ") + "]"
}

// mapRuns copies the tree, replacing each run with fn(run). Containers are
// always copied so the input tree is never mutated.
func mapRuns(n *Node, fn func(run *Node) *Node) *Node {
	if n.run {
		return fn(n)
	}
	children := make([]*Node, len(n.Children))
	for i, child := range n.Children {
		children[i] = mapRuns(child, fn)
	}
	return &Node{Class: n.Class, Children: children}
}
