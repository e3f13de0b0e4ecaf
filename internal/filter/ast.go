package filter

import (
	"strconv"
	"strings"
)

// Operand is either a *Comparison or a *Search.
type Operand interface {
	operand()
	String() string
}

// ValueKind identifies the type of a comparison value.
type ValueKind int

const (
	ValueString ValueKind = iota
	ValueNumber
)

// Value is the right-hand side of a comparison.
type Value struct {
	Kind   ValueKind
	Text   string  // string contents, or the number as written
	Number float64 // set when Kind is ValueNumber
}

func (v Value) String() string {
	if v.Kind == ValueNumber {
		return v.Text
	}
	return `"` + v.Text + `"`
}

// Comparison represents "name comparator value".
type Comparison struct {
	Name       string
	Comparator Comparator
	Value      Value
}

func (c *Comparison) operand() {}

func (c *Comparison) String() string {
	return c.Name + " " + c.Comparator.String() + " " + c.Value.String()
}

// Search is a group of operands combined with one join type. Consecutive
// joins of the same type are flattened into a single Search.
type Search struct {
	Join     JoinType
	Operands []Operand
}

func (s *Search) operand() {}

// String renders the search in canonical form. Nested searches are
// parenthesized.
func (s *Search) String() string {
	parts := make([]string, 0, len(s.Operands))
	for _, op := range s.Operands {
		if sub, ok := op.(*Search); ok && len(s.Operands) > 1 {
			parts = append(parts, "("+sub.String()+")")
			continue
		}
		parts = append(parts, op.String())
	}
	return strings.Join(parts, " "+s.Join.String()+" ")
}

// Comparisons returns the number of comparisons in the search tree.
func (s *Search) Comparisons() int {
	n := 0
	for _, op := range s.Operands {
		switch v := op.(type) {
		case *Comparison:
			n++
		case *Search:
			n += v.Comparisons()
		}
	}
	return n
}

func numberValue(lit string) (Value, error) {
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return Value{}, err
	}
	return Value{Kind: ValueNumber, Text: lit, Number: f}, nil
}
