package highlight

import (
	"errors"
	"fmt"

	"github.com/zjrosen/sieve/internal/doctree"
	"github.com/zjrosen/sieve/internal/filter"
)

// ErrTokenContract is returned when a token list is unsorted, overlapping,
// or outside the text. It indicates a lexer bug, not a user error.
var ErrTokenContract = errors.New("token contract violation")

// ValidateTokens checks that tokens are sorted by start, non-overlapping,
// and within text.
func ValidateTokens(text string, tokens []filter.Token) error {
	prevEnd := 0
	for i, tok := range tokens {
		switch {
		case tok.Start < 0 || tok.End < tok.Start || tok.End > len(text):
			return fmt.Errorf("%w: token %d [%d,%d) outside text of length %d", ErrTokenContract, i, tok.Start, tok.End, len(text))
		case tok.Start < prevEnd:
			return fmt.Errorf("%w: token %d [%d,%d) overlaps previous token ending at %d", ErrTokenContract, i, tok.Start, tok.End, prevEnd)
		}
		prevEnd = tok.End
	}
	return nil
}

// Renderer turns raw text plus tokens into a document tree.
type Renderer struct {
	Classes ClassMap
}

// NewRenderer creates a renderer with the given class mapping.
func NewRenderer(classes ClassMap) *Renderer {
	return &Renderer{Classes: classes}
}

// Render builds a tree whose runs concatenate to exactly text. Uncovered
// regions become plain runs; each token becomes a run classed by its kind.
// Empty text yields a single empty plain run. Identical inputs always yield
// identical trees.
func (r *Renderer) Render(text string, tokens []filter.Token) (*doctree.Node, error) {
	if err := ValidateTokens(text, tokens); err != nil {
		return nil, err
	}

	runs := make([]*doctree.Node, 0, 2*len(tokens)+1)
	last := 0
	for _, tok := range tokens {
		if tok.Start > last {
			runs = append(runs, doctree.NewRun(ClassPlain, text[last:tok.Start]))
		}
		runs = append(runs, doctree.NewRun(r.Classes.Class(tok.Kind), text[tok.Start:tok.End]))
		last = tok.End
	}
	if last < len(text) || len(runs) == 0 {
		runs = append(runs, doctree.NewRun(ClassPlain, text[last:]))
	}

	return doctree.NewContainer(ClassSurface, runs...), nil
}
