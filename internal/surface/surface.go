// Package surface coordinates the render pipeline of one editable filter
// surface: capture the caret, lex, render, swap the tree, restore the caret,
// and update the error slot. It also owns the line-break key rule and submit.
//
// A Surface is owned by a single goroutine (the host's update loop). Only
// Compute may run elsewhere; it reads nothing the other methods write.
package surface

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/sieve/internal/doctree"
	"github.com/zjrosen/sieve/internal/filter"
	"github.com/zjrosen/sieve/internal/highlight"
	"github.com/zjrosen/sieve/internal/log"
	"github.com/zjrosen/sieve/internal/pubsub"
	"github.com/zjrosen/sieve/internal/tracing"
)

var (
	// ErrLexerFailed wraps a lexer that returned an error or panicked.
	ErrLexerFailed = errors.New("lexer failed")
	// ErrSubmitInProgress is returned by a submit started while another
	// submit on the same surface has not returned.
	ErrSubmitInProgress = errors.New("submit already in progress")
	// ErrSubmitFailed wraps a parser failure or panic during submit.
	ErrSubmitFailed = errors.New("submit failed")
)

// Lexer tokenizes raw text. It should tolerate malformed input by returning
// error tokens and diagnostics; a returned error is treated as a hard
// failure.
type Lexer interface {
	Lex(ctx context.Context, text string) (filter.Result, error)
}

// Parser parses the full grammar on submit.
type Parser interface {
	Parse(ctx context.Context, text string) (*filter.Search, error)
}

// Control is the control that triggers submit, disabled while it runs.
type Control interface {
	SetEnabled(enabled bool)
}

// ErrorSlot is the diagnostics area shown below the surface.
type ErrorSlot struct {
	Text    string
	Visible bool
}

// Event is published when a cycle installs a tree or a submit completes.
type Event struct {
	SurfaceID   string
	Seq         uint64
	Text        string
	Diagnostics []string
	Submit      *SubmitResult
}

// Options configures a Surface. Zero fields get defaults.
type Options struct {
	Lexer     Lexer
	Parser    Parser
	Renderer  *highlight.Renderer
	Control   Control
	Tracer    trace.Tracer
	Publisher pubsub.Publisher[Event]

	// ID identifies the surface in logs and spans. Defaults to a UUID.
	ID string
	// Text is the initial content. The caret starts at its end.
	Text string

	// TrailingBreakWorkaround inserts two line breaks when a modified line
	// break is typed at the very end of content.
	TrailingBreakWorkaround bool
	// StrictTokens panics on a token contract violation.
	StrictTokens bool
}

// Surface is one editable, highlighted text surface.
type Surface struct {
	id        string
	lexer     Lexer
	parser    Parser
	renderer  *highlight.Renderer
	control   Control
	tracer    trace.Tracer
	publisher pubsub.Publisher[Event]

	trailingBreak bool
	strictTokens  bool

	tree       *doctree.Node
	caret      doctree.Caret
	slot       ErrorSlot
	seq        uint64
	submitting bool
	lastSubmit *SubmitResult
}

type nopControl struct{}

func (nopControl) SetEnabled(bool) {}

// New creates a surface holding opts.Text as a single unstyled run. Call
// ContentChanged to highlight it.
func New(opts Options) *Surface {
	s := &Surface{
		id:            opts.ID,
		lexer:         opts.Lexer,
		parser:        opts.Parser,
		renderer:      opts.Renderer,
		control:       opts.Control,
		tracer:        opts.Tracer,
		publisher:     opts.Publisher,
		trailingBreak: opts.TrailingBreakWorkaround,
		strictTokens:  opts.StrictTokens,
	}
	if s.id == "" {
		s.id = uuid.NewString()
	}
	if s.lexer == nil {
		s.lexer = FilterLexer{}
	}
	if s.parser == nil {
		s.parser = FilterParser{}
	}
	if s.renderer == nil {
		s.renderer = highlight.NewRenderer(highlight.DefaultClassMap())
	}
	if s.control == nil {
		s.control = nopControl{}
	}
	if s.tracer == nil {
		s.tracer = tracing.Noop()
	}
	s.Reset(opts.Text)
	return s
}

// ID returns the surface identifier.
func (s *Surface) ID() string { return s.id }

// Tree returns the installed document tree.
func (s *Surface) Tree() *doctree.Node { return s.tree }

// Text returns the raw text of the installed tree.
func (s *Surface) Text() string { return s.tree.Text() }

// Caret returns the host caret.
func (s *Surface) Caret() doctree.Caret { return s.caret }

// SetCaret moves the host caret. Carets outside the tree are accepted; they
// simply cannot be captured.
func (s *Surface) SetCaret(c doctree.Caret) { s.caret = c }

// Position returns the caret as a linear offset, or false when the caret is
// not inside the tree.
func (s *Surface) Position() (doctree.Position, bool) {
	return doctree.Capture(s.tree, s.caret)
}

// ErrorSlot returns the diagnostics area.
func (s *Surface) ErrorSlot() ErrorSlot { return s.slot }

// Seq returns the most recently issued sequence number.
func (s *Surface) Seq() uint64 { return s.seq }

// Submitting reports whether a submit is running.
func (s *Surface) Submitting() bool { return s.submitting }

// LastSubmit returns the outcome of the most recent submit.
func (s *Surface) LastSubmit() (SubmitResult, bool) {
	if s.lastSubmit == nil {
		return SubmitResult{}, false
	}
	return *s.lastSubmit, true
}

// Reset replaces all content with text as one unstyled run and puts the
// caret at its end. Any cycle in flight becomes stale.
func (s *Surface) Reset(text string) {
	run := doctree.NewRun(highlight.ClassPlain, text)
	s.tree = doctree.NewContainer(highlight.ClassSurface, run)
	s.caret = doctree.Caret{Run: run, Offset: len(text)}
	s.seq++
}

// Edit applies a host-native mutation to the tree and caret. A nil tree
// from fn leaves the surface unchanged. A text change supersedes any cycle
// in flight.
func (s *Surface) Edit(fn func(tree *doctree.Node, caret doctree.Caret) (*doctree.Node, doctree.Caret)) {
	before := s.tree.Text()
	tree, caret := fn(s.tree, s.caret)
	if tree == nil {
		return
	}
	s.tree, s.caret = tree, caret
	if tree.Text() != before {
		s.seq++
	}
}

// ContentChanged runs one synchronous highlight cycle over the current raw
// text.
func (s *Surface) ContentChanged(ctx context.Context) {
	s.Apply(ctx, s.Compute(ctx, s.Begin()))
}

// LineBreak handles the line-break key. A plain break submits. A modified
// break inserts one line break at the caret and collapses the caret after
// it, without highlighting; the host raises content-changed afterwards. A
// caret outside the surface makes the modified break a no-op.
func (s *Surface) LineBreak(ctx context.Context, modified bool) error {
	if !modified {
		return s.Submit(ctx)
	}
	if !doctree.Contains(s.tree, s.caret) {
		log.Debug(log.CatSurface, "line break ignored, caret outside surface", "surface", s.id)
		return nil
	}

	insert := "\n"
	atEnd := false
	if pos, ok := s.Position(); ok && int(pos) == s.tree.Len() {
		atEnd = true
	}
	if s.trailingBreak && atEnd {
		insert = "\n\n"
	}

	tree, caret, ok := doctree.InsertAt(s.tree, s.caret, insert)
	if !ok {
		return nil
	}
	if len(insert) > 1 {
		// Caret sits between the two breaks.
		caret.Offset -= len(insert) - 1
	}
	s.tree, s.caret = tree, caret
	s.seq++
	return nil
}

func (s *Surface) setDiagnostics(diags []string) {
	if len(diags) == 0 {
		s.slot = ErrorSlot{}
		return
	}
	s.slot = ErrorSlot{Text: strings.Join(diags, "\n"), Visible: true}
}

func (s *Surface) publish(eventType pubsub.EventType, e Event) {
	if s.publisher == nil {
		return
	}
	e.SurfaceID = s.id
	s.publisher.Publish(eventType, e)
}
