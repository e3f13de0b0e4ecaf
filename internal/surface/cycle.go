package surface

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/sieve/internal/doctree"
	"github.com/zjrosen/sieve/internal/filter"
	"github.com/zjrosen/sieve/internal/log"
	"github.com/zjrosen/sieve/internal/pubsub"
	"github.com/zjrosen/sieve/internal/tracing"
)

// Cycle identifies one highlight cycle: the text snapshot it lexes and the
// sequence number that decides whether its result may be installed.
type Cycle struct {
	Seq  uint64
	Text string
}

// Computed is the result of lexing and rendering a cycle's text.
type Computed struct {
	Cycle       Cycle
	Tree        *doctree.Node
	Tokens      int
	Diagnostics []string
	// Err is set when no tree could be built. The previous tree is kept.
	Err error
}

// Begin starts a cycle over the current text and supersedes every cycle
// started before it.
func (s *Surface) Begin() Cycle {
	s.seq++
	return Cycle{Seq: s.seq, Text: s.tree.Text()}
}

// Compute lexes and renders c.Text. It never touches the installed tree or
// caret, so it may run off the update loop.
func (s *Surface) Compute(ctx context.Context, c Cycle) Computed {
	ctx, span := s.tracer.Start(ctx, tracing.SpanContentChanged,
		trace.WithAttributes(
			attribute.String(tracing.AttrSurfaceID, s.id),
			attribute.Int64(tracing.AttrSeq, int64(c.Seq)),
			attribute.Int(tracing.AttrTextLength, len(c.Text)),
		))
	defer span.End()

	out := Computed{Cycle: c}
	res, err := s.lex(ctx, c.Text)
	if err != nil {
		log.ErrorErr(log.CatLex, "lex failed", err, "surface", s.id, "seq", c.Seq)
		span.AddEvent(tracing.EventLexFailed)
		tracing.RecordError(span, err)
		span.SetAttributes(attribute.Bool(tracing.AttrDegraded, true))
		out.Err = err
		return out
	}

	tree, err := s.renderer.Render(c.Text, res.Tokens)
	if err != nil {
		log.ErrorErr(log.CatRender, "lexer broke token contract", err, "surface", s.id, "seq", c.Seq)
		if s.strictTokens {
			panic(err)
		}
		tracing.RecordError(span, err)
		span.SetAttributes(attribute.Bool(tracing.AttrDegraded, true))
		out.Err = err
		return out
	}

	out.Tree = tree
	out.Tokens = len(res.Tokens)
	out.Diagnostics = res.Diagnostics
	span.SetAttributes(
		attribute.Int(tracing.AttrTokenCount, out.Tokens),
		attribute.Int(tracing.AttrDiagnostics, len(out.Diagnostics)),
		attribute.Bool(tracing.AttrDegraded, false),
	)
	if len(out.Diagnostics) > 0 {
		log.Debug(log.CatLex, "diagnostics", "surface", s.id, "seq", c.Seq, "count", len(out.Diagnostics))
	}
	return out
}

// Apply installs a computed result and restores the caret. Results from a
// superseded cycle are dropped and Apply reports false.
//
// The caret is captured against the live tree at install time, not when
// the cycle began, so edits made while the cycle was computing are honoured.
func (s *Surface) Apply(ctx context.Context, r Computed) bool {
	_, span := s.tracer.Start(ctx, tracing.SpanApply,
		trace.WithAttributes(
			attribute.String(tracing.AttrSurfaceID, s.id),
			attribute.Int64(tracing.AttrSeq, int64(r.Cycle.Seq)),
		))
	defer span.End()

	if r.Cycle.Seq != s.seq {
		span.SetAttributes(attribute.Bool(tracing.AttrStale, true))
		log.Debug(log.CatSurface, "dropped stale cycle", "surface", s.id, "seq", r.Cycle.Seq, "current", s.seq)
		return false
	}
	span.SetAttributes(attribute.Bool(tracing.AttrStale, false))

	if r.Err != nil {
		s.slot = ErrorSlot{Text: fmt.Sprintf("highlighting unavailable: %v", r.Err), Visible: true}
		return true
	}

	pos, captured := doctree.Capture(s.tree, s.caret)
	s.tree = r.Tree
	if captured {
		if caret, ok := doctree.Locate(s.tree, pos); ok {
			s.caret = caret
			span.AddEvent(tracing.EventCaretRestored, trace.WithAttributes(attribute.Int(tracing.AttrPosition, int(pos))))
		}
	}
	s.setDiagnostics(r.Diagnostics)

	s.publish(pubsub.RenderedEvent, Event{Seq: r.Cycle.Seq, Text: r.Cycle.Text, Diagnostics: r.Diagnostics})
	return true
}

// lex runs the lexer, converting errors and panics into ErrLexerFailed.
func (s *Surface) lex(ctx context.Context, text string) (res filter.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrLexerFailed, r)
		}
	}()
	res, err = s.lexer.Lex(ctx, text)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrLexerFailed, err)
	}
	return res, nil
}
