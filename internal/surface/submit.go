package surface

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/sieve/internal/filter"
	"github.com/zjrosen/sieve/internal/log"
	"github.com/zjrosen/sieve/internal/pubsub"
	"github.com/zjrosen/sieve/internal/tracing"
)

// SubmitResult is the outcome of one submit.
type SubmitResult struct {
	Text   string
	Search *filter.Search
	Err    error
}

// Submit parses the current raw text. The control is disabled for the
// duration and re-enabled on every exit path, including a parser panic.
// A submit started while another is running returns ErrSubmitInProgress
// without touching the control.
func (s *Surface) Submit(ctx context.Context) error {
	if s.submitting {
		log.Debug(log.CatSubmit, "submit ignored, already in progress", "surface", s.id)
		return ErrSubmitInProgress
	}
	s.submitting = true
	s.control.SetEnabled(false)
	defer func() {
		s.submitting = false
		s.control.SetEnabled(true)
	}()

	text := s.tree.Text()
	ctx, span := s.tracer.Start(ctx, tracing.SpanSubmit,
		trace.WithAttributes(
			attribute.String(tracing.AttrSurfaceID, s.id),
			attribute.Int(tracing.AttrTextLength, len(text)),
		))
	defer span.End()

	search, err := s.parse(ctx, text)
	result := SubmitResult{Text: text, Search: search, Err: err}
	s.lastSubmit = &result
	s.publish(pubsub.SubmittedEvent, Event{Seq: s.seq, Text: text, Submit: &result})

	if err != nil {
		tracing.RecordError(span, err)
		log.ErrorErr(log.CatSubmit, "submit failed", err, "surface", s.id)
		return err
	}
	if search != nil {
		log.Info(log.CatSubmit, "submitted", "surface", s.id, "filter", search.String())
	}
	return nil
}

func (s *Surface) parse(ctx context.Context, text string) (search *filter.Search, err error) {
	defer func() {
		if r := recover(); r != nil {
			search, err = nil, fmt.Errorf("%w: panic: %v", ErrSubmitFailed, r)
		}
	}()
	search, err = s.parser.Parse(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}
	return search, nil
}
