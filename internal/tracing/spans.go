package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span names.
const (
	SpanContentChanged = "surface.content_changed"
	SpanApply          = "surface.apply"
	SpanSubmit         = "surface.submit"
)

// Span attribute keys.
const (
	AttrSurfaceID   = "surface.id"
	AttrSeq         = "surface.seq"
	AttrTextLength  = "text.length"
	AttrTokenCount  = "lex.tokens"
	AttrDiagnostics = "lex.diagnostics"
	AttrPosition    = "caret.position"
	AttrStale       = "cycle.stale"
	AttrDegraded    = "render.degraded"

	AttrErrorMessage = "error.message"
)

// Event names.
const (
	EventCaretRestored = "caret.restored"
	EventLexFailed     = "lex.failed"
)

// RecordError marks span as failed with err.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
}
