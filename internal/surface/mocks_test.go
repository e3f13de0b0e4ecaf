package surface

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/zjrosen/sieve/internal/filter"
)

// === Mock Lexer ===

type mockLexer struct {
	mock.Mock
}

func (m *mockLexer) Lex(ctx context.Context, text string) (filter.Result, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(filter.Result), args.Error(1)
}

// === Mock Parser ===

type mockParser struct {
	mock.Mock
}

func (m *mockParser) Parse(ctx context.Context, text string) (*filter.Search, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*filter.Search), args.Error(1)
}

// === Recording Control ===

type recordingControl struct {
	mu    sync.Mutex
	calls []bool
}

func (c *recordingControl) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, enabled)
}

func (c *recordingControl) Calls() []bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]bool(nil), c.calls...)
}

type panicLexer struct{}

func (panicLexer) Lex(context.Context, string) (filter.Result, error) {
	panic("lexer exploded")
}

type panicParser struct{}

func (panicParser) Parse(context.Context, string) (*filter.Search, error) {
	panic("parser exploded")
}

// reentrantParser submits the surface again from inside Parse.
type reentrantParser struct {
	s          *Surface
	inner      error
	submitting bool
}

func (p *reentrantParser) Parse(ctx context.Context, text string) (*filter.Search, error) {
	p.submitting = p.s.Submitting()
	p.inner = p.s.Submit(ctx)
	return filter.Parse(text)
}

// overlappingLexer returns tokens that break the sorted, non-overlapping
// contract.
type overlappingLexer struct{}

func (overlappingLexer) Lex(_ context.Context, text string) (filter.Result, error) {
	return filter.Result{Tokens: []filter.Token{
		{Kind: filter.KindName, Start: 0, End: len(text)},
		{Kind: filter.KindName, Start: 0, End: 1},
	}}, nil
}
