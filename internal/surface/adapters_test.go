package surface

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/sieve/internal/cachemanager"
	"github.com/zjrosen/sieve/internal/filter"
)

func newLexCache() cachemanager.CacheManager[string, filter.Result] {
	return cachemanager.NewInMemoryCacheManager[string, filter.Result]("lex-test", time.Minute, time.Minute)
}

func TestFilterAdapters(t *testing.T) {
	ctx := context.Background()

	res, err := FilterLexer{}.Lex(ctx, "a = 1")
	require.NoError(t, err)
	require.Len(t, res.Tokens, 3)

	search, err := FilterParser{}.Parse(ctx, "a = 1 | b = 2")
	require.NoError(t, err)
	require.Equal(t, 2, search.Comparisons())
}

func TestCachingLexer_ServesRepeatsFromCache(t *testing.T) {
	ctx := context.Background()
	next := &mockLexer{}
	next.On("Lex", mock.Anything, "a = 1").Return(filter.Lex("a = 1"), nil).Once()

	lexer := NewCachingLexer(next, newLexCache(), time.Minute)
	first, err := lexer.Lex(ctx, "a = 1")
	require.NoError(t, err)
	second, err := lexer.Lex(ctx, "a = 1")
	require.NoError(t, err)

	require.Equal(t, first, second)
	stats := lexer.Stats()
	require.Equal(t, int64(1), stats.Hits)
	require.Equal(t, int64(1), stats.Misses)
	next.AssertExpectations(t)
}

func TestCachingLexer_ErrorsNotCached(t *testing.T) {
	ctx := context.Background()
	next := &mockLexer{}
	next.On("Lex", mock.Anything, "x").Return(filter.Result{}, errors.New("boom")).Twice()

	lexer := NewCachingLexer(next, newLexCache(), time.Minute)
	_, err := lexer.Lex(ctx, "x")
	require.Error(t, err)
	_, err = lexer.Lex(ctx, "x")
	require.Error(t, err)
	next.AssertExpectations(t)
}

func TestCachingLexer_BacksSurface(t *testing.T) {
	ctx := context.Background()
	next := &mockLexer{}
	next.On("Lex", mock.Anything, "a = 1").Return(filter.Lex("a = 1"), nil).Once()

	s := New(Options{Text: "a = 1", Lexer: NewCachingLexer(next, newLexCache(), time.Minute)})
	s.ContentChanged(ctx)
	s.ContentChanged(ctx)

	require.Equal(t, `surface[name("a") " " comparator("=") " " number("1")]`, s.Tree().String())
	next.AssertExpectations(t)
}
