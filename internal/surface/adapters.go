package surface

import (
	"context"
	"time"

	"github.com/zjrosen/sieve/internal/cachemanager"
	"github.com/zjrosen/sieve/internal/filter"
)

// FilterLexer adapts filter.Lex.
type FilterLexer struct{}

func (FilterLexer) Lex(_ context.Context, text string) (filter.Result, error) {
	return filter.Lex(text), nil
}

// FilterParser adapts filter.Parse.
type FilterParser struct{}

func (FilterParser) Parse(_ context.Context, text string) (*filter.Search, error) {
	return filter.Parse(text)
}

// CachingLexer memoizes another lexer by raw text. Retyping a previous
// value, or undoing an edit, is served without re-lexing.
type CachingLexer struct {
	next  Lexer
	cache *cachemanager.ReadThroughCache[string, filter.Result, string]
}

// NewCachingLexer wraps next with cache. Entries live for ttl and are
// refreshed on every hit.
func NewCachingLexer(next Lexer, cache cachemanager.CacheManager[string, filter.Result], ttl time.Duration) *CachingLexer {
	c := &CachingLexer{next: next}
	c.cache = cachemanager.NewReadThroughCache[string, filter.Result, string](cache, c.load, ttl, false)
	return c
}

func (c *CachingLexer) load(ctx context.Context, text string) (filter.Result, error) {
	return c.next.Lex(ctx, text)
}

func (c *CachingLexer) Lex(ctx context.Context, text string) (filter.Result, error) {
	return c.cache.Get(ctx, text, text)
}

// Stats returns hit and miss counts of the underlying cache.
func (c *CachingLexer) Stats() cachemanager.Stats {
	return c.cache.Cache().Stats()
}
