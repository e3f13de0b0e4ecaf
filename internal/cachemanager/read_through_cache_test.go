package cachemanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func countingLoader(calls *int, err error) Loader[lexEntry, string] {
	return func(_ context.Context, text string) (lexEntry, error) {
		*calls++
		if err != nil {
			return lexEntry{}, err
		}
		return lexEntry{Tokens: len(text)}, nil
	}
}

func TestReadThroughCache_LoadsOnceThenHits(t *testing.T) {
	calls := 0
	rt := NewReadThroughCache[string, lexEntry, string](newTestCache(), countingLoader(&calls, nil), time.Minute, false)

	for range 3 {
		got, err := rt.Get(context.Background(), "a>1", "a>1")
		require.NoError(t, err)
		require.Equal(t, 3, got.Tokens)
	}
	require.Equal(t, 1, calls)
	require.Equal(t, int64(2), rt.Cache().Stats().Hits)
}

func TestReadThroughCache_ErrorsAreNotCached(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	cache := newTestCache()
	rt := NewReadThroughCache[string, lexEntry, string](cache, countingLoader(&calls, boom), time.Minute, false)

	_, err := rt.Get(context.Background(), "k", "k")
	require.ErrorIs(t, err, boom)
	_, err = rt.Get(context.Background(), "k", "k")
	require.ErrorIs(t, err, boom)

	require.Equal(t, 2, calls)
	require.Equal(t, 0, cache.Stats().Items)
}

func TestReadThroughCache_Bypass(t *testing.T) {
	calls := 0
	cache := newTestCache()
	rt := NewReadThroughCache[string, lexEntry, string](cache, countingLoader(&calls, nil), time.Minute, true)

	_, _ = rt.Get(context.Background(), "k", "k")
	_, _ = rt.Get(context.Background(), "k", "k")

	require.Equal(t, 2, calls)
	require.Equal(t, Stats{}, cache.Stats())
}
