package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/zjrosen/sieve/internal/cachemanager"
	"github.com/zjrosen/sieve/internal/filter"
	"github.com/zjrosen/sieve/internal/highlight"
	"github.com/zjrosen/sieve/internal/log"
	"github.com/zjrosen/sieve/internal/surface"
	"github.com/zjrosen/sieve/internal/tracing"
	"github.com/zjrosen/sieve/internal/ui/styles"
)

// runtime holds the process-wide services a command needs: debug logging,
// the applied theme, tracing, and the lex cache.
type runtime struct {
	closeLog func()
	provider *tracing.Provider
	lexCache cachemanager.CacheManager[string, filter.Result]
}

func startRuntime() (*runtime, error) {
	if cfgErr != nil {
		return nil, cfgErr
	}
	rt := &runtime{closeLog: func() {}}

	if log.Enabled(debug) {
		closeLog, err := log.Init(debugLogFile)
		if err != nil {
			return nil, err
		}
		rt.closeLog = closeLog
		log.Info(log.CatConfig, "config loaded", "path", configPath())
	}

	if cfg.Theme.IsCustomized() {
		if err := styles.ApplyTheme(cfg.Theme.StylesTheme()); err != nil {
			rt.closeLog()
			return nil, fmt.Errorf("applying theme: %w", err)
		}
	}

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		rt.closeLog()
		return nil, fmt.Errorf("starting tracing: %w", err)
	}
	rt.provider = provider

	if cfg.Cache.Enabled {
		rt.lexCache = cachemanager.NewInMemoryCacheManager[string, filter.Result](
			"lex", cfg.Cache.LexTTL, cfg.Cache.CleanupInterval)
	}
	return rt, nil
}

// surfaceOptions builds surface options from the loaded config.
func (rt *runtime) surfaceOptions() surface.Options {
	var lexer surface.Lexer = surface.FilterLexer{}
	if rt.lexCache != nil {
		lexer = surface.NewCachingLexer(lexer, rt.lexCache, cfg.Cache.LexTTL)
	}
	return surface.Options{
		Lexer:                   lexer,
		Renderer:                highlight.NewRenderer(highlight.ClassMap{InvalidClass: cfg.Highlight.InvalidClass}),
		Tracer:                  rt.provider.Tracer(),
		TrailingBreakWorkaround: cfg.Editor.TrailingBreakWorkaround,
		StrictTokens:            cfg.Editor.StrictTokens,
	}
}

// Close flushes traces and closes the debug log.
func (rt *runtime) Close() {
	if rt.lexCache != nil {
		stats := rt.lexCache.Stats()
		log.Debug(log.CatCache, "lex cache", "hits", stats.Hits, "misses", stats.Misses, "items", stats.Items)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rt.provider.Shutdown(ctx); err != nil {
		log.ErrorErr(log.CatTrace, "tracing shutdown failed", err)
	}
	rt.closeLog()
}
