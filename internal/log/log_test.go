package log

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	ts := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	got := format(ts, LevelWarn, CatLex, "diagnostic", []any{"seq", 3, "orphan"})
	require.Equal(t, "2026-01-02T15:04:05 [WARN] [lex] diagnostic seq=3 orphan=<missing>", got)
}

func TestWrite_DisabledIsNoop(t *testing.T) {
	require.NotPanics(t, func() { Info(CatUI, "nobody listening") })
}

func TestWrite_MinLevel(t *testing.T) {
	var buf bytes.Buffer
	cleanup := InitWriter(&buf)
	defer cleanup()

	SetMinLevel(LevelWarn)
	Debug(CatSurface, "dropped")
	ErrorErr(CatSubmit, "parse failed", errors.New("boom"))

	require.NotContains(t, buf.String(), "dropped")
	require.Contains(t, buf.String(), "[ERROR] [submit] parse failed error=boom")
}

func TestNewListener_ReceivesEntries(t *testing.T) {
	var buf bytes.Buffer
	cleanup := InitWriter(&buf)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	listener := NewListener(ctx)
	require.NotNil(t, listener)

	Info(CatCache, "hit", "key", "a=1")

	msg := listener.Listen()()
	event, ok := msg.(LogEvent)
	require.True(t, ok)
	require.Contains(t, event.Payload, "[INFO] [cache] hit key=a=1")
}

func TestNewListener_NilWhenDisabled(t *testing.T) {
	require.Nil(t, NewListener(context.Background()))
}

func TestEnabled(t *testing.T) {
	t.Setenv(EnvDebug, "")
	require.False(t, Enabled(false))
	require.True(t, Enabled(true))

	t.Setenv(EnvDebug, "1")
	require.True(t, Enabled(false))
}
