package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/sieve/internal/surface"
	"github.com/zjrosen/sieve/internal/ui/filterinput"
	"github.com/zjrosen/sieve/internal/ui/styles"
)

func init() {
	lipgloss.SetColorProfile(termenv.ANSI256)
	zone.NewGlobal()
}

// createTestModel creates a Model without a config watcher.
func createTestModel(t *testing.T, text string) Model {
	t.Helper()
	m := New(context.Background(), Options{
		Input: filterinput.Options{Surface: surface.Options{ID: "app", Text: text}, Width: 40},
	})
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestApp_InputFocused(t *testing.T) {
	m := createTestModel(t, "")
	assert.True(t, m.Input().Focused())
}

func TestApp_WindowSizeMsg(t *testing.T) {
	m := New(context.Background(), Options{MaxWidth: 60})
	defer func() { _ = m.Close() }()

	newModel, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})
	m = newModel.(Model)
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 50, m.height)
	assert.Equal(t, 60, m.Input().Width(), "width capped by MaxWidth")

	newModel, _ = m.Update(tea.WindowSizeMsg{Width: 30, Height: 10})
	m = newModel.(Model)
	assert.Equal(t, 30, m.Input().Width())
}

func TestApp_QuitKey(t *testing.T) {
	m := createTestModel(t, "a = 1")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, isQuit(cmd))

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, isQuit(cmd))
}

func TestApp_SubmitQuitsWithResult(t *testing.T) {
	m := createTestModel(t, "a = 1 & b = 2")

	newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = newModel.(Model)
	require.NotNil(t, cmd)

	newModel, cmd = m.Update(cmd())
	m = newModel.(Model)
	require.True(t, isQuit(cmd))

	result, ok := m.Result()
	require.True(t, ok)
	require.Equal(t, "a = 1 & b = 2", result.Search.String())
}

func TestApp_FailedSubmitKeepsEditing(t *testing.T) {
	m := createTestModel(t, "a =")

	newModel, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = newModel.(Model)
	newModel, cmd = m.Update(cmd())
	m = newModel.(Model)

	assert.False(t, isQuit(cmd))
	_, ok := m.Result()
	assert.False(t, ok)
}

func TestApp_TypingReachesInput(t *testing.T) {
	m := createTestModel(t, "")
	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	m = newModel.(Model)
	assert.Equal(t, "x", m.Input().Value())
}

func TestApp_ViewScansZones(t *testing.T) {
	m := createTestModel(t, "a = 1")
	view := m.View()
	assert.Contains(t, view, "Submit")
	assert.NotContains(t, view, "\x1b[1000z", "zone markers must be stripped")
}

func TestApp_ConfigChangeReloadsTheme(t *testing.T) {
	t.Cleanup(func() { _ = styles.ApplyTheme(styles.ThemeConfig{}) })

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme:\n  preset: default\n"), 0o644))

	m := New(context.Background(), Options{
		Input:      filterinput.Options{Width: 40},
		ConfigPath: path,
	})
	defer func() { _ = m.Close() }()
	require.NotNil(t, m.configChanges)

	wait := m.waitForConfigChange()
	require.NotNil(t, wait)
	got := make(chan tea.Msg, 1)
	go func() { got <- wait() }()

	require.NoError(t, os.WriteFile(path, []byte("theme:\n  preset: high-contrast\n"), 0o644))

	var msg tea.Msg
	select {
	case msg = <-got:
	case <-time.After(3 * time.Second):
		t.Fatal("no config change signal")
	}
	require.IsType(t, configChangedMsg{}, msg)

	_, cmd := m.Update(msg)
	require.NotNil(t, cmd, "expected to keep waiting for changes")
	require.Equal(t, styles.Presets["high-contrast"].Colors[styles.TokenSyntaxName], styles.SyntaxNameColor.Dark)
}

func TestApp_InvalidConfigReloadKeepsTheme(t *testing.T) {
	t.Cleanup(func() { _ = styles.ApplyTheme(styles.ThemeConfig{}) })
	require.NoError(t, styles.ApplyTheme(styles.ThemeConfig{}))
	before := styles.SyntaxNameColor

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme:\n  preset: nope\n"), 0o644))

	m := Model{configPath: path}
	m.reloadTheme()
	require.Equal(t, before, styles.SyntaxNameColor)
}
