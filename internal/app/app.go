// Package app contains the root application model for the interactive
// filter editor.
package app

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/sieve/internal/config"
	"github.com/zjrosen/sieve/internal/highlight"
	"github.com/zjrosen/sieve/internal/keys"
	"github.com/zjrosen/sieve/internal/log"
	"github.com/zjrosen/sieve/internal/surface"
	"github.com/zjrosen/sieve/internal/ui/filterinput"
	"github.com/zjrosen/sieve/internal/ui/styles"
	"github.com/zjrosen/sieve/internal/watcher"
)

// configChangedMsg signals that the watched config file changed on disk.
type configChangedMsg struct{}

// Options configures the application.
type Options struct {
	Input filterinput.Options
	// MaxWidth caps the editor width; 0 follows the terminal.
	MaxWidth int
	// ConfigPath, when set, is watched so theme changes apply live.
	ConfigPath string
}

// Model is the root application state.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	input    filterinput.Model
	keys     keys.KeyMap
	maxWidth int

	width  int
	height int

	result *surface.SubmitResult

	configPath    string
	watcherHandle *watcher.Watcher
	configChanges <-chan struct{}
}

// New creates the application model. A config watcher that fails to start
// is logged and skipped; the editor works without live reload.
func New(ctx context.Context, opts Options) Model {
	ctx, cancel := context.WithCancel(ctx)
	input := filterinput.New(ctx, opts.Input)
	input.Focus()

	m := Model{
		ctx:        ctx,
		cancel:     cancel,
		input:      input,
		keys:       keys.DefaultKeyMap(),
		maxWidth:   opts.MaxWidth,
		configPath: opts.ConfigPath,
	}

	if opts.ConfigPath != "" {
		w, err := watcher.New(watcher.DefaultConfig(opts.ConfigPath))
		if err == nil {
			changes, startErr := w.Start()
			if startErr == nil {
				m.watcherHandle = w
				m.configChanges = changes
			} else {
				_ = w.Stop()
				err = startErr
			}
		}
		if err != nil {
			log.ErrorErr(log.CatConfig, "config watcher unavailable", err, "path", opts.ConfigPath)
		}
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.input.Init(), m.waitForConfigChange())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		width := msg.Width
		if m.maxWidth > 0 && m.maxWidth < width {
			width = m.maxWidth
		}
		m.input.SetWidth(width)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}

	case filterinput.SubmittedMsg:
		if msg.Result.Err != nil {
			return m, nil
		}
		result := msg.Result
		m.result = &result
		return m, tea.Quit

	case configChangedMsg:
		m.reloadTheme()
		return m, m.waitForConfigChange()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	return zone.Scan(m.input.View())
}

// Result returns the submitted filter, if the user submitted one that
// parsed.
func (m Model) Result() (surface.SubmitResult, bool) {
	if m.result == nil {
		return surface.SubmitResult{}, false
	}
	return *m.result, true
}

// Input returns the editor model.
func (m Model) Input() filterinput.Model { return m.input }

// Close stops the config watcher and the log listener.
func (m *Model) Close() error {
	m.cancel()
	if m.watcherHandle != nil {
		return m.watcherHandle.Stop()
	}
	return nil
}

func (m Model) waitForConfigChange() tea.Cmd {
	if m.configChanges == nil {
		return nil
	}
	ctx, changes := m.ctx, m.configChanges
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			return configChangedMsg{}
		}
	}
}

// reloadTheme re-reads the config file and repaints with its theme. An
// invalid file keeps the current theme.
func (m *Model) reloadTheme() {
	cfg, err := config.LoadFile(m.configPath)
	if err != nil {
		log.ErrorErr(log.CatConfig, "config reload failed", err, "path", m.configPath)
		return
	}
	if err := styles.ApplyTheme(cfg.Theme.StylesTheme()); err != nil {
		log.ErrorErr(log.CatConfig, "theme reload failed", err)
		return
	}
	m.input.SetTheme(highlight.CurrentTheme())
	log.Info(log.CatConfig, "theme reloaded", "path", m.configPath)
}
