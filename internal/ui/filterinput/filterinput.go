// Package filterinput provides an editable filter surface with live syntax
// highlighting, wrapping, and a submit button.
package filterinput

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/sieve/internal/doctree"
	"github.com/zjrosen/sieve/internal/highlight"
	"github.com/zjrosen/sieve/internal/keys"
	"github.com/zjrosen/sieve/internal/log"
	"github.com/zjrosen/sieve/internal/pubsub"
	"github.com/zjrosen/sieve/internal/surface"
)

// SubmittedMsg is emitted after every completed submit.
type SubmittedMsg struct {
	SurfaceID string
	Result    surface.SubmitResult
}

// highlightedMsg carries an off-loop highlight result back to Update.
type highlightedMsg struct {
	surfaceID string
	result    surface.Computed
}

// submitButton is the surface's submit control. It is shared by pointer so
// the surface and every copy of the model see the same state.
type submitButton struct {
	enabled bool
}

func (b *submitButton) SetEnabled(enabled bool) { b.enabled = enabled }

// Options configures a Model.
type Options struct {
	Surface     surface.Options
	Width       int
	Placeholder string
	// Async lexes in a tea.Cmd instead of inside Update.
	Async bool
}

// Model is the filter editor.
type Model struct {
	ctx     context.Context
	surface *surface.Surface
	button  *submitButton
	theme   highlight.Theme
	keys    keys.KeyMap
	help    help.Model
	logs    *log.LogListener

	focused     bool
	width       int
	placeholder string
	async       bool
	lastLog     string
}

// New creates a filter editor and runs the first highlight cycle
// synchronously.
func New(ctx context.Context, opts Options) Model {
	button := &submitButton{enabled: true}
	opts.Surface.Control = button

	m := Model{
		ctx:         ctx,
		surface:     surface.New(opts.Surface),
		button:      button,
		theme:       highlight.CurrentTheme(),
		keys:        keys.DefaultKeyMap(),
		help:        help.New(),
		logs:        log.NewListener(ctx),
		placeholder: opts.Placeholder,
		async:       opts.Async,
	}
	m.SetWidth(opts.Width)
	m.surface.ContentChanged(ctx)
	return m
}

// Init starts the debug log listener when logging is enabled.
func (m Model) Init() tea.Cmd {
	if m.logs == nil {
		return nil
	}
	return m.logs.Listen()
}

// Surface returns the underlying surface.
func (m Model) Surface() *surface.Surface { return m.surface }

// Value returns the raw text.
func (m Model) Value() string { return m.surface.Text() }

// SetValue replaces the text, puts the caret at its end, and highlights.
func (m *Model) SetValue(v string) {
	m.surface.Reset(v)
	m.surface.ContentChanged(m.ctx)
}

// Focused returns whether the input is focused.
func (m Model) Focused() bool { return m.focused }

// Focus focuses the input.
func (m *Model) Focus() { m.focused = true }

// Blur removes focus from the input.
func (m *Model) Blur() { m.focused = false }

// SetWidth sets the outer panel width.
func (m *Model) SetWidth(w int) {
	if w < minWidth {
		w = minWidth
	}
	m.width = w
	m.help.Width = w - 2
}

// Width returns the outer panel width.
func (m Model) Width() int { return m.width }

// SetPlaceholder sets the text shown while the surface is empty and blurred.
func (m *Model) SetPlaceholder(p string) { m.placeholder = p }

// SetTheme replaces the highlight theme, e.g. after the config theme changed.
func (m *Model) SetTheme(theme highlight.Theme) { m.theme = theme }

// SubmitEnabled reports whether the submit button accepts clicks.
func (m Model) SubmitEnabled() bool { return m.button.enabled }

// Update handles key, mouse, highlight, and log messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case highlightedMsg:
		if msg.surfaceID == m.surface.ID() {
			m.surface.Apply(m.ctx, msg.result)
		}
		return m, nil

	case pubsub.Event[string]:
		if msg.Type == pubsub.LoggedEvent {
			m.lastLog = msg.Payload
		}
		if m.logs == nil {
			return m, nil
		}
		return m, m.logs.Listen()

	case tea.MouseMsg:
		if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
			return m, nil
		}
		if z := zone.Get(m.submitZoneID()); z != nil && z.InBounds(msg) && m.button.enabled {
			return m, m.submit()
		}
		return m, nil

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	s := m.surface
	text := s.Text()
	pos := m.caretPos()

	switch {
	case key.Matches(msg, m.keys.LineBreak):
		if err := s.LineBreak(m.ctx, true); err != nil {
			log.ErrorErr(log.CatUI, "line break failed", err)
		}
		return m, m.contentChanged()
	case key.Matches(msg, m.keys.Submit):
		return m, m.submit()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.WordLeft):
		m.moveTo(prevWordStart(text, pos))
	case key.Matches(msg, m.keys.WordRight):
		m.moveTo(nextWordEnd(text, pos))
	case key.Matches(msg, m.keys.Left):
		m.moveTo(prevGrapheme(text, pos))
	case key.Matches(msg, m.keys.Right):
		m.moveTo(nextGrapheme(text, pos))
	case key.Matches(msg, m.keys.Home):
		m.moveTo(lineStart(text, pos))
	case key.Matches(msg, m.keys.End):
		m.moveTo(lineEnd(text, pos))

	case key.Matches(msg, m.keys.Backspace):
		return m, m.deleteRange(prevGrapheme(text, pos), pos)
	case key.Matches(msg, m.keys.Delete):
		return m, m.deleteRange(pos, nextGrapheme(text, pos))
	case key.Matches(msg, m.keys.KillToEnd):
		return m, m.deleteRange(pos, lineEnd(text, pos))
	case key.Matches(msg, m.keys.KillToStart):
		return m, m.deleteRange(lineStart(text, pos), pos)

	case msg.Type == tea.KeySpace:
		return m, m.insert(" ")
	case msg.Type == tea.KeyRunes && !msg.Alt:
		return m, m.insert(string(msg.Runes))
	}
	return m, nil
}

// caretPos returns the caret offset. A caret lost outside the tree is
// treated as the end of text.
func (m Model) caretPos() int {
	if pos, ok := m.surface.Position(); ok {
		return int(pos)
	}
	return m.surface.Tree().Len()
}

func (m Model) moveTo(pos int) {
	if caret, ok := doctree.Locate(m.surface.Tree(), doctree.Position(pos)); ok {
		m.surface.SetCaret(caret)
	}
}

func (m Model) insert(s string) tea.Cmd {
	if s == "" {
		return nil
	}
	pos := m.caretPos()
	m.surface.Edit(func(tree *doctree.Node, caret doctree.Caret) (*doctree.Node, doctree.Caret) {
		if !doctree.Contains(tree, caret) {
			caret, _ = doctree.Locate(tree, doctree.Position(pos))
		}
		next, c, ok := doctree.InsertAt(tree, caret, s)
		if !ok {
			return nil, caret
		}
		return next, c
	})
	return m.contentChanged()
}

func (m Model) deleteRange(from, to int) tea.Cmd {
	if from >= to {
		return nil
	}
	m.surface.Edit(func(tree *doctree.Node, _ doctree.Caret) (*doctree.Node, doctree.Caret) {
		return doctree.DeleteRange(tree, doctree.Position(from), doctree.Position(to))
	})
	return m.contentChanged()
}

// contentChanged runs a highlight cycle. In async mode only the pure lex
// and render step leaves the update loop; the result is applied when its
// message arrives and dropped if a newer cycle started meanwhile.
func (m Model) contentChanged() tea.Cmd {
	if !m.async {
		m.surface.ContentChanged(m.ctx)
		return nil
	}
	s := m.surface
	ctx := m.ctx
	cycle := s.Begin()
	return func() tea.Msg {
		return highlightedMsg{surfaceID: s.ID(), result: s.Compute(ctx, cycle)}
	}
}

func (m Model) submit() tea.Cmd {
	err := m.surface.LineBreak(m.ctx, false)
	if errors.Is(err, surface.ErrSubmitInProgress) {
		return nil
	}
	result, ok := m.surface.LastSubmit()
	if !ok {
		return nil
	}
	id := m.surface.ID()
	return func() tea.Msg {
		return SubmittedMsg{SurfaceID: id, Result: result}
	}
}

func (m Model) submitZoneID() string {
	return "filterinput-submit-" + m.surface.ID()
}
