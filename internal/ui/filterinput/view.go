package filterinput

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/sieve/internal/ui/styles"
)

const (
	minWidth    = 10
	panelTitle  = "Filter"
	submitLabel = "Submit"
)

// View renders the framed editor, the error slot, the submit button row,
// and the help footer.
func (m Model) View() string {
	inner := m.width - 2

	var sections []string
	sections = append(sections, m.renderText(inner))

	if slot := m.surface.ErrorSlot(); slot.Visible {
		sections = append(sections, ansi.Wrap(styles.ErrorSlotStyle.Render(slot.Text), inner, ""))
	}

	sections = append(sections, m.renderButtonRow(inner))

	if m.lastLog != "" {
		sections = append(sections, styles.HelpStyle.Render(ansi.Truncate(m.lastLog, inner, "…")))
	}

	panel := styles.RenderPanel(strings.Join(sections, "\n"), panelTitle, m.width, m.focused)
	if !m.focused {
		return panel
	}
	return panel + "\n" + m.help.View(m.keys)
}

// Height returns the number of lines taken by the wrapped text.
func (m Model) Height() int {
	return lipgloss.Height(m.renderText(m.width - 2))
}

// renderText paints the tree, shows the caret when focused, and wraps at
// word boundaries. Line breaks in the text are kept.
func (m Model) renderText(width int) string {
	tree := m.surface.Tree()
	if tree.Len() == 0 && !m.focused {
		if m.placeholder == "" {
			return ""
		}
		return ansi.Truncate(styles.PlaceholderStyle.Render(m.placeholder), width, "…")
	}

	var painted string
	if m.focused {
		painted = m.theme.PaintWithCaret(tree, m.surface.Caret())
	} else {
		painted = m.theme.Paint(tree)
	}
	return ansi.Wrap(painted, width, "")
}

func (m Model) renderButtonRow(width int) string {
	style := styles.ButtonStyle
	if !m.button.enabled {
		style = styles.ButtonDisabledStyle
	}
	button := zone.Mark(m.submitZoneID(), style.Render(submitLabel))

	status := m.renderStatus(width - lipgloss.Width(button) - 1)
	if status == "" {
		return button
	}
	return button + " " + status
}

func (m Model) renderStatus(width int) string {
	if width <= 0 {
		return ""
	}
	result, ok := m.surface.LastSubmit()
	if !ok {
		return ""
	}
	if result.Err != nil {
		return styles.ErrorSlotStyle.Render(ansi.Truncate(result.Err.Error(), width, "…"))
	}
	if result.Search == nil {
		return ""
	}
	return styles.SuccessStyle.Render(ansi.Truncate("✓ "+result.Search.String(), width, "…"))
}
