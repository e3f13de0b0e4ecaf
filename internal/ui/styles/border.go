package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Border characters (rounded)
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// RenderPanel frames pre-wrapped content with a rounded border and a title
// embedded in the top edge: ╭─ Title ─────╮. Lines wider than the inner
// width are left as is; callers wrap before framing.
func RenderPanel(content, title string, width int, focused bool) string {
	var borderColor lipgloss.TerminalColor = BorderDefaultColor
	if focused {
		borderColor = BorderFocusColor
	}
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Foreground(TextPrimaryColor).Bold(focused)

	innerWidth := max(width-2, 1)

	var sb strings.Builder
	sb.WriteString(topBorder(title, innerWidth, borderStyle, titleStyle))
	for _, line := range strings.Split(content, "\n") {
		if pad := innerWidth - lipgloss.Width(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		sb.WriteString("\n")
		sb.WriteString(borderStyle.Render(borderVertical) + line + borderStyle.Render(borderVertical))
	}
	sb.WriteString("\n")
	sb.WriteString(borderStyle.Render(borderBottomLeft + strings.Repeat(borderHorizontal, innerWidth) + borderBottomRight))
	return sb.String()
}

// topBorder builds ╭─ Title ───╮, dropping the title when it does not fit.
func topBorder(title string, innerWidth int, borderStyle, titleStyle lipgloss.Style) string {
	// "─ " + title + " ─" needs four columns besides the title.
	if title == "" || innerWidth < lipgloss.Width(title)+4 {
		return borderStyle.Render(borderTopLeft + strings.Repeat(borderHorizontal, innerWidth) + borderTopRight)
	}
	trailing := innerWidth - 3 - lipgloss.Width(title)
	return borderStyle.Render(borderTopLeft+borderHorizontal+" ") +
		titleStyle.Render(title) +
		borderStyle.Render(" "+strings.Repeat(borderHorizontal, trailing)+borderTopRight)
}
