package highlight

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/sieve/internal/doctree"
	"github.com/zjrosen/sieve/internal/ui/styles"
)

// Theme holds one lipgloss style per run class.
type Theme struct {
	Name       lipgloss.Style
	Comparator lipgloss.Style
	String     lipgloss.Style
	Number     lipgloss.Style
	Join       lipgloss.Style
	Invalid    lipgloss.Style
	Plain      lipgloss.Style
}

// CurrentTheme builds a theme from the colors currently set in the styles
// package, so it reflects any applied config theme.
func CurrentTheme() Theme {
	// Tabs are part of the raw text and must survive painting.
	base := lipgloss.NewStyle().TabWidth(lipgloss.NoTabConversion)
	return Theme{
		Name:       base.Foreground(styles.SyntaxNameColor),
		Comparator: base.Foreground(styles.SyntaxComparatorColor),
		String:     base.Foreground(styles.SyntaxStringColor),
		Number:     base.Foreground(styles.SyntaxNumberColor),
		Join:       base.Foreground(styles.SyntaxJoinColor).Bold(true),
		Invalid:    base.Foreground(styles.SyntaxInvalidColor).Underline(true),
		Plain:      base,
	}
}

// Style returns the style for a run class.
func (t Theme) Style(class string) lipgloss.Style {
	switch class {
	case ClassName:
		return t.Name
	case ClassComparator:
		return t.Comparator
	case ClassString:
		return t.String
	case ClassNumber:
		return t.Number
	case ClassJoin:
		return t.Join
	case ClassInvalid:
		return t.Invalid
	default:
		return t.Plain
	}
}

// Paint renders the tree as ANSI-styled text.
func (t Theme) Paint(tree *doctree.Node) string {
	var sb strings.Builder
	for _, run := range tree.Runs() {
		writeStyled(&sb, t.Style(run.Class), run.RunText())
	}
	return sb.String()
}

// PaintWithCaret renders the tree and shows the caret as a reverse-video
// cell over the grapheme after it, or a trailing block at the end of text.
// A caret not inside tree is not drawn.
func (t Theme) PaintWithCaret(tree *doctree.Node, caret doctree.Caret) string {
	pos, ok := doctree.Capture(tree, caret)
	if !ok || caret.IsZero() {
		return t.Paint(tree)
	}

	var sb strings.Builder
	offset := 0
	drawn := false
	for _, run := range tree.Runs() {
		text := run.RunText()
		style := t.Style(run.Class)
		if p := int(pos) - offset; !drawn && p >= 0 && p < len(text) {
			g, _, _, _ := uniseg.FirstGraphemeClusterInString(text[p:], -1)
			writeStyled(&sb, style, text[:p])
			writeCaret(&sb, style, g)
			writeStyled(&sb, style, text[p+len(g):])
			drawn = true
		} else {
			writeStyled(&sb, style, text)
		}
		offset += len(text)
	}
	if !drawn {
		sb.WriteString(t.Plain.Reverse(true).Render(" "))
	}
	return sb.String()
}

// writeStyled renders text line by line so styling never pads or reflows
// multi-line runs.
func writeStyled(sb *strings.Builder, style lipgloss.Style, text string) {
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			sb.WriteByte('\n')
		}
		if line != "" {
			sb.WriteString(style.Render(line))
		}
	}
}

// writeCaret draws the caret over grapheme g. A line break under the caret
// is drawn as a reverse-video space before the break.
func writeCaret(sb *strings.Builder, style lipgloss.Style, g string) {
	caretStyle := style.Reverse(true)
	if strings.HasPrefix(g, "\n") || strings.HasPrefix(g, "\r") {
		sb.WriteString(caretStyle.Render(" "))
		sb.WriteString(g)
		return
	}
	sb.WriteString(caretStyle.Render(g))
}
