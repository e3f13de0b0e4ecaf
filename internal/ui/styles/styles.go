// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#4C4F69", Dark: "#CCCCCC"} // Main/primary text
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#9CA0B0", Dark: "#696969"} // Hints, help text, footers
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#777777"} // Input placeholders

	// Semantic color names - Border
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Unfocused borders
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"} // Focused editor

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Button colors
	ButtonTextColor       = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	ButtonPrimaryBgColor  = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#1A5276"}
	ButtonDisabledBgColor = lipgloss.AdaptiveColor{Light: "#2D2D2D", Dark: "#2D2D2D"}

	// Filter syntax highlighting colors (Catppuccin)
	SyntaxNameColor       = lipgloss.AdaptiveColor{Light: "#179299", Dark: "#94E2D5"} // teal
	SyntaxComparatorColor = lipgloss.AdaptiveColor{Light: "#D20F39", Dark: "#F38BA8"} // red
	SyntaxStringColor     = lipgloss.AdaptiveColor{Light: "#DF8E1D", Dark: "#F9E2AF"} // yellow
	SyntaxNumberColor     = lipgloss.AdaptiveColor{Light: "#FE640B", Dark: "#FAB387"} // peach
	SyntaxJoinColor       = lipgloss.AdaptiveColor{Light: "#8839EF", Dark: "#CBA6F7"} // mauve
	SyntaxInvalidColor    = lipgloss.AdaptiveColor{Light: "#D20F39", Dark: "#F38BA8"} // red, underlined

	buttonBase = lipgloss.NewStyle().Padding(0, 2).Bold(true)

	ButtonStyle = buttonBase.
			Foreground(ButtonTextColor).
			Background(ButtonPrimaryBgColor)

	ButtonDisabledStyle = buttonBase.
				Foreground(TextMutedColor).
				Background(ButtonDisabledBgColor)

	// ErrorSlotStyle renders lexer diagnostics below the editor.
	ErrorSlotStyle = lipgloss.NewStyle().Foreground(StatusErrorColor)

	SuccessStyle     = lipgloss.NewStyle().Foreground(StatusSuccessColor)
	PlaceholderStyle = lipgloss.NewStyle().Foreground(TextPlaceholderColor)
	HelpStyle        = lipgloss.NewStyle().Foreground(TextMutedColor)
)
