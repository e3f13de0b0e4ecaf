package styles

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens users can override in their config.
const (
	// Text hierarchy
	TokenTextPrimary     ColorToken = "text.primary"
	TokenTextMuted       ColorToken = "text.muted"
	TokenTextPlaceholder ColorToken = "text.placeholder"

	// Borders
	TokenBorderDefault ColorToken = "border.default"
	TokenBorderFocus   ColorToken = "border.focus"

	// Status indicators
	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusError   ColorToken = "status.error"

	// Buttons
	TokenButtonText       ColorToken = "button.text"
	TokenButtonPrimaryBg  ColorToken = "button.primary.bg"
	TokenButtonDisabledBg ColorToken = "button.disabled.bg"

	// Syntax highlighting, one per run class
	TokenSyntaxName       ColorToken = "syntax.name"
	TokenSyntaxComparator ColorToken = "syntax.comparator"
	TokenSyntaxString     ColorToken = "syntax.string"
	TokenSyntaxNumber     ColorToken = "syntax.number"
	TokenSyntaxJoin       ColorToken = "syntax.join"
	TokenSyntaxInvalid    ColorToken = "syntax.invalid"
)

// AllTokens returns all valid color tokens for validation.
func AllTokens() []ColorToken {
	return []ColorToken{
		TokenTextPrimary,
		TokenTextMuted,
		TokenTextPlaceholder,
		TokenBorderDefault,
		TokenBorderFocus,
		TokenStatusSuccess,
		TokenStatusError,
		TokenButtonText,
		TokenButtonPrimaryBg,
		TokenButtonDisabledBg,
		TokenSyntaxName,
		TokenSyntaxComparator,
		TokenSyntaxString,
		TokenSyntaxNumber,
		TokenSyntaxJoin,
		TokenSyntaxInvalid,
	}
}
