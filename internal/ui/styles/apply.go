package styles

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ThemeConfig mirrors config.ThemeConfig to avoid circular imports.
type ThemeConfig struct {
	Preset string
	Colors map[string]string
}

// ApplyTheme applies a complete theme configuration.
// Order of application:
// 1. Start with default colors
// 2. Apply preset (if specified)
// 3. Apply individual color overrides
// 4. Rebuild all Style objects
func ApplyTheme(cfg ThemeConfig) error {
	colors := maps.Clone(DefaultPreset.Colors)

	if cfg.Preset != "" && cfg.Preset != "default" {
		preset, ok := Presets[cfg.Preset]
		if !ok {
			return fmt.Errorf("unknown theme preset: %s", cfg.Preset)
		}
		maps.Copy(colors, preset.Colors)
	}

	for key, value := range cfg.Colors {
		token := ColorToken(key)
		if !isValidToken(token) {
			return fmt.Errorf("unknown color token: %s", key)
		}
		if !IsValidHexColor(value) {
			return fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
		colors[token] = value
	}

	applyColors(colors)
	rebuildStyles()
	return nil
}

func applyColors(colors map[ColorToken]string) {
	// Same color for both modes once a theme is applied.
	set := func(token ColorToken, dst *lipgloss.AdaptiveColor) {
		if c, ok := colors[token]; ok {
			*dst = lipgloss.AdaptiveColor{Light: c, Dark: c}
		}
	}

	set(TokenTextPrimary, &TextPrimaryColor)
	set(TokenTextMuted, &TextMutedColor)
	set(TokenTextPlaceholder, &TextPlaceholderColor)

	set(TokenBorderDefault, &BorderDefaultColor)
	set(TokenBorderFocus, &BorderFocusColor)

	set(TokenStatusSuccess, &StatusSuccessColor)
	set(TokenStatusError, &StatusErrorColor)

	set(TokenButtonText, &ButtonTextColor)
	set(TokenButtonPrimaryBg, &ButtonPrimaryBgColor)
	set(TokenButtonDisabledBg, &ButtonDisabledBgColor)

	set(TokenSyntaxName, &SyntaxNameColor)
	set(TokenSyntaxComparator, &SyntaxComparatorColor)
	set(TokenSyntaxString, &SyntaxStringColor)
	set(TokenSyntaxNumber, &SyntaxNumberColor)
	set(TokenSyntaxJoin, &SyntaxJoinColor)
	set(TokenSyntaxInvalid, &SyntaxInvalidColor)
}

// rebuildStyles recreates all Style objects with updated colors.
// This is necessary because lipgloss.Style objects capture colors at creation time.
func rebuildStyles() {
	buttonBase = lipgloss.NewStyle().Padding(0, 2).Bold(true)

	ButtonStyle = buttonBase.
		Foreground(ButtonTextColor).
		Background(ButtonPrimaryBgColor)

	ButtonDisabledStyle = buttonBase.
		Foreground(TextMutedColor).
		Background(ButtonDisabledBgColor)

	ErrorSlotStyle = lipgloss.NewStyle().Foreground(StatusErrorColor)
	SuccessStyle = lipgloss.NewStyle().Foreground(StatusSuccessColor)
	PlaceholderStyle = lipgloss.NewStyle().Foreground(TextPlaceholderColor)
	HelpStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
}

func isValidToken(token ColorToken) bool {
	return slices.Contains(AllTokens(), token)
}

// IsValidHexColor reports whether s is a #RGB or #RRGGBB color.
func IsValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}
