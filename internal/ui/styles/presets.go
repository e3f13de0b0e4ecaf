package styles

// Preset represents a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default":          DefaultPreset,
	"catppuccin-latte": CatppuccinLattePreset,
	"high-contrast":    HighContrastPreset,
}

// DefaultPreset holds the Dark values of the AdaptiveColor definitions in
// styles.go.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default sieve theme (Catppuccin Mocha syntax colors)",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#CCCCCC",
		TokenTextMuted:       "#696969",
		TokenTextPlaceholder: "#777777",

		TokenBorderDefault: "#696969",
		TokenBorderFocus:   "#89B4FA",

		TokenStatusSuccess: "#73F59F",
		TokenStatusError:   "#FF8787",

		TokenButtonText:       "#FFFFFF",
		TokenButtonPrimaryBg:  "#1A5276",
		TokenButtonDisabledBg: "#2D2D2D",

		TokenSyntaxName:       "#94E2D5",
		TokenSyntaxComparator: "#F38BA8",
		TokenSyntaxString:     "#F9E2AF",
		TokenSyntaxNumber:     "#FAB387",
		TokenSyntaxJoin:       "#CBA6F7",
		TokenSyntaxInvalid:    "#F38BA8",
	},
}

// CatppuccinLattePreset is the light Catppuccin flavor.
var CatppuccinLattePreset = Preset{
	Name:        "catppuccin-latte",
	Description: "Warm, cozy light theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#4C4F69",
		TokenTextMuted:       "#9CA0B0",
		TokenTextPlaceholder: "#8C8FA1",

		TokenBorderDefault: "#BCC0CC",
		TokenBorderFocus:   "#1E66F5",

		TokenStatusSuccess: "#40A02B",
		TokenStatusError:   "#D20F39",

		TokenButtonText:       "#EFF1F5",
		TokenButtonPrimaryBg:  "#1E66F5",
		TokenButtonDisabledBg: "#CCD0DA",

		TokenSyntaxName:       "#179299",
		TokenSyntaxComparator: "#D20F39",
		TokenSyntaxString:     "#DF8E1D",
		TokenSyntaxNumber:     "#FE640B",
		TokenSyntaxJoin:       "#8839EF",
		TokenSyntaxInvalid:    "#D20F39",
	},
}

// HighContrastPreset maximizes readability.
var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "Maximum contrast for accessibility",
	Colors: map[ColorToken]string{
		TokenTextPrimary:     "#FFFFFF",
		TokenTextMuted:       "#C0C0C0",
		TokenTextPlaceholder: "#C0C0C0",

		TokenBorderDefault: "#FFFFFF",
		TokenBorderFocus:   "#00FFFF",

		TokenStatusSuccess: "#00FF00",
		TokenStatusError:   "#FF0000",

		TokenButtonText:       "#000000",
		TokenButtonPrimaryBg:  "#00FFFF",
		TokenButtonDisabledBg: "#808080",

		TokenSyntaxName:       "#00FFFF",
		TokenSyntaxComparator: "#FF00FF",
		TokenSyntaxString:     "#FFFF00",
		TokenSyntaxNumber:     "#00FF00",
		TokenSyntaxJoin:       "#FFFFFF",
		TokenSyntaxInvalid:    "#FF0000",
	},
}
