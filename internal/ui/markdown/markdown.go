// Package markdown renders markdown for the terminal.
package markdown

import (
	"github.com/charmbracelet/glamour"
)

// noMarginStyle is a JSON style that removes document margins.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Style names accepted by New.
const (
	StyleDark  = "dark"
	StyleLight = "light"
	// StyleNoTTY renders without colors or decorations.
	StyleNoTTY = "notty"
)

// Renderer wraps glamour with sieve's margins and wrapping.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// New creates a renderer wrapping at width. An empty style means dark.
// A named style is used instead of glamour's auto style so no terminal
// query leaks into the input stream.
func New(width int, style string) (*Renderer, error) {
	if style == "" {
		style = StyleDark
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{renderer: r, width: width}, nil
}

// StyleFor picks the style matching the terminal background.
func StyleFor(darkBackground bool) string {
	if darkBackground {
		return StyleDark
	}
	return StyleLight
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Render transforms markdown to styled terminal output.
func (r *Renderer) Render(markdown string) (string, error) {
	return r.renderer.Render(markdown)
}
