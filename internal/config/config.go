// Package config provides configuration types, defaults, and validation for
// sieve.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/sieve/internal/log"
	"github.com/zjrosen/sieve/internal/tracing"
	"github.com/zjrosen/sieve/internal/ui/styles"
)

// Config holds all configuration options for sieve.
type Config struct {
	Editor    EditorConfig    `mapstructure:"editor" yaml:"editor"`
	Highlight HighlightConfig `mapstructure:"highlight" yaml:"highlight"`
	Theme     ThemeConfig     `mapstructure:"theme" yaml:"theme"`
	Cache     CacheConfig     `mapstructure:"cache" yaml:"cache"`
	Tracing   tracing.Config  `mapstructure:"tracing" yaml:"tracing"`
}

// EditorConfig configures the editable surface.
type EditorConfig struct {
	Width       int    `mapstructure:"width" yaml:"width"`
	Placeholder string `mapstructure:"placeholder" yaml:"placeholder"`
	// Async lexes off the update loop and drops stale results.
	Async bool `mapstructure:"async" yaml:"async"`
	// TrailingBreakWorkaround inserts two line breaks at the end of content
	// for hosts that swallow a single trailing break.
	TrailingBreakWorkaround bool `mapstructure:"trailing_break_workaround" yaml:"trailing_break_workaround"`
	// StrictTokens panics on a lexer token contract violation instead of
	// degrading to the previous render.
	StrictTokens bool `mapstructure:"strict_tokens" yaml:"strict_tokens"`
}

// HighlightConfig configures token-to-class mapping.
type HighlightConfig struct {
	InvalidClass bool `mapstructure:"invalid_class" yaml:"invalid_class"`
}

// ThemeConfig holds theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base: "default",
	// "catppuccin-latte", "high-contrast".
	Preset string `mapstructure:"preset" yaml:"preset,omitempty"`

	// Colors overrides individual color tokens. Both nested YAML and quoted
	// dot notation are accepted:
	//   colors:
	//     syntax:
	//       name: "#94E2D5"
	//     "status.error": "#FF0000"
	Colors map[string]any `mapstructure:"colors" yaml:"colors,omitempty"`
}

// CacheConfig configures the lex result cache.
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled" yaml:"enabled"`
	LexTTL          time.Duration `mapstructure:"lex_ttl" yaml:"lex_ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval" yaml:"cleanup_interval"`
}

// FlattenedColors returns Colors flattened to dot-notation keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			converted := make(map[string]any, len(val))
			for mk, mv := range val {
				if s, ok := mk.(string); ok {
					converted[s] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// StylesTheme converts the theme section for styles.ApplyTheme.
func (t ThemeConfig) StylesTheme() styles.ThemeConfig {
	return styles.ThemeConfig{Preset: t.Preset, Colors: t.FlattenedColors()}
}

// IsCustomized reports whether the theme section changes anything.
func (t ThemeConfig) IsCustomized() bool {
	return (t.Preset != "" && t.Preset != "default") || len(t.Colors) > 0
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Editor: EditorConfig{
			Width:       60,
			Placeholder: `status = "open" & priority < 2`,
			Async:       true,
		},
		Highlight: HighlightConfig{InvalidClass: true},
		Cache: CacheConfig{
			Enabled:         true,
			LexTTL:          5 * time.Minute,
			CleanupInterval: 10 * time.Minute,
		},
		Tracing: tracing.Config{
			Enabled:      false,
			Exporter:     tracing.ExporterFile,
			FilePath:     DefaultTracesFilePath(),
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
			ServiceName:  "sieve",
		},
	}
}

// DefaultTracesFilePath returns ~/.config/sieve/traces/traces.jsonl, or ""
// when the home directory is unknown.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "sieve", "traces", "traces.jsonl")
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := ValidateEditor(c.Editor); err != nil {
		return err
	}
	if err := ValidateTheme(c.Theme); err != nil {
		return err
	}
	if err := ValidateCache(c.Cache); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// ValidateEditor checks editor configuration.
func ValidateEditor(e EditorConfig) error {
	if e.Width != 0 && e.Width < 10 {
		return fmt.Errorf("editor.width must be at least 10, got %d", e.Width)
	}
	return nil
}

// ValidateTheme checks the preset name and every color override.
func ValidateTheme(t ThemeConfig) error {
	if t.Preset != "" && t.Preset != "default" {
		if _, ok := styles.Presets[t.Preset]; !ok {
			return fmt.Errorf("theme.preset %q is not a known preset", t.Preset)
		}
	}
	valid := make(map[styles.ColorToken]bool)
	for _, tok := range styles.AllTokens() {
		valid[tok] = true
	}
	for key, value := range t.FlattenedColors() {
		if !valid[styles.ColorToken(key)] {
			return fmt.Errorf("theme.colors: unknown color token %q", key)
		}
		if !styles.IsValidHexColor(value) {
			return fmt.Errorf("theme.colors.%s: invalid hex color %q", key, value)
		}
	}
	return nil
}

// ValidateCache checks cache durations.
func ValidateCache(c CacheConfig) error {
	if c.LexTTL < 0 {
		return fmt.Errorf("cache.lex_ttl must not be negative, got %s", c.LexTTL)
	}
	if c.CleanupInterval < 0 {
		return fmt.Errorf("cache.cleanup_interval must not be negative, got %s", c.CleanupInterval)
	}
	return nil
}

// ValidateTracing checks tracing configuration. Path requirements apply only
// when tracing is enabled.
func ValidateTracing(t tracing.Config) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}
	switch t.Exporter {
	case "", tracing.ExporterNone, tracing.ExporterFile, tracing.ExporterStdout, tracing.ExporterOTLP:
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", t.Exporter)
	}
	if t.Enabled {
		if t.Exporter == tracing.ExporterFile && t.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if t.Exporter == tracing.ExporterOTLP && t.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}
	return nil
}

// DefaultConfigTemplate returns the default config as YAML with comments.
func DefaultConfigTemplate() string {
	return `# Sieve Configuration

# Editor settings
editor:
  width: 60                          # Total editor width including the border
  placeholder: 'status = "open" & priority < 2'
  async: true                        # Lex off the update loop, drop stale results
  trailing_break_workaround: false   # Insert two breaks at end of content
  strict_tokens: false               # Panic on lexer token contract violations

# Highlighting
highlight:
  invalid_class: true                # Style unlexable input as invalid

# Theme configuration
theme:
  # preset: catppuccin-latte
  #
  # Available presets:
  #   default           - Catppuccin-based dark theme
  #   catppuccin-latte  - Light theme
  #   high-contrast     - High contrast for accessibility
  #
  # Override specific colors (works with or without preset):
  # colors:
  #   syntax.name: "#94E2D5"
  #   syntax.invalid: "#FF0000"
  #   status.error: "#FF0000"

# Lex result cache
cache:
  enabled: true
  lex_ttl: 5m
  cleanup_interval: 10m

# Filter syntax:
#   Comparisons: name = "text" | name != 3 | name < 1.5 | name >= -2
#   Joins: | (or) & (and) ^ (xor); precedence or < and < xor
#   Grouping: ( ... )
#   Run 'sieve syntax' for the full reference.

# Tracing (OpenTelemetry)
tracing:
  enabled: false
  exporter: file                     # none, file, stdout, otlp
  # file_path: ~/.config/sieve/traces/traces.jsonl
  otlp_endpoint: localhost:4317
  sample_rate: 1.0
`
}

// WriteDefaultConfig creates a config file at configPath with the default
// template, creating the parent directory if needed.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
