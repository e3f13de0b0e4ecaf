package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// RegisterDefaults seeds v with every default so keys missing from the
// config file still unmarshal to their default values.
func RegisterDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("editor.width", d.Editor.Width)
	v.SetDefault("editor.placeholder", d.Editor.Placeholder)
	v.SetDefault("editor.async", d.Editor.Async)
	v.SetDefault("editor.trailing_break_workaround", d.Editor.TrailingBreakWorkaround)
	v.SetDefault("editor.strict_tokens", d.Editor.StrictTokens)
	v.SetDefault("highlight.invalid_class", d.Highlight.InvalidClass)
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.lex_ttl", d.Cache.LexTTL)
	v.SetDefault("cache.cleanup_interval", d.Cache.CleanupInterval)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)
}

// Load unmarshals and validates the configuration held by v. Call
// RegisterDefaults and read the config file first.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadFile reads and validates the config file at path with defaults
// applied. Used to reload after the file changes.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	RegisterDefaults(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Load(v)
}
