package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMarshal_RoundTrip(t *testing.T) {
	data, err := Marshal(Defaults())
	require.NoError(t, err)
	require.Contains(t, string(data), "lex_ttl: 5m0s")

	var back Config
	require.NoError(t, yaml.Unmarshal(data, &back))
	require.Equal(t, Defaults().Editor, back.Editor)
	require.Equal(t, Defaults().Cache, back.Cache)
}

func TestSetValue_PreservesComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	require.NoError(t, SetValue(path, "editor.width", "80"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "width: 80")
	require.Contains(t, string(data), "# Lex result cache")

	cfg, err := loadConfigFromYAML(t, string(data))
	require.NoError(t, err)
	require.Equal(t, 80, cfg.Editor.Width)
}

func TestSetValue_CreatesSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new", "config.yaml")

	require.NoError(t, SetValue(path, "tracing.exporter", "stdout"))
	require.NoError(t, SetValue(path, "tracing.enabled", "true"))

	cfg, err := loadConfigFromYAML(t, readFile(t, path))
	require.NoError(t, err)
	require.True(t, cfg.Tracing.Enabled)
	require.Equal(t, "stdout", cfg.Tracing.Exporter)
}

func TestSetValue_Errors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	require.ErrorContains(t, SetValue(path, "editor", "x"), "is a section")
	require.ErrorContains(t, SetValue(path, "editor.width.deep", "x"), "is not a section")
	require.ErrorContains(t, SetValue(path, "editor..width", "x"), "invalid key")
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestSetValue_CommentOnlySection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	require.NoError(t, SetValue(path, "theme.preset", "high-contrast"))

	cfg, err := loadConfigFromYAML(t, readFile(t, path))
	require.NoError(t, err)
	require.Equal(t, "high-contrast", cfg.Theme.Preset)
}
