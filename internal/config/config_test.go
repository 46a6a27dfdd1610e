package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gomend/internal/docstring"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gomend.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
project:
  root: ./src
  excludes:
    - build
output:
  style: google
  rendering: expanded
cache:
  path: .cache/gomend.db
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "./src", cfg.Project.Root)
	assert.Equal(t, []string{"build"}, cfg.Project.Excludes)
	assert.Equal(t, ".cache/gomend.db", cfg.Cache.Path)

	style, err := cfg.OutputStyle()
	require.NoError(t, err)
	assert.Equal(t, docstring.StyleGoogle, style)

	rendering, err := cfg.RenderingStyle()
	require.NoError(t, err)
	assert.Equal(t, docstring.RenderingExpanded, rendering)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gomend.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  style: google\n"), 0o644))

	t.Setenv("GOMEND_OUTPUT_STYLE", "numpydoc")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	style, err := cfg.OutputStyle()
	require.NoError(t, err)
	assert.Equal(t, docstring.StyleNumpydoc, style)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	style, err := cfg.OutputStyle()
	require.NoError(t, err)
	assert.Equal(t, docstring.StyleAuto, style)

	rendering, err := cfg.RenderingStyle()
	require.NoError(t, err)
	assert.Equal(t, docstring.RenderingCompact, rendering)
}

func TestParseStyleErrors(t *testing.T) {
	_, err := ParseStyle("markdown")
	assert.Error(t, err)

	cfg := Default()
	cfg.Output.Rendering = "fancy"
	_, err = cfg.RenderingStyle()
	assert.Error(t, err)
}
