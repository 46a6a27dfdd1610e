package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"gomend/internal/docstring"
)

type Config struct {
	Project struct {
		Root     string   `yaml:"root"`
		Excludes []string `yaml:"excludes"`
	} `yaml:"project"`
	Output struct {
		Style     string `yaml:"style"`     // rest, google, numpydoc, epydoc, auto
		Rendering string `yaml:"rendering"` // compact, clean, expanded
		Indent    string `yaml:"indent"`
	} `yaml:"output"`
	Cache struct {
		Path string `yaml:"path"`
	} `yaml:"cache"`
}

func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	// 2. Load YAML config
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return nil, err
	}

	// 3. Override with Environment Variables if present
	if style := os.Getenv("GOMEND_OUTPUT_STYLE"); style != "" {
		cfg.Output.Style = style
	}
	if rendering := os.Getenv("GOMEND_RENDERING"); rendering != "" {
		cfg.Output.Rendering = rendering
	}
	if cachePath := os.Getenv("GOMEND_CACHE_PATH"); cachePath != "" {
		cfg.Cache.Path = cachePath
	}

	return &cfg, nil
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.Project.Root = "."
	cfg.Output.Style = "auto"
	cfg.Output.Rendering = "compact"
	cfg.Cache.Path = "gomend.db"
	return cfg
}

// OutputStyle resolves the configured style name.
func (c *Config) OutputStyle() (docstring.Style, error) {
	return parseStyle(c.Output.Style)
}

// RenderingStyle resolves the configured rendering name.
func (c *Config) RenderingStyle() (docstring.RenderingStyle, error) {
	switch c.Output.Rendering {
	case "", "compact":
		return docstring.RenderingCompact, nil
	case "clean":
		return docstring.RenderingClean, nil
	case "expanded":
		return docstring.RenderingExpanded, nil
	}
	return docstring.RenderingCompact, fmt.Errorf("unknown rendering style %q", c.Output.Rendering)
}

func parseStyle(name string) (docstring.Style, error) {
	switch name {
	case "", "auto":
		return docstring.StyleAuto, nil
	case "rest":
		return docstring.StyleRest, nil
	case "google":
		return docstring.StyleGoogle, nil
	case "numpydoc", "numpy":
		return docstring.StyleNumpydoc, nil
	case "epydoc":
		return docstring.StyleEpydoc, nil
	}
	return docstring.StyleUnset, fmt.Errorf("unknown docstring style %q", name)
}

// ParseStyle resolves a style name from the CLI.
func ParseStyle(name string) (docstring.Style, error) {
	return parseStyle(name)
}
