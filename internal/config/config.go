// Package config loads the optional dpml.yaml project configuration file.
// Config is ambient tooling only: it changes where the CLI looks for files
// and how it renders output, never the language semantics implemented by
// internal/interp.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// DefaultOutputFormat is used when dpml.yaml omits "output" or is absent.
const DefaultOutputFormat = "text"

// Config is the shape of dpml.yaml.
type Config struct {
	// SearchPaths lists import search directories. It is parsed from
	// dpml.yaml, but no import resolution reads it.
	SearchPaths []string `yaml:"search_paths"`

	// Output is the default output format for `dpml run` when --format
	// isn't given: "text" or "json".
	Output string `yaml:"output"`

	// MaxImportDepth is parsed from dpml.yaml, but the interpreter's import
	// depth limit stays at interp.DefaultMaxImportDepth regardless.
	MaxImportDepth int `yaml:"max_import_depth"`
}

// Default returns the configuration used when no dpml.yaml is found.
func Default() Config {
	return Config{Output: DefaultOutputFormat}
}

// Load reads and parses a dpml.yaml file at path. A missing file is not an
// error: it yields Default() so the CLI can run without any project
// configuration at all.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals dpml.yaml content, filling in defaults for omitted fields.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing dpml.yaml: %w", err)
	}
	if cfg.Output == "" {
		cfg.Output = DefaultOutputFormat
	}
	return cfg, nil
}
