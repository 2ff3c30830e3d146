// Package config loads the optional .loxirc.yaml that overrides default
// CLI behaviour.
package config

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// Config holds the overridable defaults. The zero value matches the
// interpreter's built-in defaults.
type Config struct {
	Trace   bool `yaml:"trace"`
	DumpAST bool `yaml:"dumpAST"`
	MaxArgs int  `yaml:"maxArgs"`
}

// defaultMaxArgs mirrors the parser's built-in 255 cap.
const defaultMaxArgs = 255

// Load reads path if it exists; a missing file is not an error and
// yields the defaults (Trace and DumpAST off, MaxArgs 255). An explicit path that exists but fails
// to parse is always an error.
func Load(path string) (Config, error) {
	cfg := Config{MaxArgs: defaultMaxArgs}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.MaxArgs == 0 {
		cfg.MaxArgs = defaultMaxArgs
	}
	return cfg, nil
}

// DefaultPath returns the conventional lookup order: ./.loxirc.yaml, then
// $HOME/.loxirc.yaml. Only ./.loxirc.yaml is checked for existence; the
// $HOME path is returned without checking.
func DefaultPath() string {
	if _, err := os.Stat(".loxirc.yaml"); err == nil {
		return ".loxirc.yaml"
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".loxirc.yaml")
	}
	return ".loxirc.yaml"
}
