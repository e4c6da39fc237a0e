// Package project loads pl0.toml, the optional per-project
// configuration file.
package project

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the configuration file looked up next to the sources.
const ManifestName = "pl0.toml"

// Config is the pl0.toml contents. The zero value is a valid default
// configuration.
type Config struct {
	Build struct {
		// Output is the object file path `pl0 build` writes. Empty means
		// the source path with the .pmo extension.
		Output string `toml:"output"`
		// Trace enables instruction tracing in `pl0 run`.
		Trace bool `toml:"trace"`
	} `toml:"build"`
	Diagnostics struct {
		// Max caps accumulated diagnostics per compilation. Zero keeps
		// the built-in limit.
		Max int `toml:"max"`
	} `toml:"diagnostics"`
}

// Load parses the configuration file at path.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ForDir loads dir's manifest, or returns the default configuration if
// dir has none.
func ForDir(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, ManifestName))
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}

// ForFile loads the manifest next to the given source file, or the
// default configuration if there is none.
func ForFile(path string) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return ForDir(filepath.Dir(abs))
}
