// Package config handles dbn.toml tool configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file looked up by Load and FindAndLoad.
const FileName = "dbn.toml"

// Defaults used when dbn.toml omits a setting or no file exists.
const (
	DefaultSnapshotPath = "state.dbns"
	DefaultLspName      = "dbn-lsp"
)

// Config represents a dbn.toml configuration.
type Config struct {
	Log      LogConfig      `toml:"log"`
	Snapshot SnapshotConfig `toml:"snapshot"`
	Lsp      LspConfig      `toml:"lsp"`

	// Dir is the directory containing the dbn.toml file (set at load time).
	Dir string `toml:"-"`
}

// LogConfig configures commonlog.
type LogConfig struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

// SnapshotConfig locates the state file used by dbnop.
type SnapshotConfig struct {
	Path string `toml:"path"`
}

// LspConfig configures the language server.
type LspConfig struct {
	Name string `toml:"name"`
}

// Default returns the configuration used when no dbn.toml is found.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load parses a dbn.toml file from the given directory.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	c.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	c.applyDefaults()
	return &c, nil
}

// FindAndLoad walks up from startDir to find a dbn.toml file,
// then loads and returns it. Returns nil if no file is found.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// SnapshotPath returns the snapshot file path. Relative paths are resolved
// against the directory holding dbn.toml.
func (c *Config) SnapshotPath() string {
	if c.Dir == "" || filepath.IsAbs(c.Snapshot.Path) {
		return c.Snapshot.Path
	}
	return filepath.Join(c.Dir, c.Snapshot.Path)
}

// LogFile returns the log destination, or nil for stderr.
func (c *Config) LogFile() *string {
	if c.Log.File == "" {
		return nil
	}
	path := c.Log.File
	if c.Dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(c.Dir, path)
	}
	return &path
}

func (c *Config) applyDefaults() {
	if c.Snapshot.Path == "" {
		c.Snapshot.Path = DefaultSnapshotPath
	}
	if c.Lsp.Name == "" {
		c.Lsp.Name = DefaultLspName
	}
}
