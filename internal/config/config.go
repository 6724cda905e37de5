package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DefaultRoot               = "~/.locus"
	DefaultPriorityWindowDays = 7
	FileName                  = "config.toml"
)

// Config is the workspace configuration stored in <root>/config.toml
type Config struct {
	Root               string    `toml:"-"`
	Timezone           string    `toml:"timezone,omitempty"`
	PriorityWindowDays int       `toml:"priority_window_days,omitempty"`
	Log                LogConfig `toml:"log"`
}

// LogConfig mirrors logging.Config for the file format
type LogConfig struct {
	Level  string `toml:"level,omitempty"`
	Format string `toml:"format,omitempty"`
	Debug  bool   `toml:"debug,omitempty"`
}

// RootPath returns the store root from LOCUS_HOME, falling back to
// DefaultRoot. A leading ~ is expanded.
func RootPath() string {
	if env := os.Getenv("LOCUS_HOME"); env != "" {
		return ExpandHome(env)
	}
	return ExpandHome(DefaultRoot)
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// Default returns the configuration used when no file exists
func Default(root string) *Config {
	return &Config{
		Root:               root,
		PriorityWindowDays: DefaultPriorityWindowDays,
		Log:                LogConfig{Level: "info", Format: "json"},
	}
}

// Load reads <root>/config.toml. A missing file yields defaults; LOCUS_TZ
// overrides the configured timezone.
func Load(root string) (*Config, error) {
	root = ExpandHome(root)
	cfg := Default(root)

	path := filepath.Join(root, FileName)
	if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s parse error: %w", FileName, err)
	}
	cfg.Root = root

	if tz := os.Getenv("LOCUS_TZ"); tz != "" {
		cfg.Timezone = tz
	}
	if cfg.PriorityWindowDays <= 0 {
		cfg.PriorityWindowDays = DefaultPriorityWindowDays
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config atomically (temp file + rename)
func (c *Config) Save() error {
	if err := os.MkdirAll(c.Root, 0o755); err != nil {
		return fmt.Errorf("failed to create root: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("# locus configuration\n\n")
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	path := filepath.Join(c.Root, FileName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// Location resolves the configured timezone; empty means the process zone
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// ItemsDir holds one markdown file per item
func (c *Config) ItemsDir() string { return filepath.Join(c.Root, "items") }

// IndexDir holds the adjacency index
func (c *Config) IndexDir() string { return filepath.Join(c.Root, "index") }

// AliasDBPath is the alias database
func (c *Config) AliasDBPath() string { return filepath.Join(c.Root, "aliases.db") }

// LogDir holds rotated log files
func (c *Config) LogDir() string { return filepath.Join(c.Root, "logs") }
