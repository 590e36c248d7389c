// Package config handles objcbridge.toml bridge configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/chazu/objcbridge/objc"
)

// FileName is the name of the configuration file.
const FileName = "objcbridge.toml"

// Environment variables that override the file.
const (
	EnvStrict   = "OBJCBRIDGE_STRICT"
	EnvLogLevel = "OBJCBRIDGE_LOG_LEVEL"
)

// Config represents an objcbridge.toml configuration.
type Config struct {
	Bridge  BridgeConfig  `toml:"bridge" json:"bridge"`
	Logging LoggingConfig `toml:"logging" json:"logging"`

	// Dir is the directory containing the objcbridge.toml file (set at load
	// time, empty for defaults).
	Dir string `toml:"-" json:"-"`
}

// BridgeConfig configures the bridging core.
type BridgeConfig struct {
	// Strict selects the fail-fast policy. Unset keeps the build default.
	Strict *bool `toml:"strict" json:"strict,omitempty"`

	DebugSuffix   string `toml:"debug-suffix" json:"debugSuffix"`
	ReleaseSuffix string `toml:"release-suffix" json:"releaseSuffix"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level string `toml:"level" json:"level"`
	Path  string `toml:"path" json:"path,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load parses an objcbridge.toml file from the given directory, applies
// environment overrides and validates the result.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	c.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}
	return c, nil
}

// Parse decodes configuration text, applies defaults and environment
// overrides, and validates the result.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	c.applyDefaults()
	if err := c.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// FindAndLoad walks up from startDir to find an objcbridge.toml file,
// then loads and returns it. Without a file it returns the defaults with
// environment overrides applied.
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
			// Reached root
			c := Default()
			if err := c.ApplyEnv(os.LookupEnv); err != nil {
				return nil, err
			}
			return c, c.Validate()
		}
		dir = parent
	}
}

func (c *Config) applyDefaults() {
	if c.Bridge.DebugSuffix == "" {
		c.Bridge.DebugSuffix = objc.DefaultDebugSuffix
	}
	if c.Bridge.ReleaseSuffix == "" {
		c.Bridge.ReleaseSuffix = objc.DefaultReleaseSuffix
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "warning"
	}
}

// ApplyEnv overrides settings from the environment, read through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvStrict); ok && v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvStrict, err)
		}
		c.Bridge.Strict = &strict
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	return nil
}

// BridgeOptions maps the configuration onto bridge options.
func (c *Config) BridgeOptions() []objc.Option {
	opts := []objc.Option{
		objc.WithNameSuffixes(c.Bridge.DebugSuffix, c.Bridge.ReleaseSuffix),
	}
	if c.Bridge.Strict != nil {
		opts = append(opts, objc.WithStrict(*c.Bridge.Strict))
	}
	return opts
}
