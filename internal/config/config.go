package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config captures user-level settings for toolchainctl.
type Config struct {
	Version  int            `yaml:"version"`
	Root     string         `yaml:"root,omitempty"`
	LogLevel string         `yaml:"log_level"`
	LogDir   string         `yaml:"log_dir,omitempty"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Register RegisterConfig `yaml:"register"`
	Discover DiscoverConfig `yaml:"discover"`
}

// CatalogConfig controls where obtainable toolchains come from.
type CatalogConfig struct {
	File     string `yaml:"file,omitempty"`
	Disabled bool   `yaml:"disabled,omitempty"`
}

// RegisterConfig restricts which names may be registered.
type RegisterConfig struct {
	AllowedNames []string `yaml:"allowed_names,omitempty"`
}

// DiscoverConfig lists glob patterns searched for interpreters.
type DiscoverConfig struct {
	Patterns []string `yaml:"patterns,omitempty"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Version:  1,
		LogLevel: "warn",
	}
}

// Load reads the YAML configuration from disk if it exists, otherwise returns
// the default configuration.
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults ensures fields fall back to sensible defaults when the YAML
// omits them.
func (c *Config) ApplyDefaults() {
	defaults := Default()

	if c.Version == 0 {
		c.Version = defaults.Version
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = defaults.LogLevel
	}
	c.Register.AllowedNames = trimmed(c.Register.AllowedNames)
	c.Discover.Patterns = trimmed(c.Discover.Patterns)
}

// Marshal returns the YAML encoding of the configuration.
func (c Config) Marshal() ([]byte, error) {
	buf, err := yaml.Marshal(&c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return buf, nil
}

func trimmed(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
