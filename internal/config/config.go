// Package config loads the workspace configuration from
// .elavonx/config.json, with defaults for every field.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the complete elavonx configuration.
type Config struct {
	Version  int    `json:"version" mapstructure:"version"`
	Root     string `json:"root" mapstructure:"root"`

	Scan       ScanConfig       `json:"scan" mapstructure:"scan"`
	Dictionary DictionaryConfig `json:"dictionary" mapstructure:"dictionary"`
	Patterns   PatternsConfig   `json:"patterns" mapstructure:"patterns"`
	Cache      CacheConfig      `json:"cache" mapstructure:"cache"`
	Logging    LoggingConfig    `json:"logging" mapstructure:"logging"`
}

// ScanConfig controls workspace enumeration.
type ScanConfig struct {
	Include          []string `json:"include" mapstructure:"include"`
	Exclude          []string `json:"exclude" mapstructure:"exclude"`
	MaxFileSizeBytes int64    `json:"maxFileSizeBytes" mapstructure:"maxFileSizeBytes"`
}

// DictionaryConfig points at the mapping dictionary. An empty path means
// the embedded builtin dictionary.
type DictionaryConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// PatternsConfig points at an optional pattern catalog override file
// (YAML or TOML by extension).
type PatternsConfig struct {
	CatalogPath string `json:"catalogPath" mapstructure:"catalogPath"`
}

// CacheConfig controls the scan cache tiers.
type CacheConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`
	Persist bool `json:"persist" mapstructure:"persist"`
}

// LoggingConfig mirrors the CLI logging flags.
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Root:    ".",
		Scan: ScanConfig{
			Include:          []string{},
			Exclude:          []string{},
			MaxFileSizeBytes: 1 << 20,
		},
		Dictionary: DictionaryConfig{Path: ""},
		Patterns:   PatternsConfig{CatalogPath: ""},
		Cache: CacheConfig{
			Enabled: true,
			Persist: true,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from <root>/.elavonx/config.json. A
// missing file yields the defaults, not an error.
func LoadConfig(root string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)
	v.SetDefault("root", ".")
	v.SetDefault("scan.maxFileSizeBytes", 1<<20)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.persist", true)
	v.SetDefault("logging.format", "human")
	v.SetDefault("logging.level", "info")

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(root, ".elavonx"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the configuration to <root>/.elavonx/config.json, creating
// the directory if needed.
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, ".elavonx")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks structural validity.
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Scan.MaxFileSizeBytes < 0 {
		return &ConfigError{Field: "scan.maxFileSizeBytes", Message: "must not be negative"}
	}
	switch c.Logging.Format {
	case "", "human", "json":
	default:
		return &ConfigError{Field: "logging.format", Message: "must be human or json"}
	}
	return nil
}

// ConfigError names the offending field.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
