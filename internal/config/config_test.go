package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Version != 1 {
		t.Errorf("Version = %d", cfg.Version)
	}
	if !cfg.Cache.Enabled || !cfg.Cache.Persist {
		t.Errorf("cache defaults = %+v", cfg.Cache)
	}
	if cfg.Scan.MaxFileSizeBytes != 1<<20 {
		t.Errorf("MaxFileSizeBytes = %d", cfg.Scan.MaxFileSizeBytes)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, ".elavonx")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	content := `{
  "version": 1,
  "scan": {"exclude": ["legacy/**"], "maxFileSizeBytes": 2048},
  "dictionary": {"path": "mappings/converge.json"},
  "logging": {"format": "json", "level": "debug"}
}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Scan.MaxFileSizeBytes != 2048 {
		t.Errorf("MaxFileSizeBytes = %d", cfg.Scan.MaxFileSizeBytes)
	}
	if len(cfg.Scan.Exclude) != 1 || cfg.Scan.Exclude[0] != "legacy/**" {
		t.Errorf("Exclude = %v", cfg.Scan.Exclude)
	}
	if cfg.Dictionary.Path != "mappings/converge.json" {
		t.Errorf("Dictionary.Path = %q", cfg.Dictionary.Path)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	root := t.TempDir()
	cfg := DefaultConfig()
	cfg.Dictionary.Path = "custom.json"

	if err := cfg.Save(root); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadConfig(root)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Dictionary.Path != "custom.json" {
		t.Errorf("Dictionary.Path = %q after round trip", loaded.Dictionary.Path)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad version", func(c *Config) { c.Version = 7 }, "version"},
		{"negative size", func(c *Config) { c.Scan.MaxFileSizeBytes = -1 }, "maxFileSizeBytes"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should name %q", err, tt.wantErr)
			}
		})
	}
}
