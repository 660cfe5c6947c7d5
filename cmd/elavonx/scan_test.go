package main

import (
	"testing"

	"elavonx/internal/config"
)

func TestMergeScanOptions(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scan.Include = []string{"src/**"}
	cfg.Scan.Exclude = []string{"legacy/**"}
	cfg.Scan.MaxFileSizeBytes = 2048

	t.Run("config values flow through", func(t *testing.T) {
		opts := mergeScanOptions(cfg, nil, nil, false)
		if len(opts.Include) != 1 || opts.Include[0] != "src/**" {
			t.Errorf("Include = %v", opts.Include)
		}
		if len(opts.Exclude) != 1 || opts.Exclude[0] != "legacy/**" {
			t.Errorf("Exclude = %v", opts.Exclude)
		}
		if opts.MaxFileSize != 2048 {
			t.Errorf("MaxFileSize = %d, want 2048", opts.MaxFileSize)
		}
		if opts.NoCache {
			t.Error("cache enabled in config should not set NoCache")
		}
	})

	t.Run("flags override config globs", func(t *testing.T) {
		opts := mergeScanOptions(cfg, []string{"billing/**"}, []string{"tmp/**"}, false)
		if len(opts.Include) != 1 || opts.Include[0] != "billing/**" {
			t.Errorf("Include = %v", opts.Include)
		}
		if len(opts.Exclude) != 1 || opts.Exclude[0] != "tmp/**" {
			t.Errorf("Exclude = %v", opts.Exclude)
		}
	})

	t.Run("cache disabled in config", func(t *testing.T) {
		disabled := config.DefaultConfig()
		disabled.Cache.Enabled = false
		if opts := mergeScanOptions(disabled, nil, nil, false); !opts.NoCache {
			t.Error("cache.enabled=false should bypass the cache")
		}
	})

	t.Run("no-cache flag wins", func(t *testing.T) {
		if opts := mergeScanOptions(cfg, nil, nil, true); !opts.NoCache {
			t.Error("--no-cache should bypass the cache")
		}
	})
}
