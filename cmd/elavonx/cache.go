package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"elavonx/internal/scan"
	"elavonx/internal/storage"
)

var cacheFormat string

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the scan cache",
	Run:   runCacheStats,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show scan cache statistics",
	Run:   runCacheStats,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the scan cache",
	Run:   runCacheClear,
}

func init() {
	cacheCmd.PersistentFlags().StringVar(&cacheFormat, "format", "json", "Output format (json, human)")
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheStats(cmd *cobra.Command, args []string) {
	printCacheResponse(false)
}

func runCacheClear(cmd *cobra.Command, args []string) {
	printCacheResponse(true)
}

func printCacheResponse(clear bool) {
	logger := newLogger(cacheFormat)
	root := mustGetRoot()
	coordinator := mustGetCoordinator(root, logger)

	if clear {
		if err := coordinator.ClearCache(); err != nil {
			fail(err)
		}
	}

	resp := &CacheResponseCLI{
		Memory:  coordinator.CacheStatistics(),
		Cleared: clear,
	}
	if db, err := storage.Open(root, logger); err == nil {
		defer db.Close()
		if stats, err := storage.NewCache(db).Stats(); err == nil {
			resp.Persistent = &stats
		}
	}

	output, err := FormatResponse(resp, OutputFormat(cacheFormat))
	if err != nil {
		fail(err)
	}
	fmt.Println(output)
}

// CacheResponseCLI contains cache statistics for CLI output
type CacheResponseCLI struct {
	Memory     scan.CacheStatistics `json:"memory"`
	Persistent *storage.CacheStats  `json:"persistent,omitempty"`
	Cleared    bool                 `json:"cleared,omitempty"`
}
