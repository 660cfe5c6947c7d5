package main

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"elavonx/internal/classify"
	"elavonx/internal/config"
	"elavonx/internal/mapping"
	"elavonx/internal/patterns"
	"elavonx/internal/scan"
)

var (
	scanInclude  []string
	scanExclude  []string
	scanNoCache  bool
	scanProgress bool
	scanAnalyze  bool
	scanFormat   string
)

var scanCmd = &cobra.Command{
	Use:   "scan [files...]",
	Short: "Scan a workspace for legacy Converge API usage",
	Long: `Scan walks the workspace (or the given files), detects legacy
Converge endpoint and field usage, and reports one record per unique
(file, line, endpoint type).

Unchanged files are served from the content-digest cache. Interrupting a
scan reports the partial result collected so far.

Examples:
  elavonx scan
  elavonx scan --include 'src/**' --exclude 'legacy/**'
  elavonx scan src/pay.js billing/charge.py
  elavonx scan --no-cache --format human`,
	Run: runScan,
}

func init() {
	scanCmd.Flags().StringArrayVar(&scanInclude, "include", nil, "Include glob (repeatable)")
	scanCmd.Flags().StringArrayVar(&scanExclude, "exclude", nil, "Exclude glob (repeatable)")
	scanCmd.Flags().BoolVar(&scanNoCache, "no-cache", false, "Bypass the scan cache")
	scanCmd.Flags().BoolVar(&scanProgress, "progress", false, "Print progress to stderr")
	scanCmd.Flags().BoolVar(&scanAnalyze, "analyze", false, "Add a per-family migration analysis to the report")
	scanCmd.Flags().StringVar(&scanFormat, "format", "json", "Output format (json, human)")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) {
	start := time.Now()
	logger := newLogger(scanFormat)
	root := mustGetRoot()
	coordinator := mustGetCoordinator(root, logger)

	ctx, cancel := newContext()
	defer cancel()

	opts := mergeScanOptions(mustLoadConfig(root, logger), scanInclude, scanExclude, scanNoCache)
	if scanProgress {
		opts.Progress = func(processed, total int) {
			fmt.Fprintf(os.Stderr, "\rScanning %d/%d files", processed, total)
			if processed == total {
				fmt.Fprintln(os.Stderr)
			}
		}
	}

	var result *scan.Result
	var err error
	if len(args) > 0 {
		result, err = coordinator.ScanFiles(ctx, args, opts)
	} else {
		result, err = coordinator.ScanWorkspace(ctx, root, opts)
	}
	if err != nil {
		fail(err)
	}

	resp := newScanResponse(root, result)
	if scanAnalyze {
		resp.Analyses = analyzeResult(root, logger, result)
	}

	output, err := FormatResponse(resp, OutputFormat(scanFormat))
	if err != nil {
		fail(err)
	}
	fmt.Println(output)

	logger.Debug("scan completed",
		"files", result.ScannedFiles,
		"records", len(result.Endpoints),
		"duration", time.Since(start).Milliseconds(),
	)
}

// mergeScanOptions builds scan options from the workspace config with
// the command flags taking precedence. cache.enabled=false in the config
// disables digest lookups the same way --no-cache does.
func mergeScanOptions(cfg *config.Config, include, exclude []string, noCache bool) scan.Options {
	opts := scan.Options{
		Include:     cfg.Scan.Include,
		Exclude:     cfg.Scan.Exclude,
		MaxFileSize: cfg.Scan.MaxFileSizeBytes,
		NoCache:     noCache || !cfg.Cache.Enabled,
	}
	if len(include) > 0 {
		opts.Include = include
	}
	if len(exclude) > 0 {
		opts.Exclude = exclude
	}
	return opts
}

// ScanResponseCLI contains scan results for CLI output
type ScanResponseCLI struct {
	Root         string                    `json:"root"`
	ScannedFiles int                       `json:"scannedFiles"`
	CacheHits    int                       `json:"cacheHits"`
	SkippedFiles int                       `json:"skippedFiles"`
	Partial      bool                      `json:"partial,omitempty"`
	DurationMs   int64                     `json:"durationMs"`
	ByType       []EndpointCountCLI        `json:"byType,omitempty"`
	Analyses     []mapping.Analysis        `json:"analyses,omitempty"`
	Endpoints    []classify.EndpointRecord `json:"endpoints"`
}

// analyzeResult runs a migration analysis per endpoint family found in
// the scan, over the union of that family's detected fields.
func analyzeResult(root string, logger *slog.Logger, result *scan.Result) []mapping.Analysis {
	resolver := getResolver(root, logger)

	fieldsByType := map[patterns.EndpointType]map[string]bool{}
	for _, rec := range result.Endpoints {
		set, ok := fieldsByType[rec.EndpointType]
		if !ok {
			set = map[string]bool{}
			fieldsByType[rec.EndpointType] = set
		}
		for _, field := range rec.SslFields {
			set[field] = true
		}
	}

	types := make([]patterns.EndpointType, 0, len(fieldsByType))
	for endpointType := range fieldsByType {
		types = append(types, endpointType)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	var analyses []mapping.Analysis
	for _, endpointType := range types {
		fields := make([]string, 0, len(fieldsByType[endpointType]))
		for field := range fieldsByType[endpointType] {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		analysis, err := resolver.Analyze(string(endpointType), fields)
		if err != nil {
			logger.Warn("analysis failed", "endpointType", endpointType, "error", err)
			continue
		}
		analyses = append(analyses, *analysis)
	}
	return analyses
}

// EndpointCountCLI is a per-family usage count
type EndpointCountCLI struct {
	EndpointType patterns.EndpointType `json:"endpointType"`
	Count        int                   `json:"count"`
}

func newScanResponse(root string, result *scan.Result) *ScanResponseCLI {
	counts := map[patterns.EndpointType]int{}
	for _, rec := range result.Endpoints {
		counts[rec.EndpointType]++
	}
	byType := make([]EndpointCountCLI, 0, len(counts))
	for endpointType, count := range counts {
		byType = append(byType, EndpointCountCLI{EndpointType: endpointType, Count: count})
	}
	sort.Slice(byType, func(i, j int) bool {
		if byType[i].Count != byType[j].Count {
			return byType[i].Count > byType[j].Count
		}
		return byType[i].EndpointType < byType[j].EndpointType
	})

	return &ScanResponseCLI{
		Root:         root,
		ScannedFiles: result.ScannedFiles,
		CacheHits:    result.CacheHits,
		SkippedFiles: result.SkippedFiles,
		Partial:      result.Partial,
		DurationMs:   result.Duration.Milliseconds(),
		ByType:       byType,
		Endpoints:    result.Endpoints,
	}
}
