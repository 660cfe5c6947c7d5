// Package scan walks a workspace, classifies candidate source files, and
// caches per-file results by content digest so unchanged files are never
// re-analyzed. Scanning is single-threaded and cooperative: cancellation
// is polled between files and yields the partial result collected so far.
package scan

import (
	"time"

	"elavonx/internal/classify"
)

// Default cap on file size; anything larger is skipped, not truncated.
const DefaultMaxFileSize = 1 << 20 // 1 MiB

// Options controls a single scan invocation.
type Options struct {
	// Include restricts the scan to paths matching at least one glob,
	// relative to the root. Empty means everything.
	Include []string
	// Exclude drops paths matching any glob, applied after Include.
	Exclude []string
	// MaxFileSize overrides DefaultMaxFileSize when positive.
	MaxFileSize int64
	// NoCache bypasses digest lookup; results are still stored.
	NoCache bool
	// Progress, when set, is called after each processed file with a
	// monotonically non-decreasing processed count and the fixed total.
	Progress func(processed, total int)
}

// Result is the outcome of a scan, possibly partial under cancellation.
// A file served from the cache counts toward CacheHits, not ScannedFiles,
// so a fully warm rescan of an unchanged tree reports zero scanned files.
type Result struct {
	Endpoints    []classify.EndpointRecord `json:"endpoints"`
	ScannedFiles int                       `json:"scannedFiles"`
	CacheHits    int                       `json:"cacheHits"`
	SkippedFiles int                       `json:"skippedFiles"`
	Partial      bool                      `json:"partial,omitempty"`
	Duration     time.Duration             `json:"duration"`
}

// CacheStatistics reports in-memory cache behavior since the last clear.
type CacheStatistics struct {
	Entries int     `json:"entries"`
	Lookups int     `json:"lookups"`
	Hits    int     `json:"hits"`
	HitRate float64 `json:"hitRate"`
}
