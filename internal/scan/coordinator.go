package scan

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os"
	"sync"
	"time"

	"elavonx/internal/classify"
	"elavonx/internal/storage"
)

// cacheEntry pairs a content digest with the records it produced. Cached
// records are reused verbatim on a digest hit.
type cacheEntry struct {
	digest  string
	records []classify.EndpointRecord
}

// Coordinator runs scans and owns the digest cache. The in-memory tier is
// authoritative within a process; an optional persistent tier backs it
// across restarts.
type Coordinator struct {
	parser  *classify.Parser
	logger  *slog.Logger
	persist *storage.Cache // nil disables the persistent tier

	mu      sync.Mutex
	memo    map[string]cacheEntry
	lookups int
	hits    int
}

// NewCoordinator creates a coordinator. persist may be nil.
func NewCoordinator(logger *slog.Logger, persist *storage.Cache) *Coordinator {
	return &Coordinator{
		parser:  classify.NewParser(logger),
		logger:  logger,
		persist: persist,
		memo:    make(map[string]cacheEntry),
	}
}

// ScanWorkspace enumerates candidate files under root and scans them.
// Cancellation between files returns the partial result without error.
func (c *Coordinator) ScanWorkspace(ctx context.Context, root string, opts Options) (*Result, error) {
	files, err := findFiles(root, opts)
	if err != nil {
		return nil, err
	}
	return c.scan(ctx, files, opts), nil
}

// ScanFiles scans an explicit file list. The same filters as workspace
// enumeration apply, except the extension filter: hard-coded directory
// and suffix exclusions, the size cap, and the include/exclude globs.
func (c *Coordinator) ScanFiles(ctx context.Context, paths []string, opts Options) (*Result, error) {
	maxSize := opts.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	files := make([]string, 0, len(paths))
	skipped := 0
	for _, path := range paths {
		if !explicitEligible(path, maxSize, opts) {
			skipped++
			continue
		}
		files = append(files, path)
	}
	result := c.scan(ctx, files, opts)
	result.SkippedFiles += skipped
	return result, nil
}

// scan is the single-threaded core loop shared by both entry points.
func (c *Coordinator) scan(ctx context.Context, files []string, opts Options) *Result {
	start := time.Now()
	result := &Result{}
	total := len(files)

	for i, path := range files {
		if ctx.Err() != nil {
			c.logger.Info("scan cancelled", "processed", i, "total", total)
			result.Partial = true
			break
		}

		content, err := os.ReadFile(path)
		if err != nil {
			c.logger.Warn("skipping unreadable file", "path", path, "error", err)
			result.SkippedFiles++
			c.progress(opts, i+1, total)
			continue
		}

		digest := contentDigest(content)
		records, hit := c.lookup(path, digest, opts.NoCache)
		if hit {
			result.CacheHits++
		} else {
			records = c.parser.Parse(path, string(content))
			c.store(path, digest, records)
			result.ScannedFiles++
		}

		result.Endpoints = append(result.Endpoints, records...)
		c.progress(opts, i+1, total)
	}

	result.Duration = time.Since(start)
	return result
}

func (c *Coordinator) progress(opts Options, processed, total int) {
	if opts.Progress != nil {
		opts.Progress(processed, total)
	}
}

// lookup consults the in-memory tier first, then the persistent tier.
// Persistent hits are promoted into memory.
func (c *Coordinator) lookup(path, digest string, bypass bool) ([]classify.EndpointRecord, bool) {
	if bypass {
		return nil, false
	}

	c.mu.Lock()
	c.lookups++
	entry, ok := c.memo[path]
	if ok && entry.digest == digest {
		c.hits++
		c.mu.Unlock()
		return entry.records, true
	}
	c.mu.Unlock()

	if c.persist != nil {
		records, ok, err := c.persist.Get(path, digest)
		if err != nil {
			c.logger.Warn("persistent cache lookup failed", "path", path, "error", err)
			return nil, false
		}
		if ok {
			c.mu.Lock()
			c.hits++
			c.memo[path] = cacheEntry{digest: digest, records: records}
			c.mu.Unlock()
			return records, true
		}
	}
	return nil, false
}

func (c *Coordinator) store(path, digest string, records []classify.EndpointRecord) {
	c.mu.Lock()
	c.memo[path] = cacheEntry{digest: digest, records: records}
	c.mu.Unlock()

	if c.persist != nil {
		if err := c.persist.Put(path, digest, records); err != nil {
			c.logger.Warn("persistent cache store failed", "path", path, "error", err)
		}
	}
}

// ClearCache drops the in-memory tier and resets hit statistics. The
// persistent tier, when present, is cleared too.
func (c *Coordinator) ClearCache() error {
	c.mu.Lock()
	c.memo = make(map[string]cacheEntry)
	c.lookups = 0
	c.hits = 0
	c.mu.Unlock()

	if c.persist != nil {
		return c.persist.Clear()
	}
	return nil
}

// CacheStatistics reports cache size and hit rate since the last clear.
func (c *Coordinator) CacheStatistics() CacheStatistics {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := CacheStatistics{
		Entries: len(c.memo),
		Lookups: c.lookups,
		Hits:    c.hits,
	}
	if c.lookups > 0 {
		stats.HitRate = float64(c.hits) / float64(c.lookups)
	}
	return stats
}

// contentDigest returns the hex SHA-256 of file content.
func contentDigest(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
