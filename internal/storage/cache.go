package storage

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"time"

	"github.com/klauspost/compress/gzip"

	"elavonx/internal/classify"
	elxerrors "elavonx/internal/errors"
)

// Cache is the persistent scan cache. Entries are keyed by file path and
// guarded by the content digest: a lookup with a stale digest is a miss.
// Record payloads are stored as gzip-compressed JSON.
type Cache struct {
	db *DB
}

// CacheStats summarizes the persisted cache.
type CacheStats struct {
	Entries   int   `json:"entries"`
	SizeBytes int64 `json:"sizeBytes"`
}

func NewCache(db *DB) *Cache {
	return &Cache{db: db}
}

// Get returns the cached records for path if the stored digest still
// matches. The second return is false on miss or digest mismatch.
func (c *Cache) Get(path, digest string) ([]classify.EndpointRecord, bool, error) {
	var storedDigest string
	var blob []byte

	err := c.db.conn.QueryRow(`
		SELECT digest, records FROM scan_cache WHERE path = ?
	`, path).Scan(&storedDigest, &blob)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, elxerrors.Wrap(elxerrors.InternalError, "cache lookup failed", err)
	}
	if storedDigest != digest {
		return nil, false, nil
	}

	records, err := decodeRecords(blob)
	if err != nil {
		// A corrupt payload is treated as a miss after evicting it.
		c.db.logger.Warn("evicting corrupt cache entry", "path", path, "error", err)
		c.db.conn.Exec("DELETE FROM scan_cache WHERE path = ?", path)
		return nil, false, nil
	}
	return records, true, nil
}

// Put stores the records for path under the given digest, replacing any
// previous entry for the path.
func (c *Cache) Put(path, digest string, records []classify.EndpointRecord) error {
	blob, err := encodeRecords(records)
	if err != nil {
		return err
	}
	_, err = c.db.conn.Exec(`
		INSERT OR REPLACE INTO scan_cache (path, digest, records, updated_at)
		VALUES (?, ?, ?, ?)
	`, path, digest, blob, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return elxerrors.Wrap(elxerrors.InternalError, "failed to store cache entry", err)
	}
	return nil
}

// Clear removes every cached entry.
func (c *Cache) Clear() error {
	if _, err := c.db.conn.Exec("DELETE FROM scan_cache"); err != nil {
		return elxerrors.Wrap(elxerrors.InternalError, "failed to clear cache", err)
	}
	return nil
}

// Stats reports entry count and total compressed payload size.
func (c *Cache) Stats() (CacheStats, error) {
	var stats CacheStats
	err := c.db.conn.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(LENGTH(records)), 0) FROM scan_cache
	`).Scan(&stats.Entries, &stats.SizeBytes)
	if err != nil {
		return CacheStats{}, elxerrors.Wrap(elxerrors.InternalError, "failed to read cache stats", err)
	}
	return stats, nil
}

func encodeRecords(records []classify.EndpointRecord) ([]byte, error) {
	payload, err := json.Marshal(records)
	if err != nil {
		return nil, elxerrors.Wrap(elxerrors.InternalError, "failed to encode cache records", err)
	}
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(payload); err != nil {
		return nil, elxerrors.Wrap(elxerrors.InternalError, "failed to compress cache records", err)
	}
	if err := gz.Close(); err != nil {
		return nil, elxerrors.Wrap(elxerrors.InternalError, "failed to compress cache records", err)
	}
	return buf.Bytes(), nil
}

func decodeRecords(blob []byte) ([]classify.EndpointRecord, error) {
	gz, err := gzip.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, err
	}
	defer gz.Close()

	payload, err := io.ReadAll(gz)
	if err != nil {
		return nil, err
	}
	var records []classify.EndpointRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, err
	}
	return records, nil
}
