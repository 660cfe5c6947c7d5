package storage

import (
	"testing"

	"elavonx/internal/classify"
	"elavonx/internal/patterns"
	"elavonx/internal/slogutil"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	db, err := Open(t.TempDir(), slogutil.NewDiscardLogger())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return NewCache(db)
}

func sampleRecords() []classify.EndpointRecord {
	return []classify.EndpointRecord{{
		ID:           "rec-1",
		FilePath:     "src/pay.js",
		LineNumber:   12,
		EndpointType: patterns.EndpointProcessTransaction,
		CodeSnippet:  "client.ProcessTransactionOnline({",
		SslFields:    []string{"ssl_amount", "ssl_merchant_id"},
		Language:     classify.LanguageJavaScript,
		Confidence:   0.9,
	}}
}

func TestCachePutGet(t *testing.T) {
	c := newTestCache(t)

	if err := c.Put("src/pay.js", "digest-a", sampleRecords()); err != nil {
		t.Fatal(err)
	}

	records, hit, err := c.Get("src/pay.js", "digest-a")
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Fatal("expected cache hit")
	}
	if len(records) != 1 || records[0].ID != "rec-1" {
		t.Errorf("records round-trip mismatch: %+v", records)
	}
	if records[0].EndpointType != patterns.EndpointProcessTransaction {
		t.Errorf("EndpointType = %s", records[0].EndpointType)
	}
	if len(records[0].SslFields) != 2 {
		t.Errorf("SslFields = %v", records[0].SslFields)
	}
}

func TestCacheDigestMismatchIsMiss(t *testing.T) {
	c := newTestCache(t)

	if err := c.Put("src/pay.js", "digest-a", sampleRecords()); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get("src/pay.js", "digest-b"); err != nil || hit {
		t.Errorf("stale digest must miss: hit=%v err=%v", hit, err)
	}
}

func TestCacheMissOnUnknownPath(t *testing.T) {
	c := newTestCache(t)
	if _, hit, err := c.Get("no/such/file.js", "d"); err != nil || hit {
		t.Errorf("unknown path must miss: hit=%v err=%v", hit, err)
	}
}

func TestCachePutReplaces(t *testing.T) {
	c := newTestCache(t)

	if err := c.Put("src/pay.js", "digest-a", sampleRecords()); err != nil {
		t.Fatal(err)
	}
	if err := c.Put("src/pay.js", "digest-b", nil); err != nil {
		t.Fatal(err)
	}

	records, hit, err := c.Get("src/pay.js", "digest-b")
	if err != nil || !hit {
		t.Fatalf("replaced entry should hit: hit=%v err=%v", hit, err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty record set, got %+v", records)
	}

	stats, err := c.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Entries != 1 {
		t.Errorf("Entries = %d, want 1 after replace", stats.Entries)
	}
}

func TestCacheClearAndStats(t *testing.T) {
	c := newTestCache(t)

	if err := c.Put("a.js", "d1", sampleRecords()); err != nil {
		t.Fatal(err)
	}
	if err := c.Put("b.js", "d2", sampleRecords()); err != nil {
		t.Fatal(err)
	}

	stats, err := c.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Entries != 2 || stats.SizeBytes == 0 {
		t.Errorf("stats = %+v", stats)
	}

	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	stats, err = c.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Entries != 0 {
		t.Errorf("Entries = %d after Clear", stats.Entries)
	}
}
