package patterns

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinCatalogCompiles(t *testing.T) {
	c := BuiltinCatalog()
	stats := c.Stats()
	if stats.TotalRules == 0 {
		t.Fatal("builtin catalog is empty")
	}
	for _, cat := range []Category{CategoryEndpoint, CategorySslField, CategoryURL, CategoryAPICall} {
		if stats.ByCategory[cat] == 0 {
			t.Errorf("no builtin rules for category %s", cat)
		}
	}
}

func TestNewCatalogRejectsMalformedRegex(t *testing.T) {
	_, err := NewCatalog([]Rule{
		{ID: "bad", Category: CategorySslField, Pattern: `ssl_[`},
	})
	if err == nil {
		t.Fatal("expected malformed regex to fail catalog construction")
	}
}

func TestLoadCatalogFileYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "patterns.yaml")
	content := `
endpoints:
  checkout:
    regexes: ["(?i)pay\\.js"]
fieldPrefixes: ["ssl_", "converge_"]
hosts: ["api.convergepay.com"]
callIdioms:
  javascript:
    literals: ["superagent"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadCatalogFile(path)
	if err != nil {
		t.Fatalf("LoadCatalogFile failed: %v", err)
	}

	m := NewMatcher(c, "javascript")
	if len(m.DetectEndpoints("loading pay.js here")) == 0 {
		t.Error("override endpoint regex not active")
	}
	if len(m.DetectSslFields("x = converge_merchant_ref")) == 0 {
		t.Error("custom field prefix not active")
	}
	if len(m.DetectAPIURLs(`"https://api.convergepay.com/x"`)) == 0 {
		t.Error("host literal not active")
	}
	if len(m.DetectAPICalls("superagent.post(url)")) == 0 {
		t.Error("custom call idiom not active")
	}
}

func TestLoadCatalogFileTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "patterns.toml")
	content := `
fieldPrefixes = ["ssl_"]
hosts = ["demo.convergepay.com"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadCatalogFile(path)
	if err != nil {
		t.Fatalf("LoadCatalogFile failed: %v", err)
	}
	m := NewMatcher(c, "")
	if len(m.DetectSslFields("ssl_amount")) == 0 {
		t.Error("field prefix rule missing from TOML catalog")
	}
	// Omitted sections fall back to builtins.
	if len(m.DetectEndpoints("ProcessTransactionOnline")) == 0 {
		t.Error("builtin endpoint rules should survive a partial override")
	}
}

func TestLoadCatalogFileMalformedRegexFailsAtLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "patterns.yaml")
	content := `
endpoints:
  checkout:
    regexes: ["(unclosed"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCatalogFile(path); err == nil {
		t.Fatal("malformed regex must fail at configuration load, not match time")
	}
}

func TestLoadCatalogFileUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "patterns.ini")
	if err := os.WriteFile(path, []byte("x=y"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCatalogFile(path); err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestReconfigureSwapsAtomically(t *testing.T) {
	t.Cleanup(ResetToBuiltin)

	before := Current()
	m := NewMatcher(before, "")

	custom, err := NewCatalog([]Rule{
		{ID: "only", Category: CategorySslField, Pattern: `\bfoo_[a-z]+`},
	})
	if err != nil {
		t.Fatal(err)
	}
	Reconfigure(custom)

	// In-flight matcher keeps the snapshot it started with.
	if len(m.DetectSslFields("ssl_amount")) == 0 {
		t.Error("pre-swap matcher lost its catalog snapshot")
	}
	// New matchers observe the new catalog.
	if len(NewMatcher(Current(), "").DetectSslFields("ssl_amount")) != 0 {
		t.Error("post-swap matcher should not see old rules")
	}
}
