package mapping

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	elxerrors "elavonx/internal/errors"
	"elavonx/internal/slogutil"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	return NewResolver("", slogutil.NewDiscardLogger())
}

func writeDictionary(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mappings.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGetFieldMappingCaseInsensitive(t *testing.T) {
	r := newTestResolver(t)

	tests := []string{"ssl_merchant_id", "SSL_MERCHANT_ID", "Ssl_Merchant_Id"}
	for _, name := range tests {
		fm, err := r.GetFieldMapping(name)
		if err != nil {
			t.Fatalf("GetFieldMapping(%q) failed: %v", name, err)
		}
		if fm.ElavonField != "merchantId" {
			t.Errorf("GetFieldMapping(%q).ElavonField = %q", name, fm.ElavonField)
		}
	}
}

func TestGetFieldMappingChecksEndpointMappingsFirst(t *testing.T) {
	r := newTestResolver(t)
	fm, err := r.GetFieldMapping("ssl_device_id")
	if err != nil {
		t.Fatalf("per-endpoint field not resolved: %v", err)
	}
	if fm.ElavonField != "device.id" {
		t.Errorf("ElavonField = %q, want device.id", fm.ElavonField)
	}
}

func TestGetFieldMappingMiss(t *testing.T) {
	r := newTestResolver(t)
	_, err := r.GetFieldMapping("ssl_not_a_real_field")
	if !elxerrors.IsNotFound(err) {
		t.Errorf("want NOT_FOUND, got %v", err)
	}
}

func TestFieldMappingRoundTrip(t *testing.T) {
	// Every loaded (convergeField, elavonField) pair must be retrievable
	// case-insensitively.
	r := newTestResolver(t)
	dict, err := r.Load()
	if err != nil {
		t.Fatal(err)
	}

	check := func(fm FieldMapping) {
		got, err := r.GetFieldMapping(strings.ToUpper(fm.ConvergeField))
		if err != nil {
			t.Errorf("round-trip failed for %s: %v", fm.ConvergeField, err)
			return
		}
		if got.ElavonField != fm.ElavonField {
			t.Errorf("round-trip %s: got %s, want %s", fm.ConvergeField, got.ElavonField, fm.ElavonField)
		}
	}
	for _, ep := range dict.Endpoints {
		for _, fm := range ep.FieldMappings {
			check(fm)
		}
	}
	for _, fm := range dict.CommonFields {
		check(fm)
	}
}

func TestGetEndpointMapping(t *testing.T) {
	r := newTestResolver(t)

	tests := []struct {
		name string
		path string
		want string
	}{
		{"exact", "/VirtualMerchant/processxml.do", "/transactions"},
		{"query is substring of catalog", "processxml.do", "/transactions"},
		{"catalog is substring of query", "https://api.convergepay.com/hosted-payments/transaction_token?x=1", "/transactions/token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ep, err := r.GetEndpointMapping(tt.path)
			if err != nil {
				t.Fatalf("GetEndpointMapping(%q) failed: %v", tt.path, err)
			}
			if ep.ElavonEndpoint != tt.want {
				t.Errorf("ElavonEndpoint = %q, want %q", ep.ElavonEndpoint, tt.want)
			}
		})
	}

	if _, err := r.GetEndpointMapping("/no/such/path"); !elxerrors.IsNotFound(err) {
		t.Errorf("want NOT_FOUND for unknown endpoint, got %v", err)
	}
}

func TestLoadMissingEndpointsKey(t *testing.T) {
	path := writeDictionary(t, `{"version": "1.0.0", "lastUpdated": "2026-01-01T00:00:00Z", "commonFields": []}`)
	r := NewResolver(path, slogutil.NewDiscardLogger())

	_, err := r.Load()
	if err == nil {
		t.Fatal("expected load failure for missing endpoints key")
	}
	if !strings.Contains(err.Error(), "endpoints") {
		t.Errorf("error should name the endpoints violation, got: %v", err)
	}
}

func TestValidationFailFast(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantIn  string
	}{
		{
			"bad version",
			`{"version": "not-semver", "endpoints": []}`,
			"version",
		},
		{
			"endpoint missing method",
			`{"version": "1.0.0", "endpoints": [{"convergeEndpoint": "/a", "elavonEndpoint": "/b"}]}`,
			"method",
		},
		{
			"endpoint missing target",
			`{"version": "1.0.0", "endpoints": [{"convergeEndpoint": "/a", "method": "POST"}]}`,
			"elavonEndpoint",
		},
		{
			"field missing dataType",
			`{"version": "1.0.0", "endpoints": [], "commonFields": [{"convergeField": "ssl_x", "elavonField": "x"}]}`,
			"dataType",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeDictionary(t, tt.content)
			r := NewResolver(path, slogutil.NewDiscardLogger())
			_, err := r.Load()
			if err == nil {
				t.Fatal("expected validation failure")
			}
			if elxerrors.CodeOf(err) != elxerrors.DictionaryInvalid {
				t.Errorf("code = %s, want DICTIONARY_INVALID", elxerrors.CodeOf(err))
			}
			if !strings.Contains(err.Error(), tt.wantIn) {
				t.Errorf("error should name %q, got: %v", tt.wantIn, err)
			}
		})
	}
}

func TestLoadIsMemoized(t *testing.T) {
	path := writeDictionary(t, `{"version": "1.0.0", "lastUpdated": "2026-01-01T00:00:00Z", "endpoints": []}`)
	r := NewResolver(path, slogutil.NewDiscardLogger())

	first, err := r.Load()
	if err != nil {
		t.Fatal(err)
	}

	// Corrupt the file; the memoized dictionary must survive.
	if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}
	second, err := r.Load()
	if err != nil {
		t.Fatalf("memoized load should not re-read the file: %v", err)
	}
	if first != second {
		t.Error("Load returned a different dictionary instance")
	}

	// Reload re-parses and must now fail, leaving the memo intact.
	if _, err := r.Reload(); err == nil {
		t.Fatal("Reload should fail on the corrupted file")
	}
	if d, err := r.Load(); err != nil || d != first {
		t.Error("failed Reload must not clobber the loaded dictionary")
	}
}

func TestStats(t *testing.T) {
	r := newTestResolver(t)
	stats, err := r.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Endpoints == 0 || stats.CommonFields == 0 || stats.TransformationRules == 0 {
		t.Errorf("builtin dictionary stats look empty: %+v", stats)
	}
	if stats.Version == "" {
		t.Error("stats missing version")
	}
}

func TestAnalyze(t *testing.T) {
	r := newTestResolver(t)
	a, err := r.Analyze("process_transaction", []string{"ssl_merchant_id", "ssl_amount"})
	if err != nil {
		t.Fatal(err)
	}
	if a.EndpointType != "process_transaction" {
		t.Errorf("EndpointType = %q", a.EndpointType)
	}
	if a.Complexity.Mapped != 2 {
		t.Errorf("Mapped = %d, want 2", a.Complexity.Mapped)
	}
	if len(a.MigrationNotes) == 0 {
		t.Error("analysis should carry dictionary migration notes")
	}
}
