package main

import (
	"encoding/json"
	"strings"
	"testing"

	"elavonx/internal/classify"
	"elavonx/internal/mapping"
	"elavonx/internal/patterns"
)

func TestFormatResponseJSON(t *testing.T) {
	resp := &ScanResponseCLI{
		Root:         "/work/app",
		ScannedFiles: 2,
		Endpoints: []classify.EndpointRecord{{
			ID:           "rec-1",
			FilePath:     "src/pay.js",
			LineNumber:   4,
			EndpointType: patterns.EndpointProcessTransaction,
			SslFields:    []string{"ssl_amount"},
			Language:     classify.LanguageJavaScript,
		}},
	}

	out, err := FormatResponse(resp, FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	var decoded ScanResponseCLI
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("JSON output not parseable: %v", err)
	}
	if decoded.ScannedFiles != 2 || len(decoded.Endpoints) != 1 {
		t.Errorf("round trip mismatch: %+v", decoded)
	}
}

func TestFormatResponseHuman(t *testing.T) {
	resp := &ScanResponseCLI{
		Root:         "/work/app",
		ScannedFiles: 1,
		Partial:      true,
		ByType:       []EndpointCountCLI{{EndpointType: patterns.EndpointCheckout, Count: 1}},
		Endpoints: []classify.EndpointRecord{{
			FilePath:     "site/index.html",
			LineNumber:   2,
			EndpointType: patterns.EndpointCheckout,
			Language:     classify.LanguageGeneric,
		}},
	}

	out, err := FormatResponse(resp, FormatHuman)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"partial", "site/index.html:2", "checkout"} {
		if !strings.Contains(out, want) {
			t.Errorf("human output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatResponseUnsupported(t *testing.T) {
	if _, err := FormatResponse(&SearchResponseCLI{}, OutputFormat("yaml")); err == nil {
		t.Error("unsupported format should error")
	}
}

func TestFormatFieldHuman(t *testing.T) {
	resp := &FieldResponseCLI{
		Query: "ssl_txn_id",
		Mapping: &mapping.FieldMapping{
			ConvergeField: "ssl_txn_id",
			ElavonField:   "transactionId",
			DataType:      "string",
			Deprecated:    true,
		},
	}
	out, err := FormatResponse(resp, FormatHuman)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "transactionId") || !strings.Contains(out, "deprecated") {
		t.Errorf("field output incomplete:\n%s", out)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{3 * 1024 * 1024, "3.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
