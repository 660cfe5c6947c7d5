package mapping

import "testing"

func TestSearchMappingsRanking(t *testing.T) {
	r := newTestResolver(t)

	results, err := r.SearchMappings("ssl")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) == 0 {
		t.Fatal("expected matches for ssl")
	}
	for i := 1; i < len(results); i++ {
		if results[i].Confidence > results[i-1].Confidence {
			t.Fatalf("confidence not non-increasing at %d: %v > %v", i, results[i].Confidence, results[i-1].Confidence)
		}
	}
	for _, res := range results {
		if res.Confidence <= 0 || res.Confidence > 1 {
			t.Errorf("confidence out of range: %+v", res)
		}
	}
}

func TestSearchMappingsExactFirst(t *testing.T) {
	r := newTestResolver(t)

	results, err := r.SearchMappings("ssl_amount")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) == 0 {
		t.Fatal("expected matches")
	}
	if results[0].Confidence != 1.0 || results[0].Source != "ssl_amount" {
		t.Errorf("exact match should rank first, got %+v", results[0])
	}
}

func TestSearchMappingsIncludesEndpoints(t *testing.T) {
	r := newTestResolver(t)

	results, err := r.SearchMappings("processxml")
	if err != nil {
		t.Fatal(err)
	}
	foundEndpoint := false
	for _, res := range results {
		if res.Kind == SearchKindEndpoint {
			foundEndpoint = true
		}
	}
	if !foundEndpoint {
		t.Error("endpoint mappings missing from merged results")
	}
}

func TestSearchMappingsNoMatch(t *testing.T) {
	r := newTestResolver(t)
	results, err := r.SearchMappings("zzz_nothing")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("zero-score candidates must be excluded, got %v", results)
	}
}

func TestMatchScore(t *testing.T) {
	tests := []struct {
		term, candidate string
		want            float64
	}{
		{"ssl_pin", "SSL_PIN", 1.0},
		{"pin", "ssl_pin", 3.0 / 7.0},
		{"ssl_pin_extra", "ssl_pin", 7.0 / 13.0},
		{"xyz", "ssl_pin", 0},
		{"", "ssl_pin", 0},
	}
	for _, tt := range tests {
		if got := matchScore(tt.term, tt.candidate); got != tt.want {
			t.Errorf("matchScore(%q, %q) = %v, want %v", tt.term, tt.candidate, got, tt.want)
		}
	}
}
