// Package patterns provides lexical detection of legacy Converge API usage
// in source text. Detection is line-oriented and regex/literal based by
// design: no language parsing happens here, and downstream scoring is
// calibrated against these line-level heuristics.
package patterns

import "regexp"

// Category identifies the kind of pattern a rule detects.
type Category string

const (
	CategoryEndpoint Category = "endpoint"
	CategorySslField Category = "sslField"
	CategoryURL      Category = "url"
	CategoryAPICall  Category = "apiCall"
)

// EndpointType is one of the five coarse Converge usage families.
type EndpointType string

const (
	EndpointHostedPayments     EndpointType = "hosted_payments"
	EndpointCheckout           EndpointType = "checkout"
	EndpointProcessTransaction EndpointType = "process_transaction"
	EndpointBatchProcessing    EndpointType = "batch_processing"
	EndpointDeviceManagement   EndpointType = "device_management"
)

// CategoryWeight returns the fixed confidence weight for a category.
// Confidence is a ranking score, never a filter: all matches are returned.
func CategoryWeight(c Category) float64 {
	switch c {
	case CategoryEndpoint:
		return 0.9
	case CategoryURL:
		return 0.8
	case CategorySslField:
		return 0.7
	case CategoryAPICall:
		return 0.5
	default:
		return 0.0
	}
}

// Rule defines a single detection pattern. Rules are immutable after
// catalog construction; regexes are compiled at load time.
type Rule struct {
	ID        string
	Category  Category
	Endpoint  EndpointType // Only set for endpoint-family rules
	Pattern   string       // Source pattern (literal or regex)
	Regex     *regexp.Regexp
	Literal   bool     // Literal substring match instead of regex
	Languages []string // Empty = all languages (apiCall rules scope by language)
	Weight    float64
}

// Detection is a single raw match emitted by the matcher.
// Line numbers are 1-based.
type Detection struct {
	Kind        Category     `json:"kind"`
	Endpoint    EndpointType `json:"endpoint,omitempty"`
	MatchedText string       `json:"matchedText"`
	Line        int          `json:"line"`
	Confidence  float64      `json:"confidence"`
	Rule        string       `json:"rule"`
}

// CatalogStats summarizes the active catalog.
type CatalogStats struct {
	TotalRules int              `json:"totalRules"`
	ByCategory map[Category]int `json:"byCategory"`
}
