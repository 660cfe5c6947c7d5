// Package mapping loads and resolves the Converge→Elavon knowledge base:
// a versioned dictionary of endpoint and field mappings with
// transformation rules, plus lookup, fuzzy search, complexity scoring,
// and migration snippet generation on top of it.
package mapping

// FieldMapping translates one legacy Converge field to its Elavon
// equivalent. Keyed case-insensitively by ConvergeField.
type FieldMapping struct {
	ConvergeField  string `json:"convergeField"`
	ElavonField    string `json:"elavonField"`
	DataType       string `json:"dataType"`
	Required       bool   `json:"required"`
	MaxLength      int    `json:"maxLength,omitempty"`
	Transformation string `json:"transformation,omitempty"`
	Deprecated     bool   `json:"deprecated,omitempty"`
}

// EndpointMapping translates one legacy Converge endpoint to its Elavon
// equivalent, with the field mappings specific to that endpoint.
type EndpointMapping struct {
	ConvergeEndpoint string         `json:"convergeEndpoint"`
	ElavonEndpoint   string         `json:"elavonEndpoint"`
	Method           string         `json:"method"`
	Description      string         `json:"description,omitempty"`
	FieldMappings    []FieldMapping `json:"fieldMappings,omitempty"`
}

// Dictionary is the versioned mapping knowledge base. It is read-only
// process-wide state after load; reload replaces it atomically.
type Dictionary struct {
	Version             string            `json:"version"`
	LastUpdated         string            `json:"lastUpdated"`
	Endpoints           []EndpointMapping `json:"endpoints"`
	CommonFields        []FieldMapping    `json:"commonFields"`
	TransformationRules map[string]string `json:"transformationRules,omitempty"`
	MigrationNotes      []string          `json:"migrationNotes,omitempty"`
}

// Stats summarizes a loaded dictionary.
type Stats struct {
	Version             string `json:"version"`
	LastUpdated         string `json:"lastUpdated"`
	Endpoints           int    `json:"endpoints"`
	EndpointFields      int    `json:"endpointFields"`
	CommonFields        int    `json:"commonFields"`
	TransformationRules int    `json:"transformationRules"`
	MigrationNotes      int    `json:"migrationNotes"`
}

// SearchKind distinguishes search result origins.
type SearchKind string

const (
	SearchKindField    SearchKind = "field"
	SearchKindEndpoint SearchKind = "endpoint"
)

// SearchResult is one fuzzy-search hit. Confidence is a ranking score,
// not a probability.
type SearchResult struct {
	Kind       SearchKind `json:"kind"`
	Source     string     `json:"source"`
	Target     string     `json:"target"`
	Confidence float64    `json:"confidence"`
}

// ComplexityLevel buckets the migration effort for a field set.
type ComplexityLevel string

const (
	ComplexityLow    ComplexityLevel = "low"
	ComplexityMedium ComplexityLevel = "medium"
	ComplexityHigh   ComplexityLevel = "high"
)

// ComplexityReport is the result of scoring a field set.
type ComplexityReport struct {
	TotalFields       int             `json:"totalFields"`
	Mapped            int             `json:"mapped"`
	Unmapped          int             `json:"unmapped"`
	Deprecated        int             `json:"deprecated"`
	TransformRequired int             `json:"transformRequired"`
	UnmappedFields    []string        `json:"unmappedFields,omitempty"`
	Score             float64         `json:"score"`
	Level             ComplexityLevel `json:"level"`
}

// Analysis is the per-endpoint migration summary exposed to callers.
type Analysis struct {
	EndpointType   string           `json:"endpointType"`
	SslFields      []string         `json:"sslFields"`
	Complexity     ComplexityReport `json:"complexity"`
	MigrationNotes []string         `json:"migrationNotes,omitempty"`
}
