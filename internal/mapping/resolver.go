package mapping

import (
	"fmt"
	"strings"

	elxerrors "elavonx/internal/errors"
)

// GetFieldMapping resolves a legacy field name case-insensitively,
// checking per-endpoint mappings first, then common mappings. A miss is
// reported as a NOT_FOUND error, which is not a failure condition.
func (r *Resolver) GetFieldMapping(name string) (*FieldMapping, error) {
	dict, err := r.current()
	if err != nil {
		return nil, err
	}

	target := strings.ToLower(name)
	for _, ep := range dict.Endpoints {
		for i := range ep.FieldMappings {
			if strings.ToLower(ep.FieldMappings[i].ConvergeField) == target {
				fm := ep.FieldMappings[i]
				return &fm, nil
			}
		}
	}
	for i := range dict.CommonFields {
		if strings.ToLower(dict.CommonFields[i].ConvergeField) == target {
			fm := dict.CommonFields[i]
			return &fm, nil
		}
	}

	return nil, elxerrors.New(elxerrors.NotFound,
		fmt.Sprintf("no mapping found for field %q", name))
}

// GetEndpointMapping resolves a legacy endpoint path: exact match first,
// then the first endpoint whose path is a substring match in either
// direction.
func (r *Resolver) GetEndpointMapping(path string) (*EndpointMapping, error) {
	dict, err := r.current()
	if err != nil {
		return nil, err
	}

	for i := range dict.Endpoints {
		if dict.Endpoints[i].ConvergeEndpoint == path {
			ep := dict.Endpoints[i]
			return &ep, nil
		}
	}
	for i := range dict.Endpoints {
		ce := dict.Endpoints[i].ConvergeEndpoint
		if strings.Contains(ce, path) || strings.Contains(path, ce) {
			ep := dict.Endpoints[i]
			return &ep, nil
		}
	}

	return nil, elxerrors.New(elxerrors.NotFound,
		fmt.Sprintf("no mapping found for endpoint %q", path))
}

// Analyze builds the per-endpoint migration summary for a detected usage.
func (r *Resolver) Analyze(endpointType string, sslFields []string) (*Analysis, error) {
	dict, err := r.current()
	if err != nil {
		return nil, err
	}
	report, err := r.GetMigrationComplexity(sslFields)
	if err != nil {
		return nil, err
	}
	return &Analysis{
		EndpointType:   endpointType,
		SslFields:      sslFields,
		Complexity:     report,
		MigrationNotes: dict.MigrationNotes,
	}, nil
}
