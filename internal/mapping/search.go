package mapping

import (
	"sort"
	"strings"
)

// SearchMappings scores every field and endpoint mapping against a term:
// 1.0 for exact case-insensitive equality, a proportional partial score
// in (0,1) for substring overlap, zero excluded. Results are merged and
// sorted by descending confidence; ties keep catalog order.
func (r *Resolver) SearchMappings(term string) ([]SearchResult, error) {
	dict, err := r.current()
	if err != nil {
		return nil, err
	}

	var results []SearchResult

	appendField := func(fm FieldMapping) {
		if score := matchScore(term, fm.ConvergeField); score > 0 {
			results = append(results, SearchResult{
				Kind:       SearchKindField,
				Source:     fm.ConvergeField,
				Target:     fm.ElavonField,
				Confidence: score,
			})
		}
	}

	for _, ep := range dict.Endpoints {
		for _, fm := range ep.FieldMappings {
			appendField(fm)
		}
	}
	for _, fm := range dict.CommonFields {
		appendField(fm)
	}
	for _, ep := range dict.Endpoints {
		if score := matchScore(term, ep.ConvergeEndpoint); score > 0 {
			results = append(results, SearchResult{
				Kind:       SearchKindEndpoint,
				Source:     ep.ConvergeEndpoint,
				Target:     ep.ElavonEndpoint,
				Confidence: score,
			})
		}
	}

	// Stable sort preserves catalog order for equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})

	return results, nil
}

// matchScore computes the fuzzy score of term against candidate.
// Exact (case-insensitive) equality scores 1.0. A substring overlap in
// either direction scores the length ratio of the shorter string to the
// longer, which is strictly between 0 and 1. Anything else scores 0.
func matchScore(term, candidate string) float64 {
	t := strings.ToLower(term)
	c := strings.ToLower(candidate)
	if t == "" || c == "" {
		return 0
	}
	if t == c {
		return 1.0
	}
	if strings.Contains(c, t) {
		return float64(len(t)) / float64(len(c))
	}
	if strings.Contains(t, c) {
		return float64(len(c)) / float64(len(t))
	}
	return 0
}
