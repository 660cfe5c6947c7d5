package patterns

import "strings"

// Matcher runs a catalog's rules over source text, one category at a
// time. A matcher snapshots the catalog at construction, so detections in
// flight are unaffected by a concurrent Reconfigure.
type Matcher struct {
	catalog  *Catalog
	language string // Scopes apiCall rules; empty matches all languages
}

// NewMatcher creates a matcher over the given catalog.
func NewMatcher(catalog *Catalog, language string) *Matcher {
	if catalog == nil {
		catalog = Current()
	}
	return &Matcher{catalog: catalog, language: language}
}

// DetectEndpoints finds endpoint-family usages in content.
func (m *Matcher) DetectEndpoints(content string) []Detection {
	return m.detect(content, CategoryEndpoint)
}

// DetectSslFields finds legacy ssl_-prefixed field names in content.
func (m *Matcher) DetectSslFields(content string) []Detection {
	return m.detect(content, CategorySslField)
}

// DetectAPIURLs finds Converge host URLs in content.
func (m *Matcher) DetectAPIURLs(content string) []Detection {
	return m.detect(content, CategoryURL)
}

// DetectAPICalls finds HTTP call idioms in content, scoped to the
// matcher's language.
func (m *Matcher) DetectAPICalls(content string) []Detection {
	return m.detect(content, CategoryAPICall)
}

// detect is the line-oriented matching core: every rule of the category
// tests every line, and every match is returned with its 1-based line
// number and the category's fixed confidence weight.
func (m *Matcher) detect(content string, category Category) []Detection {
	var detections []Detection
	lines := strings.Split(content, "\n")

	for _, rule := range m.catalog.Rules(category) {
		if !m.ruleApplies(rule) {
			continue
		}
		for i, line := range lines {
			for _, match := range matchLine(rule, line) {
				detections = append(detections, Detection{
					Kind:        category,
					Endpoint:    rule.Endpoint,
					MatchedText: match,
					Line:        i + 1,
					Confidence:  rule.Weight,
					Rule:        rule.ID,
				})
			}
		}
	}

	return detections
}

// ruleApplies checks the rule's language scope against the matcher's.
func (m *Matcher) ruleApplies(rule Rule) bool {
	if len(rule.Languages) == 0 || m.language == "" {
		return true
	}
	for _, lang := range rule.Languages {
		if lang == m.language {
			return true
		}
	}
	return false
}

// matchLine returns the matched text fragments of a rule on one line.
// Literal rules report a single match per line; regex rules report every
// distinct match.
func matchLine(rule Rule, line string) []string {
	if rule.Literal {
		if strings.Contains(line, rule.Pattern) {
			return []string{rule.Pattern}
		}
		return nil
	}
	return rule.Regex.FindAllString(line, -1)
}
