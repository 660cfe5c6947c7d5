package classify

import (
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// The lexical fallback runs when the matching pipeline panics on a file.
// It is a deliberately crude three-strategy cascade over the raw text, so
// a single pathological file still yields a usable record instead of
// taking down the scan.

var fallbackFieldToken = regexp.MustCompile(`\bssl_[A-Za-z0-9_]+`)

var fallbackHosts = []string{
	"convergepay.com",
	"myvirtualmerchant.com",
}

// Credential fields whose co-occurrence marks a Converge integration even
// when no individual line is conclusive.
var fallbackCoreFields = []string{"ssl_merchant_id", "ssl_user_id", "ssl_pin"}

type fallbackStrategy func(lines []string) (line int, ok bool)

var fallbackStrategies = []fallbackStrategy{
	fallbackByFieldPrefix,
	fallbackByHostLiteral,
	fallbackByCoreFields,
}

// fallbackRecords applies the strategies in order and builds at most one
// record from the first that fires.
func fallbackRecords(path, content string, lang Language) []EndpointRecord {
	lines := strings.Split(content, "\n")
	for _, strategy := range fallbackStrategies {
		line, ok := strategy(lines)
		if !ok {
			continue
		}
		fields := fallbackFields(content)
		return []EndpointRecord{{
			ID:           uuid.NewString(),
			FilePath:     path,
			LineNumber:   line,
			EndpointType: inferEndpointType(fields),
			CodeSnippet:  snippet(lines, line),
			SslFields:    fields,
			Language:     lang,
			Confidence:   0.3,
		}}
	}
	return nil
}

// fallbackByFieldPrefix fires on the first line carrying an ssl_ token.
func fallbackByFieldPrefix(lines []string) (int, bool) {
	for i, line := range lines {
		if fallbackFieldToken.MatchString(line) {
			return i + 1, true
		}
	}
	return 0, false
}

// fallbackByHostLiteral fires on the first line naming a Converge host.
func fallbackByHostLiteral(lines []string) (int, bool) {
	for i, line := range lines {
		for _, host := range fallbackHosts {
			if strings.Contains(line, host) {
				return i + 1, true
			}
		}
	}
	return 0, false
}

// fallbackByCoreFields fires when at least two credential fields co-occur
// anywhere in the file, anchored at the first of them.
func fallbackByCoreFields(lines []string) (int, bool) {
	found := 0
	firstLine := 0
	for _, core := range fallbackCoreFields {
		for i, line := range lines {
			if strings.Contains(line, core) {
				found++
				if firstLine == 0 || i+1 < firstLine {
					firstLine = i + 1
				}
				break
			}
		}
	}
	if found >= 2 {
		return firstLine, true
	}
	return 0, false
}

// fallbackFields extracts the distinct ssl_ tokens, sorted.
func fallbackFields(content string) []string {
	matches := fallbackFieldToken.FindAllString(content, -1)
	seen := make(map[string]bool, len(matches))
	var fields []string
	for _, m := range matches {
		if !seen[m] {
			seen[m] = true
			fields = append(fields, m)
		}
	}
	sort.Strings(fields)
	return fields
}
