package classify

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	elxerrors "elavonx/internal/errors"
	"elavonx/internal/patterns"
)

// Lines of surrounding context captured on each side of a detection.
const snippetContext = 3

// newMatcher is replaced in tests to exercise the recovery path.
var newMatcher = patterns.NewMatcher

// Parser converts a source file into endpoint records. It is stateless
// apart from its logger and the catalog snapshot taken per call, so one
// parser can be shared across a whole scan.
type Parser struct {
	logger *slog.Logger
}

func NewParser(logger *slog.Logger) *Parser {
	return &Parser{logger: logger}
}

// ParseFile reads and classifies a single file. Unreadable files are
// logged and reported as empty rather than failing the scan.
func (p *Parser) ParseFile(path string) []EndpointRecord {
	content, err := os.ReadFile(path)
	if err != nil {
		p.logger.Warn("skipping unreadable file", "path", path, "error", err)
		return nil
	}
	return p.Parse(path, string(content))
}

// Parse classifies already-loaded content. The strategy is chosen by the
// path's extension; unknown extensions get the generic strategy.
func (p *Parser) Parse(path, content string) []EndpointRecord {
	lang := LanguageForExt(strings.ToLower(filepath.Ext(path)))
	records := p.parseContent(path, content, lang)
	return dedupeRecords(records)
}

// parseContent runs the pattern matcher and builds records. Any panic in
// the matching pipeline downgrades the file to the lexical fallback pass
// instead of aborting the scan.
func (p *Parser) parseContent(path, content string, lang Language) (records []EndpointRecord) {
	defer func() {
		if r := recover(); r != nil {
			err := elxerrors.New(elxerrors.MatcherFailure,
				fmt.Sprintf("pattern engine panic: %v", r))
			p.logger.Error("matcher failure, using lexical fallback", "path", path, "error", err)
			records = fallbackRecords(path, content, lang)
		}
	}()

	matcherLang := string(lang)
	if lang == LanguageGeneric {
		matcherLang = ""
	}
	m := newMatcher(patterns.Current(), matcherLang)

	lines := strings.Split(content, "\n")
	endpoints := m.DetectEndpoints(content)
	fields := m.DetectSslFields(content)
	urls := m.DetectAPIURLs(content)
	calls := m.DetectAPICalls(content)

	evidence := evidenceLines(urls, calls)
	fieldNames := distinctFieldNames(fields)

	for _, d := range endpoints {
		if rejectDetection(lines, d, lang, evidence) {
			continue
		}
		records = append(records, EndpointRecord{
			ID:           uuid.NewString(),
			FilePath:     path,
			LineNumber:   d.Line,
			EndpointType: d.Endpoint,
			CodeSnippet:  snippet(lines, d.Line),
			SslFields:    fieldNames,
			Language:     lang,
			Confidence:   d.Confidence,
		})
	}

	// A Converge host URL alone still marks the file as a legacy
	// integration even when no endpoint rule fired, e.g. a bare host with
	// an unrecognized path. One record is synthesized at the first URL
	// detection, typed by what the field names imply.
	if len(records) == 0 && len(urls) > 0 {
		first := urls[0]
		for _, d := range urls {
			if d.Line < first.Line {
				first = d
			}
		}
		records = append(records, EndpointRecord{
			ID:           uuid.NewString(),
			FilePath:     path,
			LineNumber:   first.Line,
			EndpointType: inferEndpointType(fieldNames),
			CodeSnippet:  snippet(lines, first.Line),
			SslFields:    fieldNames,
			Language:     lang,
			Confidence:   first.Confidence,
		})
	}

	// Field usage without any endpoint match still marks the file as a
	// legacy integration. Exactly one record is synthesized, anchored at
	// the first field detection, typed by what the field names imply.
	if len(records) == 0 && len(fields) > 0 {
		first := fields[0]
		for _, d := range fields {
			if d.Line < first.Line {
				first = d
			}
		}
		records = append(records, EndpointRecord{
			ID:           uuid.NewString(),
			FilePath:     path,
			LineNumber:   first.Line,
			EndpointType: inferEndpointType(fieldNames),
			CodeSnippet:  snippet(lines, first.Line),
			SslFields:    fieldNames,
			Language:     lang,
			Confidence:   first.Confidence,
		})
	}

	return records
}

// snippet returns the detection line with up to snippetContext lines of
// context on each side, clipped to the file bounds.
func snippet(lines []string, lineNumber int) string {
	start := lineNumber - 1 - snippetContext
	if start < 0 {
		start = 0
	}
	end := lineNumber + snippetContext
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[start:end], "\n")
}

// distinctFieldNames collapses field detections to a sorted set of names.
func distinctFieldNames(fields []patterns.Detection) []string {
	seen := make(map[string]bool, len(fields))
	var names []string
	for _, d := range fields {
		if !seen[d.MatchedText] {
			seen[d.MatchedText] = true
			names = append(names, d.MatchedText)
		}
	}
	sort.Strings(names)
	return names
}

// evidenceLines collects the lines carrying URL or call-idiom matches.
// Nearby evidence rescues otherwise ambiguous endpoint identifiers.
func evidenceLines(detectionSets ...[]patterns.Detection) map[int]bool {
	lines := make(map[int]bool)
	for _, set := range detectionSets {
		for _, d := range set {
			lines[d.Line] = true
		}
	}
	return lines
}

// inferEndpointType maps a set of ssl_ field names to the most specific
// endpoint family they imply. Batch and device markers win over checkout
// and token markers; plain transaction processing is the default.
func inferEndpointType(fieldNames []string) patterns.EndpointType {
	has := func(fragments ...string) bool {
		for _, name := range fieldNames {
			lower := strings.ToLower(name)
			for _, frag := range fragments {
				if strings.Contains(lower, frag) {
					return true
				}
			}
		}
		return false
	}

	switch {
	case has("batch"):
		return patterns.EndpointBatchProcessing
	case has("device", "terminal"):
		return patterns.EndpointDeviceManagement
	case has("checkout"):
		return patterns.EndpointCheckout
	case has("token"):
		return patterns.EndpointHostedPayments
	default:
		return patterns.EndpointProcessTransaction
	}
}

// dedupeRecords enforces uniqueness of (filePath, lineNumber, endpointType).
// The first record wins; later duplicates are dropped.
func dedupeRecords(records []EndpointRecord) []EndpointRecord {
	type key struct {
		path string
		line int
		kind patterns.EndpointType
	}
	seen := make(map[key]bool, len(records))
	out := records[:0]
	for _, rec := range records {
		k := key{rec.FilePath, rec.LineNumber, rec.EndpointType}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, rec)
	}
	return out
}
