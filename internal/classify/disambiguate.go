package classify

import (
	"regexp"
	"strings"

	"elavonx/internal/patterns"
)

// How far (in lines) URL or call-idiom evidence can rescue an otherwise
// ambiguous endpoint identifier.
const evidenceRadius = 2

// declarationPrefix matches lines that introduce a symbol rather than use
// one: function/method/class declarations across the supported languages.
var declarationPrefix = regexp.MustCompile(
	`^\s*(?:export\s+|public\s+|private\s+|protected\s+|internal\s+|static\s+|abstract\s+|final\s+|virtual\s+|override\s+|async\s+)*` +
		`(?:function|def|class|interface|module|sub)\b`)

// typedSignature matches C-family method signatures with a leading
// visibility modifier, e.g. "public Response ProcessTransactionOnline(".
var typedSignature = regexp.MustCompile(
	`^\s*(?:public|private|protected|internal|static)\b[\w<>\[\],\s]*\(`)

// commentMarkers holds the line-comment prefixes per strategy. Generic
// files get the union.
var commentMarkers = map[Language][]string{
	LanguageJavaScript: {"//", "/*", "*"},
	LanguagePHP:        {"//", "#", "/*", "*"},
	LanguagePython:     {"#"},
	LanguageJava:       {"//", "/*", "*"},
	LanguageCSharp:     {"//", "/*", "*"},
	LanguageRuby:       {"#"},
	LanguageGeneric:    {"//", "#", "/*", "*", "<!--", "--"},
}

// rejectDetection filters out endpoint matches that are not usages:
// declarations of a similarly named symbol, and bare identifiers inside
// comments with no call syntax or protocol literal anywhere near them.
func rejectDetection(lines []string, d patterns.Detection, lang Language, evidence map[int]bool) bool {
	if d.Line < 1 || d.Line > len(lines) {
		return false
	}
	line := lines[d.Line-1]

	if isDeclaration(line, d.MatchedText) {
		return true
	}
	if isBareCommentMention(line, d.MatchedText, lang) && !hasEvidenceNear(d.Line, evidence) {
		return true
	}
	return false
}

// isDeclaration reports whether the line declares a symbol that happens to
// carry the matched name, rather than calling or referencing an endpoint.
// Lines with a protocol literal are always usages.
func isDeclaration(line, matched string) bool {
	if strings.Contains(line, "http://") || strings.Contains(line, "https://") {
		return false
	}
	if declarationPrefix.MatchString(line) && strings.Contains(line, matched) {
		return true
	}
	// Typed signatures only count when the matched name is what is being
	// declared, i.e. it directly precedes the parameter list.
	if typedSignature.MatchString(line) {
		idx := strings.Index(line, matched)
		if idx >= 0 {
			rest := strings.TrimLeft(line[idx+len(matched):], " \t")
			if strings.HasPrefix(rest, "(") {
				return true
			}
		}
	}
	return false
}

// isBareCommentMention reports whether the match sits in a comment line
// without any call syntax after it.
func isBareCommentMention(line, matched string, lang Language) bool {
	trimmed := strings.TrimSpace(line)
	inComment := false
	for _, marker := range commentMarkers[lang] {
		if strings.HasPrefix(trimmed, marker) {
			inComment = true
			break
		}
	}
	if !inComment {
		return false
	}
	if strings.Contains(line, "http://") || strings.Contains(line, "https://") {
		return false
	}
	idx := strings.Index(line, matched)
	if idx < 0 {
		return true
	}
	return !strings.Contains(line[idx:], "(")
}

// hasEvidenceNear reports whether a URL or call-idiom detection exists
// within evidenceRadius lines.
func hasEvidenceNear(line int, evidence map[int]bool) bool {
	for offset := -evidenceRadius; offset <= evidenceRadius; offset++ {
		if evidence[line+offset] {
			return true
		}
	}
	return false
}
