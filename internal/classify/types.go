// Package classify turns raw pattern detections into canonical endpoint
// usage records, one per unique (file, line, endpoint type). It dispatches
// on file extension to per-language strategies with a generic default; the
// analysis stays lexical on purpose.
package classify

import "elavonx/internal/patterns"

// EndpointRecord is a canonical detected usage of a legacy Converge
// endpoint. Records are scoped to a single scan; the
// (FilePath, LineNumber, EndpointType) triple is unique across a result.
type EndpointRecord struct {
	ID           string                `json:"id"`
	FilePath     string                `json:"filePath"`
	LineNumber   int                   `json:"lineNumber"`
	EndpointType patterns.EndpointType `json:"endpointType"`
	CodeSnippet  string                `json:"codeSnippet"`
	SslFields    []string              `json:"sslFields"`
	Language     Language              `json:"language"`
	Confidence   float64               `json:"confidence"`
}

// Language is the closed set of classification strategies.
type Language string

const (
	LanguageJavaScript Language = "javascript"
	LanguagePHP        Language = "php"
	LanguagePython     Language = "python"
	LanguageJava       Language = "java"
	LanguageCSharp     Language = "csharp"
	LanguageRuby       Language = "ruby"
	LanguageGeneric    Language = "generic"
)

// extensionLanguages maps file extensions to strategies. Anything absent
// falls back to the generic strategy.
var extensionLanguages = map[string]Language{
	".js":   LanguageJavaScript,
	".jsx":  LanguageJavaScript,
	".ts":   LanguageJavaScript,
	".tsx":  LanguageJavaScript,
	".mjs":  LanguageJavaScript,
	".vue":  LanguageJavaScript,
	".php":  LanguagePHP,
	".py":   LanguagePython,
	".java": LanguageJava,
	".cs":   LanguageCSharp,
	".rb":   LanguageRuby,
}

// LanguageForExt returns the strategy for a file extension.
func LanguageForExt(ext string) Language {
	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}
	return LanguageGeneric
}

// CandidateExtensions returns the extensions worth scanning: every
// specialized language plus common generic-source suffixes.
func CandidateExtensions() map[string]bool {
	exts := map[string]bool{
		".go": true, ".kt": true, ".swift": true, ".pl": true,
		".asp": true, ".aspx": true, ".jsp": true, ".html": true,
	}
	for ext := range extensionLanguages {
		exts[ext] = true
	}
	return exts
}
