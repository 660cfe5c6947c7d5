package mapping

import (
	"fmt"
	"strings"

	elxerrors "elavonx/internal/errors"
)

// GenerateMigrationCode emits a one-line assignment snippet translating a
// legacy field to its Elavon equivalent in the target language's native
// access and comment syntax. When a transformation rule applies, the
// value is routed through a synthesized transform function named after
// the source field. Unknown fields and unsupported languages are
// NOT_FOUND.
func (r *Resolver) GenerateMigrationCode(field, targetLanguage string) (string, error) {
	fm, err := r.GetFieldMapping(field)
	if err != nil {
		return "", err
	}

	lang := strings.ToLower(targetLanguage)
	gen, ok := codeGenerators[lang]
	if !ok {
		return "", elxerrors.New(elxerrors.NotFound,
			fmt.Sprintf("no code template for language %q", targetLanguage))
	}

	comment := fmt.Sprintf("%s -> %s", fm.ConvergeField, fm.ElavonField)
	if fm.Transformation != "" {
		comment += fmt.Sprintf(" (rule: %s)", fm.Transformation)
	}
	return gen(fm, comment), nil
}

// SupportedLanguages lists the languages GenerateMigrationCode accepts.
func SupportedLanguages() []string {
	langs := make([]string, 0, len(codeGenerators))
	for l := range codeGenerators {
		langs = append(langs, l)
	}
	return langs
}

type generator func(fm *FieldMapping, comment string) string

var codeGenerators = map[string]generator{
	"javascript": generateJS,
	"typescript": generateJS,
	"php":        generatePHP,
	"python":     generatePython,
	"java":       generateJava,
	"csharp":     generateCSharp,
	"ruby":       generateRuby,
}

func generateJS(fm *FieldMapping, comment string) string {
	value := fmt.Sprintf("convergeRequest.%s", fm.ConvergeField)
	if fm.Transformation != "" {
		value = fmt.Sprintf("%s(%s)", camelCase("transform_"+fm.ConvergeField), value)
	}
	return fmt.Sprintf("elavonRequest[%q] = %s; // %s", fm.ElavonField, value, comment)
}

func generatePHP(fm *FieldMapping, comment string) string {
	value := fmt.Sprintf("$convergeRequest['%s']", fm.ConvergeField)
	if fm.Transformation != "" {
		value = fmt.Sprintf("%s(%s)", camelCase("transform_"+fm.ConvergeField), value)
	}
	return fmt.Sprintf("$elavonRequest['%s'] = %s; // %s", fm.ElavonField, value, comment)
}

func generatePython(fm *FieldMapping, comment string) string {
	value := fmt.Sprintf(`converge_request["%s"]`, fm.ConvergeField)
	if fm.Transformation != "" {
		value = fmt.Sprintf("transform_%s(%s)", fm.ConvergeField, value)
	}
	return fmt.Sprintf(`elavon_request["%s"] = %s  # %s`, fm.ElavonField, value, comment)
}

func generateJava(fm *FieldMapping, comment string) string {
	value := fmt.Sprintf("convergeRequest.get(%q)", fm.ConvergeField)
	if fm.Transformation != "" {
		value = fmt.Sprintf("%s(%s)", camelCase("transform_"+fm.ConvergeField), value)
	}
	return fmt.Sprintf("elavonRequest.put(%q, %s); // %s", fm.ElavonField, value, comment)
}

func generateCSharp(fm *FieldMapping, comment string) string {
	value := fmt.Sprintf("convergeRequest[%q]", fm.ConvergeField)
	if fm.Transformation != "" {
		value = fmt.Sprintf("%s(%s)", pascalCase("transform_"+fm.ConvergeField), value)
	}
	return fmt.Sprintf("elavonRequest[%q] = %s; // %s", fm.ElavonField, value, comment)
}

func generateRuby(fm *FieldMapping, comment string) string {
	value := fmt.Sprintf(`converge_request["%s"]`, fm.ConvergeField)
	if fm.Transformation != "" {
		value = fmt.Sprintf("transform_%s(%s)", fm.ConvergeField, value)
	}
	return fmt.Sprintf(`elavon_request["%s"] = %s # %s`, fm.ElavonField, value, comment)
}

// camelCase converts snake_case to camelCase: transform_ssl_amount ->
// transformSslAmount.
func camelCase(s string) string {
	parts := strings.Split(s, "_")
	for i := 1; i < len(parts); i++ {
		parts[i] = capitalize(parts[i])
	}
	return strings.Join(parts, "")
}

// pascalCase converts snake_case to PascalCase.
func pascalCase(s string) string {
	parts := strings.Split(s, "_")
	for i := range parts {
		parts[i] = capitalize(parts[i])
	}
	return strings.Join(parts, "")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
