package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"elavonx/internal/mapping"
)

var (
	generateLanguage string
	generateFormat   string
)

var generateCmd = &cobra.Command{
	Use:   "generate <ssl_field>",
	Short: "Generate a migration snippet for a field",
	Long: `Generate a one-line migration snippet translating a legacy field
assignment to its Elavon equivalent in the target language.

Supported languages: ` + strings.Join(mapping.SupportedLanguages(), ", ") + `

Examples:
  elavonx generate ssl_amount --language javascript
  elavonx generate ssl_exp_date --language python --format human`,
	Args: cobra.ExactArgs(1),
	Run:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateLanguage, "language", "javascript", "Target language")
	generateCmd.Flags().StringVar(&generateFormat, "format", "json", "Output format (json, human)")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) {
	logger := newLogger(generateFormat)
	resolver := getResolver(mustGetRoot(), logger)

	code, err := resolver.GenerateMigrationCode(args[0], generateLanguage)
	if err != nil {
		fail(err)
	}

	resp := &GenerateResponseCLI{
		Field:    args[0],
		Language: generateLanguage,
		Code:     code,
	}
	output, err := FormatResponse(resp, OutputFormat(generateFormat))
	if err != nil {
		fail(err)
	}
	fmt.Println(output)
}

// GenerateResponseCLI contains a generated snippet for CLI output
type GenerateResponseCLI struct {
	Field    string `json:"field"`
	Language string `json:"language"`
	Code     string `json:"code"`
}
