package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"elavonx/internal/mapping"
)

var fieldFormat string

var fieldCmd = &cobra.Command{
	Use:   "field <ssl_field>",
	Short: "Resolve a Converge field to its Elavon equivalent",
	Long: `Look up a single legacy field, case-insensitively. Endpoint-scoped
mappings take precedence over common fields.

Examples:
  elavonx field ssl_amount
  elavonx field SSL_MERCHANT_ID --format human`,
	Args: cobra.ExactArgs(1),
	Run:  runField,
}

func init() {
	fieldCmd.Flags().StringVar(&fieldFormat, "format", "json", "Output format (json, human)")
	rootCmd.AddCommand(fieldCmd)
}

func runField(cmd *cobra.Command, args []string) {
	logger := newLogger(fieldFormat)
	resolver := getResolver(mustGetRoot(), logger)

	fm, err := resolver.GetFieldMapping(args[0])
	if err != nil {
		fail(err)
	}

	output, err := FormatResponse(&FieldResponseCLI{Query: args[0], Mapping: fm}, OutputFormat(fieldFormat))
	if err != nil {
		fail(err)
	}
	fmt.Println(output)
}

// FieldResponseCLI contains a field lookup result for CLI output
type FieldResponseCLI struct {
	Query   string                `json:"query"`
	Mapping *mapping.FieldMapping `json:"mapping"`
}
