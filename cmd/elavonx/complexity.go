package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"elavonx/internal/mapping"
)

var complexityFormat string

var complexityCmd = &cobra.Command{
	Use:   "complexity <ssl_field>...",
	Short: "Score the migration complexity of a field set",
	Long: `Score a set of legacy fields: 100 is trivial, lower is harder.
Unmapped fields and fields needing value transformations drag the score
down; the level buckets are low (>70), medium (40-70), and high (<40).

Examples:
  elavonx complexity ssl_merchant_id ssl_amount ssl_card_number
  elavonx complexity ssl_pin ssl_txn_id --format human`,
	Args: cobra.MinimumNArgs(1),
	Run:  runComplexity,
}

func init() {
	complexityCmd.Flags().StringVar(&complexityFormat, "format", "json", "Output format (json, human)")
	rootCmd.AddCommand(complexityCmd)
}

func runComplexity(cmd *cobra.Command, args []string) {
	logger := newLogger(complexityFormat)
	resolver := getResolver(mustGetRoot(), logger)

	report, err := resolver.GetMigrationComplexity(args)
	if err != nil {
		fail(err)
	}

	resp := &ComplexityResponseCLI{Fields: args, Report: report}
	output, err := FormatResponse(resp, OutputFormat(complexityFormat))
	if err != nil {
		fail(err)
	}
	fmt.Println(output)
}

// ComplexityResponseCLI contains a complexity report for CLI output
type ComplexityResponseCLI struct {
	Fields []string                 `json:"fields"`
	Report mapping.ComplexityReport `json:"report"`
}
