package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"elavonx/internal/mapping"
)

var endpointFormat string

var endpointCmd = &cobra.Command{
	Use:   "endpoint <path>",
	Short: "Resolve a Converge endpoint to its Elavon equivalent",
	Long: `Look up an endpoint mapping by path. Exact matches win; otherwise
bidirectional substring matching handles full URLs and path fragments.

Examples:
  elavonx endpoint /VirtualMerchant/processxml.do
  elavonx endpoint https://api.convergepay.com/hosted-payments/transaction_token`,
	Args: cobra.ExactArgs(1),
	Run:  runEndpoint,
}

func init() {
	endpointCmd.Flags().StringVar(&endpointFormat, "format", "json", "Output format (json, human)")
	rootCmd.AddCommand(endpointCmd)
}

func runEndpoint(cmd *cobra.Command, args []string) {
	logger := newLogger(endpointFormat)
	resolver := getResolver(mustGetRoot(), logger)

	ep, err := resolver.GetEndpointMapping(args[0])
	if err != nil {
		fail(err)
	}

	output, err := FormatResponse(&EndpointResponseCLI{Query: args[0], Mapping: ep}, OutputFormat(endpointFormat))
	if err != nil {
		fail(err)
	}
	fmt.Println(output)
}

// EndpointResponseCLI contains an endpoint lookup result for CLI output
type EndpointResponseCLI struct {
	Query   string                   `json:"query"`
	Mapping *mapping.EndpointMapping `json:"mapping"`
}
