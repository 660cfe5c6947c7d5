package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"elavonx/internal/mapping"
)

var (
	searchLimit  int
	searchFormat string
)

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Fuzzy-search the mapping dictionary",
	Long: `Search field and endpoint mappings by name fragment.

Results are ranked by confidence: exact case-insensitive matches first,
then substring matches weighted by length ratio.

Examples:
  elavonx search ssl_amount
  elavonx search processxml --limit 5`,
	Args: cobra.ExactArgs(1),
	Run:  runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 20, "Maximum number of results")
	searchCmd.Flags().StringVar(&searchFormat, "format", "json", "Output format (json, human)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	logger := newLogger(searchFormat)
	term := args[0]
	resolver := getResolver(mustGetRoot(), logger)

	results, err := resolver.SearchMappings(term)
	if err != nil {
		fail(err)
	}

	total := len(results)
	if searchLimit > 0 && len(results) > searchLimit {
		results = results[:searchLimit]
	}

	resp := &SearchResponseCLI{
		Term:         term,
		TotalMatches: total,
		Results:      results,
	}
	output, err := FormatResponse(resp, OutputFormat(searchFormat))
	if err != nil {
		fail(err)
	}
	fmt.Println(output)
}

// SearchResponseCLI contains mapping search results for CLI output
type SearchResponseCLI struct {
	Term         string                `json:"term"`
	TotalMatches int                   `json:"totalMatches"`
	Results      []mapping.SearchResult `json:"results"`
}
