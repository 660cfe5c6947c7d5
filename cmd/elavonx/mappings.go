package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"elavonx/internal/mapping"
)

var (
	mappingsReload bool
	mappingsFormat string
)

var mappingsCmd = &cobra.Command{
	Use:   "mappings",
	Short: "Show mapping dictionary statistics",
	Long: `Show version and size statistics for the active mapping
dictionary. With --reload, the dictionary file is re-read first; a failed
reload keeps the previously loaded dictionary.

Examples:
  elavonx mappings
  elavonx mappings --reload --dictionary custom-mappings.json`,
	Run: runMappings,
}

func init() {
	mappingsCmd.Flags().BoolVar(&mappingsReload, "reload", false, "Re-read the dictionary file first")
	mappingsCmd.Flags().StringVar(&mappingsFormat, "format", "json", "Output format (json, human)")
	rootCmd.AddCommand(mappingsCmd)
}

func runMappings(cmd *cobra.Command, args []string) {
	logger := newLogger(mappingsFormat)
	resolver := getResolver(mustGetRoot(), logger)

	if mappingsReload {
		if _, err := resolver.Reload(); err != nil {
			fail(err)
		}
	}

	stats, err := resolver.Stats()
	if err != nil {
		fail(err)
	}

	resp := &MappingsResponseCLI{Stats: stats, Reloaded: mappingsReload}
	output, err := FormatResponse(resp, OutputFormat(mappingsFormat))
	if err != nil {
		fail(err)
	}
	fmt.Println(output)
}

// MappingsResponseCLI contains dictionary statistics for CLI output
type MappingsResponseCLI struct {
	Stats    mapping.Stats `json:"stats"`
	Reloaded bool          `json:"reloaded,omitempty"`
}
