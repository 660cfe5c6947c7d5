package main

import (
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var (
	rootFlag       string
	dictionaryFlag string
	logLevelFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "elavonx",
	Short: "elavonx - Converge to Elavon migration analyzer",
	Long: `elavonx discovers legacy Converge payment API usage across a source
tree, classifies each usage by endpoint family, and resolves fields and
endpoints against the Converge-to-Elavon mapping dictionary.`,
	Version: version,
}

func init() {
	rootCmd.SetVersionTemplate("elavonx version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "",
		"Workspace root (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&dictionaryFlag, "dictionary", "",
		"Mapping dictionary JSON path (default: embedded dictionary)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "info",
		"Log level: debug, info, warn, error")
}
