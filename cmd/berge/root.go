package main

import (
	"github.com/spf13/cobra"

	"github.com/berge-project/berge/internal/api"
	"github.com/berge-project/berge/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "berge",
	Short: "Literary curation platform for river-walk writing",
	Long: `Berge curates the texts written during long river explorations on foot
and turns them into publishable documents.

It provides:
  - French typographic sanitization of every exported text
  - The Livre Vivant, a paginated book built from the walk texts
  - Manuscript (DOCX) and EPUB exports with publication conventions
  - A statistics report per exploration with AI-written walk summaries`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.berge/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "berge home directory (default: ~/.berge)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}
