package main

import (
	"github.com/spf13/cobra"

	"github.com/berge-project/berge/internal/server/endpoints"
)

var serverURL string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Commands that call the running server",
	Long: `API commands call the running Berge server via HTTP.

These commands require a running server (berge serve).
Use --server to specify a custom server URL.

Examples:
  berge api health                       # Check server health
  berge api explorations                 # List explorations
  berge api export export-manuscrit <id> --titre "..." --auteur "..."
  berge api livre open-livre <id>        # Open a Livre Vivant session`,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Document export commands",
}

var livreCmd = &cobra.Command{
	Use:   "livre",
	Short: "Livre Vivant viewer session commands",
}

// getServerURL returns the server URL at runtime (after flag parsing).
func getServerURL() string {
	return serverURL
}

func init() {
	// Add --server flag to api command (persistent so all subcommands inherit it)
	apiCmd.PersistentFlags().StringVar(
		&serverURL, "server", "http://localhost:8585", "Server URL",
	)

	// Health endpoints at top level of api
	apiCmd.AddCommand((&endpoints.HealthEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.ReadyEndpoint{}).Command(getServerURL))

	// Data browsing at top level of api
	apiCmd.AddCommand((&endpoints.ListExplorationsEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.GetExplorationEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.ListMarchesEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.ListTextesEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.PreviewTypoEndpoint{}).Command(getServerURL))

	// Exports as subcommand group
	for _, ep := range endpoints.ExportCommands() {
		exportCmd.AddCommand(ep.Command(getServerURL))
	}

	// Livre Vivant sessions as subcommand group
	for _, ep := range endpoints.LivreCommands() {
		livreCmd.AddCommand(ep.Command(getServerURL))
	}

	// OpenAPI spec
	apiCmd.AddCommand((&endpoints.SwaggerEndpoint{}).Command(getServerURL))

	apiCmd.AddCommand(exportCmd)
	apiCmd.AddCommand(livreCmd)
	rootCmd.AddCommand(apiCmd)
}
