package endpoints

import (
	"github.com/berge-project/berge/internal/api"
)

// Config holds dependencies needed by some endpoints.
type Config struct {
	SwaggerSpecPath string
}

// All returns all endpoint instances.
func All(cfg Config) []api.Endpoint {
	return []api.Endpoint{
		// Health endpoints
		&HealthEndpoint{},
		&ReadyEndpoint{},

		// Exploration endpoints
		&ListExplorationsEndpoint{},
		&GetExplorationEndpoint{},

		// Marche endpoints
		&ListMarchesEndpoint{},
		&ListTextesEndpoint{},

		// Typography preview
		&PreviewTypoEndpoint{},

		// Export endpoints
		&ExportManuscritEndpoint{},
		&DownloadManuscritEndpoint{},
		&ExportStatistiquesEndpoint{},
		&DownloadStatistiquesEndpoint{},
		&ExportJSONEndpoint{},
		&DownloadJSONEndpoint{},
		&ExportEPUBEndpoint{},
		&DownloadEPUBEndpoint{},

		// Livre Vivant viewer sessions
		&CreateSessionEndpoint{},
		&GetSessionEndpoint{},
		&NavigateSessionEndpoint{},
		&CloseSessionEndpoint{},

		// Swagger/OpenAPI endpoints
		&SwaggerEndpoint{SpecPath: cfg.SwaggerSpecPath},
		&SwaggerUIEndpoint{},
	}
}

// ExportCommands returns endpoints for export operations.
// This groups export-related commands under "export" subcommand.
func ExportCommands() []api.Endpoint {
	return []api.Endpoint{
		&ExportManuscritEndpoint{},
		&DownloadManuscritEndpoint{},
		&ExportStatistiquesEndpoint{},
		&DownloadStatistiquesEndpoint{},
		&ExportJSONEndpoint{},
		&DownloadJSONEndpoint{},
		&ExportEPUBEndpoint{},
		&DownloadEPUBEndpoint{},
	}
}

// LivreCommands returns endpoints for viewer session operations.
// This groups livre-related commands under "livre" subcommand.
func LivreCommands() []api.Endpoint {
	return []api.Endpoint{
		&CreateSessionEndpoint{},
		&GetSessionEndpoint{},
		&NavigateSessionEndpoint{},
		&CloseSessionEndpoint{},
	}
}
