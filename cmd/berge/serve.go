package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/berge-project/berge/internal/config"
	"github.com/berge-project/berge/internal/home"
	"github.com/berge-project/berge/internal/server"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Berge server",
	Long: `Start the Berge HTTP server.

The server connects to the hosted datastore and serves the curation API:
explorations, marches, typographic previews, Livre Vivant sessions and
document exports.

  - /health - Basic server health check
  - /ready  - Readiness check (includes datastore status)

Examples:
  berge serve                    # Start on default port 8585
  berge serve --port 3000        # Start on custom port
  berge serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Set up logger
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))

		// Get home directory
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		// Prefer the home config file when no explicit --config was given.
		configPath := cfgFile
		if configPath == "" && h.ConfigExists() {
			configPath = h.ConfigPath()
		}
		mgr, err := config.NewManager(configPath)
		if err != nil {
			return err
		}
		mgr.WatchConfig()

		host := serveHost
		port := servePort
		if !cmd.Flags().Changed("host") && mgr.Get().Server.Host != "" {
			host = mgr.Get().Server.Host
		}
		if !cmd.Flags().Changed("port") && mgr.Get().Server.Port != "" {
			port = mgr.Get().Server.Port
		}

		// Create server
		srv, err := server.New(server.Config{
			Host:          host,
			Port:          port,
			Home:          h,
			ConfigManager: mgr,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Host to bind to")
	serveCmd.Flags().StringVar(&servePort, "port", "8585", "Port to listen on")

	rootCmd.AddCommand(serveCmd)
}
