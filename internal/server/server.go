package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/berge-project/berge/internal/api"
	"github.com/berge-project/berge/internal/config"
	"github.com/berge-project/berge/internal/datastore"
	"github.com/berge-project/berge/internal/home"
	"github.com/berge-project/berge/internal/livre"
	"github.com/berge-project/berge/internal/server/endpoints"
	"github.com/berge-project/berge/internal/summarize"
	"github.com/berge-project/berge/internal/svcctx"
)

// Server is the main Berge HTTP server. It connects to the hosted datastore
// on start and serves the curation API until the context is cancelled.
type Server struct {
	httpServer   *http.Server
	store        *datastore.Client
	orchestrator *summarize.Orchestrator
	sessions     *livre.SessionStore
	configMgr    *config.Manager
	homeDir      *home.Dir
	logger       *slog.Logger

	// services holds all core services for context enrichment
	services *svcctx.Services

	// endpoints registry for HTTP routes
	endpointRegistry *api.Registry

	mu      sync.RWMutex
	running bool
}

// Config holds server configuration.
type Config struct {
	// Host is the address to bind to (default: 127.0.0.1)
	Host string
	// Port is the port to listen on (default: 8585)
	Port string
	// Home is the berge home directory
	Home *home.Dir
	// ConfigManager provides configuration with hot-reload support
	ConfigManager *config.Manager
	// Logger is the structured logger to use
	Logger *slog.Logger
}

// New creates a new Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == "" {
		cfg.Port = "8585"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.ConfigManager == nil {
		return nil, errors.New("config manager is required")
	}

	appCfg := cfg.ConfigManager.Get()
	if appCfg.Datastore.URL == "" {
		return nil, errors.New("datastore.url is not configured")
	}

	s := &Server{
		store:     datastore.NewClient(appCfg.Datastore.URL, appCfg.DatastoreKey()),
		sessions:  livre.NewSessionStore(),
		configMgr: cfg.ConfigManager,
		homeDir:   cfg.Home,
		logger:    cfg.Logger,
	}

	orch, err := buildOrchestrator(appCfg, cfg.Logger)
	if err != nil {
		return nil, err
	}
	s.orchestrator = orch

	// Rebuild the summarizer when the config file changes.
	cfg.ConfigManager.OnChange(func(c *config.Config) {
		orch, err := buildOrchestrator(c, cfg.Logger)
		if err != nil {
			cfg.Logger.Error("config reload: summarizer rebuild failed", "error", err)
			return
		}
		s.mu.Lock()
		s.orchestrator = orch
		if s.services != nil {
			s.services.Orchestrator = orch
		}
		s.mu.Unlock()
		cfg.Logger.Info("summarizer reloaded from config", "provider", c.Summaries.Provider)
	})

	// Create endpoint registry and register all endpoints
	s.endpointRegistry = api.NewRegistry()
	for _, ep := range endpoints.All(endpoints.Config{SwaggerSpecPath: endpoints.GetSwaggerSpecPath()}) {
		s.endpointRegistry.Register(ep)
	}

	// Set up HTTP server
	mux := http.NewServeMux()
	s.endpointRegistry.RegisterRoutes(mux, s.requireInit)

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:      s.withServices(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	return s, nil
}

// buildOrchestrator wires the configured summarization provider into an
// orchestrator with the configured concurrency and per-call timeout.
func buildOrchestrator(cfg *config.Config, logger *slog.Logger) (*summarize.Orchestrator, error) {
	client, err := summarize.New(cfg.SummarizeConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create summarizer: %w", err)
	}
	return summarize.NewOrchestrator(client, summarize.OrchestratorConfig{
		Concurrency: cfg.Summaries.Concurrency,
		Timeout:     cfg.SummarizeTimeout(),
		Logger:      logger,
	}), nil
}

// Start starts the server. It blocks until the context is cancelled or an
// error occurs. The datastore must answer a health check before the API
// accepts requests.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()

	if s.homeDir != nil {
		if err := s.homeDir.EnsureExists(); err != nil {
			s.setNotRunning()
			return fmt.Errorf("failed to prepare home directory: %w", err)
		}
	}

	s.logger.Info("waiting for datastore")
	if err := s.store.WaitReady(ctx, 30*time.Second); err != nil {
		s.setNotRunning()
		return fmt.Errorf("datastore not reachable: %w", err)
	}
	s.logger.Info("datastore is ready")

	// Create services struct for context enrichment
	s.mu.Lock()
	s.services = &svcctx.Services{
		Store:        s.store,
		Orchestrator: s.orchestrator,
		Sessions:     s.sessions,
		ConfigMgr:    s.configMgr,
		Logger:       s.logger,
		Home:         s.homeDir,
	}
	s.mu.Unlock()

	// Start HTTP server in goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for context cancellation or error
	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			s.setNotRunning()
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	return s.shutdown()
}

// shutdown performs graceful shutdown of the HTTP server.
func (s *Server) shutdown() error {
	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
	}

	s.setNotRunning()
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) setNotRunning() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// IsRunning returns whether the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Store returns the datastore client.
func (s *Server) Store() *datastore.Client {
	return s.store
}

// Sessions returns the viewer session store.
func (s *Server) Sessions() *livre.SessionStore {
	return s.sessions
}

// Addr returns the server's listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// withServices wraps a handler to enrich the request context with services.
func (s *Server) withServices(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s.mu.RLock()
		services := s.services
		s.mu.RUnlock()
		if services != nil {
			ctx = svcctx.WithServices(ctx, services)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireInit is middleware that ensures the server is fully initialized.
// Returns 503 Service Unavailable until the datastore check has passed.
func (s *Server) requireInit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		ready := s.services != nil
		s.mu.RUnlock()
		if !ready {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"server not fully initialized"}`))
			return
		}
		next(w, r)
	}
}
