package summarize

import (
	"context"
	"fmt"
	"log/slog"
)

// Request carries everything a provider needs to summarize one marche.
type Request struct {
	MarcheNom string   `json:"marcheName"`
	Textes    []string `json:"textes"`
}

// Summarizer is implemented by every summarization backend.
type Summarizer interface {
	// Summarize returns a short French paragraph describing the marche.
	Summarize(ctx context.Context, req Request) (string, error)
	// Name identifies the provider in logs.
	Name() string
}

// Config selects and configures a summarization provider.
type Config struct {
	// Provider is one of "openai", "service" or "mock".
	Provider string
	// Model names the chat model for the openai provider.
	Model string
	// APIKey authenticates against the provider.
	APIKey string
	// BaseURL overrides the provider endpoint. Required for "service".
	BaseURL string
	// RateLimit caps outbound requests per second. Zero disables limiting.
	RateLimit float64
}

// New builds the provider named by cfg.Provider.
func New(cfg Config, logger *slog.Logger) (Summarizer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch cfg.Provider {
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		return NewOpenAIClient(cfg, logger), nil
	case "service":
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("service provider requires a base URL")
		}
		return NewServiceClient(cfg, logger), nil
	case "mock":
		return NewMock(), nil
	default:
		return nil, fmt.Errorf("unknown summaries provider %q", cfg.Provider)
	}
}
