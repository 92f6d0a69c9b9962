package config

// Config holds berge configuration.
// Stored at: ~/.berge/config.yaml
type Config struct {
	Datastore DatastoreCfg `mapstructure:"datastore" yaml:"datastore"`
	Summaries SummariesCfg `mapstructure:"summaries" yaml:"summaries"`
	Export    ExportCfg    `mapstructure:"export" yaml:"export"`
	Server    ServerCfg    `mapstructure:"server" yaml:"server"`
}

// DatastoreCfg configures the hosted data collaborator.
type DatastoreCfg struct {
	URL    string `mapstructure:"url" yaml:"url"`
	APIKey string `mapstructure:"api_key" yaml:"api_key"` // supports ${ENV_VAR} syntax
}

// SummariesCfg configures AI summarization.
type SummariesCfg struct {
	Provider       string  `mapstructure:"provider" yaml:"provider"` // "openai", "service", "mock"
	Model          string  `mapstructure:"model" yaml:"model"`
	APIKey         string  `mapstructure:"api_key" yaml:"api_key"` // supports ${ENV_VAR} syntax
	BaseURL        string  `mapstructure:"base_url" yaml:"base_url"`
	RateLimit      float64 `mapstructure:"rate_limit" yaml:"rate_limit"` // requests per second
	TimeoutSeconds int     `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	Concurrency    int     `mapstructure:"concurrency" yaml:"concurrency"`
}

// ExportCfg configures document generation.
type ExportCfg struct {
	// ProtectedNouns are never altered by the typographic sanitizer.
	ProtectedNouns []string `mapstructure:"protected_nouns" yaml:"protected_nouns"`
}

// ServerCfg configures the HTTP server.
type ServerCfg struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port string `mapstructure:"port" yaml:"port"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Datastore: DatastoreCfg{
			URL:    "http://localhost:54321",
			APIKey: "${BERGE_DATASTORE_KEY}",
		},
		Summaries: SummariesCfg{
			Provider:       "openai",
			Model:          "gpt-4o-mini",
			APIKey:         "${OPENAI_API_KEY}",
			RateLimit:      3.0,
			TimeoutSeconds: 60,
			Concurrency:    3,
		},
		Export: ExportCfg{},
		Server: ServerCfg{
			Host: "localhost",
			Port: "8585",
		},
	}
}

// ServerAddr returns the host:port the server binds to.
func (c *Config) ServerAddr() string {
	return c.Server.Host + ":" + c.Server.Port
}
