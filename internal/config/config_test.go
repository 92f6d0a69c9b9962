package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/berge-project/berge/internal/summarize"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Summaries.Provider != "openai" {
		t.Errorf("default provider = %q", cfg.Summaries.Provider)
	}
	if cfg.Summaries.Concurrency != 3 {
		t.Errorf("default concurrency = %d, want 3", cfg.Summaries.Concurrency)
	}
	if cfg.Summaries.TimeoutSeconds != 60 {
		t.Errorf("default timeout = %d, want 60", cfg.Summaries.TimeoutSeconds)
	}
	if cfg.Summaries.APIKey != "${OPENAI_API_KEY}" {
		t.Error("expected openai API key placeholder")
	}
	if cfg.ServerAddr() != "localhost:8585" {
		t.Errorf("ServerAddr = %q", cfg.ServerAddr())
	}
}

func TestResolveEnvVars(t *testing.T) {
	t.Run("resolves environment variable", func(t *testing.T) {
		os.Setenv("TEST_API_KEY", "secret123")
		defer os.Unsetenv("TEST_API_KEY")

		result := ResolveEnvVars("${TEST_API_KEY}")
		if result != "secret123" {
			t.Errorf("expected secret123, got %s", result)
		}
	})

	t.Run("returns empty for missing env var", func(t *testing.T) {
		result := ResolveEnvVars("${DEFINITELY_NOT_SET_12345}")
		if result != "" {
			t.Errorf("expected empty string, got %s", result)
		}
	})

	t.Run("leaves literal values unchanged", func(t *testing.T) {
		result := ResolveEnvVars("literal-value")
		if result != "literal-value" {
			t.Errorf("expected literal-value, got %s", result)
		}
	})
}

func TestNewManager_LoadsFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	configContent := `
datastore:
  url: https://data.example.com
summaries:
  provider: mock
  concurrency: 5
export:
  protected_nouns:
    - K'ta
    - Loir'ket
server:
  port: "9090"
`
	if err := os.WriteFile(configFile, []byte(configContent), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cm, err := NewManager(configFile)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	cfg := cm.Get()
	if cfg.Datastore.URL != "https://data.example.com" {
		t.Errorf("Datastore.URL = %q", cfg.Datastore.URL)
	}
	if cfg.Summaries.Provider != "mock" {
		t.Errorf("Summaries.Provider = %q", cfg.Summaries.Provider)
	}
	if cfg.Summaries.Concurrency != 5 {
		t.Errorf("Summaries.Concurrency = %d", cfg.Summaries.Concurrency)
	}
	if len(cfg.Export.ProtectedNouns) != 2 || cfg.Export.ProtectedNouns[0] != "K'ta" {
		t.Errorf("ProtectedNouns = %v", cfg.Export.ProtectedNouns)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %q", cfg.Server.Port)
	}
}

func TestSummarizeConfig_ResolvesKey(t *testing.T) {
	os.Setenv("TEST_SUMMARY_KEY", "sk-resolved")
	defer os.Unsetenv("TEST_SUMMARY_KEY")

	cfg := &Config{
		Summaries: SummariesCfg{
			Provider:  "openai",
			Model:     "gpt-4o-mini",
			APIKey:    "${TEST_SUMMARY_KEY}",
			RateLimit: 2.5,
		},
	}
	sc := cfg.SummarizeConfig()
	if sc.APIKey != "sk-resolved" {
		t.Errorf("APIKey = %q", sc.APIKey)
	}
	if sc.Model != "gpt-4o-mini" || sc.RateLimit != 2.5 {
		t.Errorf("config not carried: %+v", sc)
	}
}

func TestSummarizeTimeout(t *testing.T) {
	cfg := &Config{Summaries: SummariesCfg{TimeoutSeconds: 30}}
	if got := cfg.SummarizeTimeout(); got != 30*time.Second {
		t.Errorf("timeout = %v", got)
	}
	cfg.Summaries.TimeoutSeconds = 0
	if got := cfg.SummarizeTimeout(); got != summarize.DefaultTimeout {
		t.Errorf("zero timeout should fall back to default, got %v", got)
	}
}

func TestWriteDefault(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	content := string(data)
	if !strings.HasPrefix(content, "# Berge configuration") {
		t.Error("missing header comment")
	}
	for _, want := range []string{"datastore:", "summaries:", "server:", "${OPENAI_API_KEY}"} {
		if !strings.Contains(content, want) {
			t.Errorf("default config missing %q", want)
		}
	}
}
