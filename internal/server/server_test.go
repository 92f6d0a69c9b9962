package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/berge-project/berge/internal/config"
	"github.com/berge-project/berge/internal/svcctx"
)

func testConfigManager(t *testing.T) *config.Manager {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := `datastore:
  url: http://localhost:54321
summaries:
  provider: mock
server:
  host: 127.0.0.1
  port: "8585"
`
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	mgr, err := config.NewManager(path)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	return mgr
}

func TestNew_RequiresConfigManager(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("New() without config manager succeeded, want error")
	}
}

func TestNew_Defaults(t *testing.T) {
	srv, err := New(Config{ConfigManager: testConfigManager(t)})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if got := srv.Addr(); got != "127.0.0.1:8585" {
		t.Errorf("Addr() = %q, want 127.0.0.1:8585", got)
	}
	if srv.IsRunning() {
		t.Error("IsRunning() = true before Start")
	}
	if srv.Store() == nil {
		t.Error("Store() = nil")
	}
	if srv.Sessions() == nil {
		t.Error("Sessions() = nil")
	}
}

func TestRequireInit(t *testing.T) {
	srv, err := New(Config{ConfigManager: testConfigManager(t)})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	called := false
	handler := srv.requireInit(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/api/explorations", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status before init = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
	if called {
		t.Error("handler called before init")
	}

	srv.mu.Lock()
	srv.services = &svcctx.Services{Store: srv.store, Sessions: srv.sessions, Logger: srv.logger}
	srv.mu.Unlock()

	rec = httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/api/explorations", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status after init = %d, want %d", rec.Code, http.StatusOK)
	}
	if !called {
		t.Error("handler not called after init")
	}
}
