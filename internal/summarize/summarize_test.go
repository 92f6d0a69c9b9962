package summarize

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOrchestrator_ResultsFollowInputOrder(t *testing.T) {
	mock := NewMock()
	mock.SummarizeFunc = func(ctx context.Context, req Request) (string, error) {
		// Finish later items first to prove ordering is by index.
		if req.MarcheNom == "Marche 0" {
			time.Sleep(30 * time.Millisecond)
		}
		return "résumé " + req.MarcheNom, nil
	}

	orch := NewOrchestrator(mock, OrchestratorConfig{})
	items := []Item{
		{MarcheNom: "Marche 0", Textes: []string{"a"}},
		{MarcheNom: "Marche 1", Textes: []string{"b"}},
		{MarcheNom: "Marche 2", Textes: []string{"c"}},
	}

	results := orch.Run(context.Background(), items, nil)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, want := range []string{"résumé Marche 0", "résumé Marche 1", "résumé Marche 2"} {
		if results[i] != want {
			t.Errorf("results[%d] = %q, want %q", i, results[i], want)
		}
	}
}

func TestOrchestrator_FailureIsolatedToItem(t *testing.T) {
	mock := NewMock()
	mock.SummarizeFunc = func(ctx context.Context, req Request) (string, error) {
		if req.MarcheNom == "Cassée" {
			return "", fmt.Errorf("backend unavailable")
		}
		return "ok", nil
	}

	orch := NewOrchestrator(mock, OrchestratorConfig{})
	items := []Item{
		{MarcheNom: "Bonne"},
		{MarcheNom: "Cassée"},
		{MarcheNom: "Encore bonne"},
	}

	results := orch.Run(context.Background(), items, nil)
	if results[0] != "ok" || results[2] != "ok" {
		t.Errorf("healthy items affected by failing sibling: %v", results)
	}
	if results[1] != FallbackResume {
		t.Errorf("failed item = %q, want fallback %q", results[1], FallbackResume)
	}
}

func TestOrchestrator_ConcurrencyBounded(t *testing.T) {
	var inFlight, peak int32
	mock := NewMock()
	mock.SummarizeFunc = func(ctx context.Context, req Request) (string, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return "ok", nil
	}

	orch := NewOrchestrator(mock, OrchestratorConfig{Concurrency: 3})
	items := make([]Item, 10)
	for i := range items {
		items[i] = Item{MarcheNom: fmt.Sprintf("m%d", i)}
	}

	orch.Run(context.Background(), items, nil)
	if p := atomic.LoadInt32(&peak); p > 3 {
		t.Errorf("peak concurrency = %d, want at most 3", p)
	}
}

func TestOrchestrator_ProgressFiresOncePerItem(t *testing.T) {
	mock := NewMock()
	orch := NewOrchestrator(mock, OrchestratorConfig{Concurrency: 1})

	var mu sync.Mutex
	seen := map[string]int{}
	totals := map[int]bool{}
	progress := func(current, total int, nom string) {
		mu.Lock()
		defer mu.Unlock()
		seen[nom]++
		totals[total] = true
	}

	items := []Item{{MarcheNom: "Un"}, {MarcheNom: "Deux"}, {MarcheNom: "Trois"}}
	orch.Run(context.Background(), items, progress)

	for _, item := range items {
		if seen[item.MarcheNom] != 1 {
			t.Errorf("progress for %q fired %d times, want 1", item.MarcheNom, seen[item.MarcheNom])
		}
	}
	if len(totals) != 1 || !totals[3] {
		t.Errorf("expected every progress call to report total=3, got %v", totals)
	}
}

func TestOrchestrator_TimeoutYieldsFallback(t *testing.T) {
	mock := NewMock()
	mock.SummarizeFunc = func(ctx context.Context, req Request) (string, error) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(time.Second):
			return "trop tard", nil
		}
	}

	orch := NewOrchestrator(mock, OrchestratorConfig{Timeout: 20 * time.Millisecond})
	results := orch.Run(context.Background(), []Item{{MarcheNom: "Lente"}}, nil)
	if results[0] != FallbackResume {
		t.Errorf("timed-out item = %q, want fallback", results[0])
	}
}

func TestOrchestrator_EmptyInput(t *testing.T) {
	orch := NewOrchestrator(NewMock(), OrchestratorConfig{})
	results := orch.Run(context.Background(), nil, nil)
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}

func TestParseResume(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "plain json", raw: `{"summary": "Une belle marche."}`, want: "Une belle marche."},
		{name: "fenced json", raw: "```json\n{\"summary\": \"Au bord du Loir.\"}\n```", want: "Au bord du Loir."},
		{name: "missing field", raw: `{"resume": "x"}`, wantErr: true},
		{name: "empty summary", raw: `{"summary": ""}`, wantErr: true},
		{name: "not json", raw: "voici le résumé", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseResume(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestServiceClient_Summarize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/functions/v1/resume-marche" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.MarcheNom != "Bord du Loir" || len(req.Textes) != 2 {
			t.Errorf("unexpected payload: %+v", req)
		}
		json.NewEncoder(w).Encode(map[string]string{"summary": "Deux textes au fil de l'eau."})
	}))
	defer srv.Close()

	client := NewServiceClient(Config{BaseURL: srv.URL, APIKey: "test-key"}, testLogger())
	got, err := client.Summarize(context.Background(), Request{
		MarcheNom: "Bord du Loir",
		Textes:    []string{"un", "deux"},
	})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if got != "Deux textes au fil de l'eau." {
		t.Errorf("got %q", got)
	}
}

func TestServiceClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewServiceClient(Config{BaseURL: srv.URL}, testLogger())
	_, err := client.Summarize(context.Background(), Request{MarcheNom: "X"})
	if err == nil {
		t.Fatal("expected error on non-200 status")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error should mention status code: %v", err)
	}
}

func TestNew_SelectsProvider(t *testing.T) {
	if _, err := New(Config{Provider: "mock"}, nil); err != nil {
		t.Errorf("mock provider: %v", err)
	}
	if _, err := New(Config{Provider: "openai"}, nil); err == nil {
		t.Error("openai without key should fail")
	}
	if _, err := New(Config{Provider: "service"}, nil); err == nil {
		t.Error("service without base URL should fail")
	}
	if _, err := New(Config{Provider: "autre"}, nil); err == nil {
		t.Error("unknown provider should fail")
	}
}
