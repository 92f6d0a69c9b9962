package datastore

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHealthCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/v1/health" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	if err := client.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}
}

func TestHealthCheck_Unhealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	err := client.HealthCheck(context.Background())
	if !errors.Is(err, ErrUnhealthy) {
		t.Fatalf("expected ErrUnhealthy, got %v", err)
	}
}

func TestWaitReady_RecoversAfterFailures(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	if err := client.WaitReady(context.Background(), 10*time.Second); err != nil {
		t.Fatalf("WaitReady: %v", err)
	}
	if calls < 3 {
		t.Errorf("expected at least 3 health checks, got %d", calls)
	}
}

func TestGetExploration(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.URL.Query().Get("id"); got != "eq.expl-1" {
			t.Errorf("id filter = %q", got)
		}
		json.NewEncoder(w).Encode([]Exploration{{ID: "expl-1", Nom: "Le Loir"}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret")
	expl, err := client.GetExploration(context.Background(), "expl-1")
	if err != nil {
		t.Fatalf("GetExploration: %v", err)
	}
	if expl.Nom != "Le Loir" {
		t.Errorf("Nom = %q", expl.Nom)
	}
}

func TestGetExploration_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]Exploration{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	_, err := client.GetExploration(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListMarches_FilterAndOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("exploration_id"); got != "eq.expl-1" {
			t.Errorf("exploration_id = %q", got)
		}
		if got := q.Get("region"); got != "eq.Centre-Val de Loire" {
			t.Errorf("region = %q", got)
		}
		// Deliberately out of order; the client must re-sort by date.
		json.NewEncoder(w).Encode([]Marche{
			{ID: "m2", Nom: "Deuxième", Date: "2024-06-02"},
			{ID: "m1", Nom: "Première", Date: "2024-06-01"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	marches, err := client.ListMarches(context.Background(), Filter{
		ExplorationID: "expl-1",
		Region:        "Centre-Val de Loire",
	})
	if err != nil {
		t.Fatalf("ListMarches: %v", err)
	}
	if len(marches) != 2 {
		t.Fatalf("expected 2 marches, got %d", len(marches))
	}
	if marches[0].ID != "m1" || marches[1].ID != "m2" {
		t.Errorf("marches not date-ascending: %s, %s", marches[0].ID, marches[1].ID)
	}
}

func TestListTextes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("marche_id"); got != "eq.m1" {
			t.Errorf("marche_id = %q", got)
		}
		if got := q.Get("order"); got != "ordre.asc" {
			t.Errorf("order = %q", got)
		}
		json.NewEncoder(w).Encode([]TexteRow{
			{ID: "t1", Titre: "Brumes", Type: "poeme", Ordre: 1},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	textes, err := client.ListTextes(context.Background(), "m1")
	if err != nil {
		t.Fatalf("ListTextes: %v", err)
	}
	if len(textes) != 1 || textes[0].Titre != "Brumes" {
		t.Errorf("unexpected textes: %+v", textes)
	}
}

func TestGetMarcheCounts_EmptyDefaultsToZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]Counts{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	counts, err := client.GetMarcheCounts(context.Background(), "m1")
	if err != nil {
		t.Fatalf("GetMarcheCounts: %v", err)
	}
	if counts.Photos != 0 || counts.Textes != 0 || counts.Audios != 0 {
		t.Errorf("expected zero counts, got %+v", counts)
	}
}

func TestTexteRow_Texte(t *testing.T) {
	row := TexteRow{
		ID:        "t1",
		MarcheID:  "m1",
		MarcheNom: "Bord du Loir",
		Titre:     "Brumes",
		Contenu:   "Sur la rive",
		Type:      "haiku",
		Lieu:      "Vendôme",
		Date:      "2024-06-01",
		Ordre:     4,
	}
	texte := row.Texte()
	if texte.Type != "haiku" || texte.MarcheNom != "Bord du Loir" || texte.Position != 4 {
		t.Errorf("conversion lost fields: %+v", texte)
	}
}
