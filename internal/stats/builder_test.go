package stats

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/berge-project/berge/internal/datastore"
	"github.com/berge-project/berge/internal/summarize"
)

type fakeStore struct {
	exploration *datastore.Exploration
	marches     []datastore.Marche
	textes      map[string][]datastore.TexteRow
	counts      map[string]datastore.Counts
	failCounts  bool
}

func (f *fakeStore) GetExploration(ctx context.Context, id string) (*datastore.Exploration, error) {
	if f.exploration == nil {
		return nil, datastore.ErrNotFound
	}
	return f.exploration, nil
}

func (f *fakeStore) ListMarches(ctx context.Context, filter datastore.Filter) ([]datastore.Marche, error) {
	return f.marches, nil
}

func (f *fakeStore) ListTextes(ctx context.Context, marcheID string) ([]datastore.TexteRow, error) {
	return f.textes[marcheID], nil
}

func (f *fakeStore) GetMarcheCounts(ctx context.Context, marcheID string) (*datastore.Counts, error) {
	if f.failCounts {
		return nil, fmt.Errorf("counts unavailable")
	}
	c := f.counts[marcheID]
	return &c, nil
}

func testStore() *fakeStore {
	return &fakeStore{
		exploration: &datastore.Exploration{ID: "expl-1", Nom: "Le Loir à pied"},
		marches: []datastore.Marche{
			{ID: "m1", Nom: "Saint-Éman", Region: "Centre-Val de Loire",
				Departement: "Eure-et-Loir", Commune: "Saint-Éman",
				Date: "2024-04-01", Latitude: 48.36, Longitude: 1.17},
			{ID: "m2", Nom: "Illiers-Combray", Region: "Centre-Val de Loire",
				Departement: "Eure-et-Loir", Commune: "Illiers-Combray",
				Date: "2024-04-02"},
		},
		textes: map[string][]datastore.TexteRow{
			"m1": {{ID: "t1", Contenu: "La source sous les herbes."}},
		},
		counts: map[string]datastore.Counts{
			"m1": {Photos: 12, Textes: 1, Audios: 2},
			"m2": {Photos: 5},
		},
	}
}

func testBuilder(store Store, client summarize.Summarizer) *Builder {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	orch := summarize.NewOrchestrator(client, summarize.OrchestratorConfig{Logger: logger})
	b := NewBuilder(store, orch, logger)
	b.now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }
	return b
}

func docText(t *testing.T, data []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("not a zip: %v", err)
	}
	f, err := zr.Open("word/document.xml")
	if errors.Is(err, fs.ErrNotExist) {
		t.Fatal("word/document.xml missing")
	}
	if err != nil {
		t.Fatalf("open document.xml: %v", err)
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("read document.xml: %v", err)
	}
	return string(content)
}

func TestBuild_SummarizesOnlyMarchesWithTextes(t *testing.T) {
	mock := summarize.NewMock()
	mock.SummarizeFunc = func(ctx context.Context, req summarize.Request) (string, error) {
		return "Une marche vers la source.", nil
	}

	b := testBuilder(testStore(), mock)
	result, err := b.Build(context.Background(), "expl-1", nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	calls := mock.Calls()
	if len(calls) != 1 {
		t.Fatalf("summarizer called %d times, want 1", len(calls))
	}
	if calls[0].MarcheNom != "Saint-Éman" {
		t.Errorf("summarized %q, want the marche with textes", calls[0].MarcheNom)
	}

	doc := docText(t, result.DOCX)
	if !strings.Contains(doc, "Une marche vers la source.") {
		t.Error("document missing AI summary")
	}
	if !strings.Contains(doc, NoTexteResume) {
		t.Errorf("document missing %q for the empty marche", NoTexteResume)
	}
}

func TestBuild_FallbackOnSummarizerFailure(t *testing.T) {
	mock := summarize.NewMock()
	mock.SummarizeFunc = func(ctx context.Context, req summarize.Request) (string, error) {
		return "", fmt.Errorf("backend down")
	}

	b := testBuilder(testStore(), mock)
	result, err := b.Build(context.Background(), "expl-1", nil)
	if err != nil {
		t.Fatalf("Build should succeed despite summarizer failure: %v", err)
	}
	if !strings.Contains(docText(t, result.DOCX), summarize.FallbackResume) {
		t.Errorf("document missing fallback %q", summarize.FallbackResume)
	}
}

func TestBuild_DocumentContent(t *testing.T) {
	b := testBuilder(testStore(), summarize.NewMock())
	result, err := b.Build(context.Background(), "expl-1", nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	doc := docText(t, result.DOCX)

	for _, want := range []string{
		"Le Loir à pied",
		"Statistiques des marches",
		"Synthèse",
		"Marches réalisées : 2",
		"Textes écrits : 1",
		"Photographies : 17",
		"Régions traversées : 1",
		"Départements traversés : 1",
		"Illiers-Combray",
		"48.36000, 1.17000",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}

	// Landscape table section plus portrait cover section.
	if got := strings.Count(doc, "<w:pgSz"); got != 2 {
		t.Errorf("expected 2 page size declarations, got %d", got)
	}
	if !strings.Contains(doc, `w:orient="landscape"`) {
		t.Error("table section should be landscape")
	}

	if result.NbMarches != 2 {
		t.Errorf("NbMarches = %d, want 2", result.NbMarches)
	}
}

func TestBuild_RowOrderFollowsSource(t *testing.T) {
	b := testBuilder(testStore(), summarize.NewMock())
	result, err := b.Build(context.Background(), "expl-1", nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	doc := docText(t, result.DOCX)
	first := strings.Index(doc, "Saint-Éman")
	second := strings.Index(doc, "Illiers-Combray")
	if first == -1 || second == -1 || first > second {
		t.Errorf("rows out of order: Saint-Éman at %d, Illiers-Combray at %d", first, second)
	}
}

func TestBuild_ProgressForwarded(t *testing.T) {
	var mu sync.Mutex
	var names []string
	progress := func(current, total int, nom string) {
		mu.Lock()
		names = append(names, nom)
		mu.Unlock()
	}

	b := testBuilder(testStore(), summarize.NewMock())
	if _, err := b.Build(context.Background(), "expl-1", progress); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(names) != 1 || names[0] != "Saint-Éman" {
		t.Errorf("progress calls = %v, want one for the marche with textes", names)
	}
}

func TestBuild_FetchErrorAborts(t *testing.T) {
	store := testStore()
	store.failCounts = true
	b := testBuilder(store, summarize.NewMock())
	if _, err := b.Build(context.Background(), "expl-1", nil); err == nil {
		t.Fatal("expected error when counts fetch fails")
	}
}

func TestBuild_NoMarches(t *testing.T) {
	store := testStore()
	store.marches = nil
	b := testBuilder(store, summarize.NewMock())
	_, err := b.Build(context.Background(), "expl-1", nil)
	if !errors.Is(err, ErrNoMarches) {
		t.Fatalf("expected ErrNoMarches, got %v", err)
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		nom  string
		want string
	}{
		{"Le Loir à pied", "Le Loir à pied_statistiques_2026-03-10.docx"},
		{"L'Huisne (2024) !", "LHuisne 2024_statistiques_2026-03-10.docx"},
		{"Sarthe-Amont", "Sarthe-Amont_statistiques_2026-03-10.docx"},
	}
	for _, tc := range tests {
		if got := Filename(tc.nom, now); got != tc.want {
			t.Errorf("Filename(%q) = %q, want %q", tc.nom, got, tc.want)
		}
	}
}
