// Package stats assembles the statistics document of an exploration: one
// table row per marche with media counts, location and an AI summary of its
// textes.
package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/berge-project/berge/internal/datastore"
	"github.com/berge-project/berge/internal/summarize"
)

// NoTexteResume fills the summary column of a marche that produced no
// textes. Such marches never reach the summarizer.
const NoTexteResume = "Aucun texte disponible"

// ErrNoMarches is returned when the exploration has no marches to report.
var ErrNoMarches = errors.New("exploration has no marches")

// Store is the subset of the datastore client the builder reads from.
type Store interface {
	GetExploration(ctx context.Context, id string) (*datastore.Exploration, error)
	ListMarches(ctx context.Context, filter datastore.Filter) ([]datastore.Marche, error)
	ListTextes(ctx context.Context, marcheID string) ([]datastore.TexteRow, error)
	GetMarcheCounts(ctx context.Context, marcheID string) (*datastore.Counts, error)
}

// Result is a generated statistics document.
type Result struct {
	DOCX      []byte
	Filename  string
	NbMarches int
}

// Builder generates statistics documents.
type Builder struct {
	store  Store
	orch   *summarize.Orchestrator
	logger *slog.Logger
	now    func() time.Time
}

// NewBuilder creates a statistics builder over the given store and
// summarization orchestrator.
func NewBuilder(store Store, orch *summarize.Orchestrator, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		store:  store,
		orch:   orch,
		logger: logger.With("component", "stats"),
		now:    time.Now,
	}
}

// row is one marche with everything its table row needs.
type row struct {
	marche datastore.Marche
	counts datastore.Counts
	textes []string
	resume string
}

// Build fetches the exploration data, summarizes each marche and assembles
// the document. Any fetch or assembly error aborts the whole build; there
// is no partial document.
func (b *Builder) Build(ctx context.Context, explorationID string, progress summarize.ProgressFunc) (*Result, error) {
	expl, err := b.store.GetExploration(ctx, explorationID)
	if err != nil {
		return nil, fmt.Errorf("fetch exploration: %w", err)
	}

	marches, err := b.store.ListMarches(ctx, datastore.Filter{ExplorationID: explorationID})
	if err != nil {
		return nil, fmt.Errorf("fetch marches: %w", err)
	}
	if len(marches) == 0 {
		return nil, ErrNoMarches
	}

	rows := make([]row, len(marches))
	for i, m := range marches {
		counts, err := b.store.GetMarcheCounts(ctx, m.ID)
		if err != nil {
			return nil, fmt.Errorf("fetch counts for %s: %w", m.Nom, err)
		}
		textes, err := b.store.ListTextes(ctx, m.ID)
		if err != nil {
			return nil, fmt.Errorf("fetch textes for %s: %w", m.Nom, err)
		}
		rows[i] = row{marche: m, counts: *counts}
		for _, t := range textes {
			rows[i].textes = append(rows[i].textes, t.Contenu)
		}
	}

	b.summarizeRows(ctx, rows, progress)

	doc, err := b.render(expl, rows)
	if err != nil {
		return nil, fmt.Errorf("assemble document: %w", err)
	}

	return &Result{
		DOCX:      doc,
		Filename:  Filename(expl.Nom, b.now()),
		NbMarches: len(rows),
	}, nil
}

// summarizeRows fills the resume field of every row. Marches without
// textes get the fixed placeholder and are excluded from the batch.
func (b *Builder) summarizeRows(ctx context.Context, rows []row, progress summarize.ProgressFunc) {
	var items []summarize.Item
	var indices []int
	for i := range rows {
		if len(rows[i].textes) == 0 {
			rows[i].resume = NoTexteResume
			continue
		}
		items = append(items, summarize.Item{
			MarcheNom: rows[i].marche.Nom,
			Textes:    rows[i].textes,
		})
		indices = append(indices, i)
	}

	if len(items) == 0 {
		return
	}

	summaries := b.orch.Run(ctx, items, progress)
	for k, idx := range indices {
		rows[idx].resume = summaries[k]
	}
}

// Filename builds the export file name from the exploration name. Letters
// (accented included), digits, spaces and hyphens are kept; everything else
// is dropped.
func Filename(nom string, now time.Time) string {
	return fmt.Sprintf("%s_statistiques_%s.docx",
		sanitizeName(nom), now.Format("2006-01-02"))
}

func sanitizeName(nom string) string {
	var b strings.Builder
	for _, r := range nom {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
