package endpoints

import (
	"context"
	"fmt"

	"github.com/berge-project/berge/internal/datastore"
	"github.com/berge-project/berge/internal/livre"
	"github.com/berge-project/berge/internal/svcctx"
)

// fetchExplorationTextes loads every texte of an exploration in marche
// date order, then reading order within each marche.
func fetchExplorationTextes(ctx context.Context, store *datastore.Client, explorationID string) ([]livre.Texte, error) {
	marches, err := store.ListMarches(ctx, datastore.Filter{ExplorationID: explorationID})
	if err != nil {
		return nil, fmt.Errorf("list marches: %w", err)
	}

	var textes []livre.Texte
	for _, m := range marches {
		rows, err := store.ListTextes(ctx, m.ID)
		if err != nil {
			return nil, fmt.Errorf("list textes for %s: %w", m.Nom, err)
		}
		for _, row := range rows {
			t := row.Texte()
			if t.MarcheNom == "" {
				t.MarcheNom = m.Nom
			}
			textes = append(textes, t)
		}
	}
	return textes, nil
}

// protectedNouns reads the configured protected nouns, tolerating a
// missing config manager in tests.
func protectedNouns(ctx context.Context) []string {
	cm := svcctx.ConfigMgrFrom(ctx)
	if cm == nil {
		return nil
	}
	return cm.Get().Export.ProtectedNouns
}
