package stats

import (
	"fmt"
	"strings"

	"github.com/berge-project/berge/internal/datastore"
	"github.com/berge-project/berge/internal/docx"
)

// render assembles the DOCX: a portrait cover and synthesis section
// followed by a landscape table, one row per marche in source order.
func (b *Builder) render(expl *datastore.Exploration, rows []row) ([]byte, error) {
	builder := docx.NewBuilder(docx.Properties{
		Title:   expl.Nom + " — Statistiques",
		Creator: "Berge",
		Created: b.now().UTC(),
	})

	cover := builder.AddSection(false)
	cover.AddText("Title", docx.AlignCenter, expl.Nom)
	cover.AddText("Subtitle", docx.AlignCenter, "Statistiques des marches")
	cover.AddEmptyLine()
	cover.AddText("", docx.AlignCenter, b.now().Format("2 January 2006"))
	if expl.Description != "" {
		cover.AddEmptyLine()
		cover.AddText("", docx.AlignCenter, expl.Description)
	}

	writeSynthese(cover, rows)

	table := builder.AddSection(true)
	table.AddText("Heading1", docx.AlignLeft, "Détail des marches")
	table.AddTable(buildTable(rows))

	return builder.Bytes()
}

func writeSynthese(s *docx.Section, rows []row) {
	var textes, photos, audios int
	regions := map[string]bool{}
	departements := map[string]bool{}
	for _, r := range rows {
		textes += r.counts.Textes
		photos += r.counts.Photos
		audios += r.counts.Audios
		if r.marche.Region != "" {
			regions[r.marche.Region] = true
		}
		if r.marche.Departement != "" {
			departements[r.marche.Departement] = true
		}
	}

	s.AddPageBreak()
	s.AddText("Heading1", docx.AlignLeft, "Synthèse")
	s.AddText("", docx.AlignLeft, fmt.Sprintf("Marches réalisées : %d", len(rows)))
	s.AddText("", docx.AlignLeft, fmt.Sprintf("Textes écrits : %d", textes))
	s.AddText("", docx.AlignLeft, fmt.Sprintf("Photographies : %d", photos))
	s.AddText("", docx.AlignLeft, fmt.Sprintf("Enregistrements audio : %d", audios))
	s.AddText("", docx.AlignLeft, fmt.Sprintf("Régions traversées : %d", len(regions)))
	s.AddText("", docx.AlignLeft, fmt.Sprintf("Départements traversés : %d", len(departements)))
}

func buildTable(rows []row) docx.Table {
	t := docx.Table{
		Headers: []string{
			"#", "Région", "Département", "Commune", "Marche",
			"GPS", "Photos", "Textes", "Audio", "Résumé",
		},
		Widths: []int{400, 1200, 1200, 1200, 1600, 1400, 700, 700, 700, 5000},
	}
	for i, r := range rows {
		t.Rows = append(t.Rows, []string{
			fmt.Sprintf("%d", i+1),
			r.marche.Region,
			r.marche.Departement,
			r.marche.Commune,
			r.marche.Nom,
			formatGPS(r.marche.Latitude, r.marche.Longitude),
			fmt.Sprintf("%d", r.counts.Photos),
			fmt.Sprintf("%d", r.counts.Textes),
			fmt.Sprintf("%d", r.counts.Audios),
			r.resume,
		})
	}
	return t
}

func formatGPS(lat, lng float64) string {
	if lat == 0 && lng == 0 {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%.5f, %.5f", lat, lng))
}
