// Package livre builds the "Livre Vivant" page sequence for an exploration
// and tracks reader navigation over it.
//
// Pages are generated once per (textes, options) pair and never mutated
// afterwards; any input change rebuilds the whole list so page numbering
// stays trivially correct.
package livre

import (
	"encoding/json"
	"fmt"
	"sort"
)

// TexteType is the closed set of literary forms a texte can take.
type TexteType string

const (
	TexteFormePoeme    TexteType = "poeme"
	TexteFormeHaiku    TexteType = "haiku"
	TexteFormeProse    TexteType = "prose"
	TexteFormeFragment TexteType = "fragment"
	TexteFormeChanson  TexteType = "chanson"
)

// Texte is an identified literary piece attached to a marche. Immutable for
// the purposes of pagination and export.
type Texte struct {
	ID        string    `json:"id"`
	Titre     string    `json:"titre"`
	Contenu   string    `json:"contenu"`
	Type      TexteType `json:"type"`
	MarcheID  string    `json:"marcheId"`
	MarcheNom string    `json:"marcheNom"`
	Partie    string    `json:"partie,omitempty"`
	Lieu      string    `json:"lieu,omitempty"`
	Date      string    `json:"date,omitempty"`
	Position  int       `json:"position"`
	Tags      []string  `json:"tags,omitempty"`
}

// PageType discriminates the page variants of the Livre Vivant.
type PageType string

const (
	PageCover      PageType = "cover"
	PageTOC        PageType = "toc"
	PagePartie     PageType = "partie"
	PageTexte      PageType = "texte"
	PageIndexLieu  PageType = "index-lieu"
	PageIndexGenre PageType = "index-genre"
)

// PageData is the payload of a page. Each PageType has exactly one concrete
// payload shape; renderers switch exhaustively over them.
type PageData interface {
	pageData()
}

// CoverData is the payload of a cover page.
type CoverData struct {
	Titre     string `json:"titre"`
	SousTitre string `json:"sousTitre,omitempty"`
	Auteur    string `json:"auteur,omitempty"`
}

// TOCEntry references a page from the table of contents.
type TOCEntry struct {
	Titre      string   `json:"titre"`
	Type       PageType `json:"type"`
	Genre      string   `json:"genre,omitempty"`
	PageNumber int      `json:"pageNumber"`
}

// TOCData is the payload of a table-of-contents page.
type TOCData struct {
	Entries []TOCEntry `json:"entries"`
}

// PartieData is the payload of a part-divider page.
type PartieData struct {
	Nom      string `json:"nom"`
	NbTextes int    `json:"nbTextes"`
}

// TexteData is the payload of a texte page.
type TexteData struct {
	Texte Texte `json:"texte"`
}

// IndexEntry maps a label to the pages it appears on.
type IndexEntry struct {
	Label       string `json:"label"`
	PageNumbers []int  `json:"pageNumbers"`
}

// IndexLieuData is the payload of the index-by-place page.
type IndexLieuData struct {
	Entries []IndexEntry `json:"entries"`
}

// IndexGenreData is the payload of the index-by-genre page.
type IndexGenreData struct {
	Entries []IndexEntry `json:"entries"`
}

func (CoverData) pageData()      {}
func (TOCData) pageData()        {}
func (PartieData) pageData()     {}
func (TexteData) pageData()      {}
func (IndexLieuData) pageData()  {}
func (IndexGenreData) pageData() {}

// Page is one page of the Livre Vivant viewer.
type Page struct {
	ID         string   `json:"id"`
	Type       PageType `json:"type"`
	Titre      string   `json:"titre"`
	PageNumber int      `json:"pageNumber"`
	Data       PageData `json:"data"`
}

// UnmarshalJSON decodes the data payload into the concrete shape named by
// the type discriminator, so pages sent over the API can be read back.
func (p *Page) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID         string          `json:"id"`
		Type       PageType        `json:"type"`
		Titre      string          `json:"titre"`
		PageNumber int             `json:"pageNumber"`
		Data       json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	p.ID = raw.ID
	p.Type = raw.Type
	p.Titre = raw.Titre
	p.PageNumber = raw.PageNumber
	p.Data = nil

	if len(raw.Data) == 0 || string(raw.Data) == "null" {
		return nil
	}

	switch raw.Type {
	case PageCover:
		var d CoverData
		if err := json.Unmarshal(raw.Data, &d); err != nil {
			return err
		}
		p.Data = d
	case PageTOC:
		var d TOCData
		if err := json.Unmarshal(raw.Data, &d); err != nil {
			return err
		}
		p.Data = d
	case PagePartie:
		var d PartieData
		if err := json.Unmarshal(raw.Data, &d); err != nil {
			return err
		}
		p.Data = d
	case PageTexte:
		var d TexteData
		if err := json.Unmarshal(raw.Data, &d); err != nil {
			return err
		}
		p.Data = d
	case PageIndexLieu:
		var d IndexLieuData
		if err := json.Unmarshal(raw.Data, &d); err != nil {
			return err
		}
		p.Data = d
	case PageIndexGenre:
		var d IndexGenreData
		if err := json.Unmarshal(raw.Data, &d); err != nil {
			return err
		}
		p.Data = d
	default:
		return fmt.Errorf("type de page inconnu: %q", raw.Type)
	}
	return nil
}

// Options controls which structural pages are generated.
type Options struct {
	Titre     string `json:"titre"`
	SousTitre string `json:"sousTitre,omitempty"`
	Auteur    string `json:"auteur,omitempty"`

	IncludeCover   bool `json:"includeCover"`
	IncludeTOC     bool `json:"includeTableOfContents"`
	IncludeParties bool `json:"includeParties"`
	IncludeIndexes bool `json:"includeIndexes"`
}

// MarcheGroup keeps the textes of one marche contiguous in stored order.
type MarcheGroup struct {
	MarcheID  string
	MarcheNom string
	Textes    []Texte
}

// PartieGroup is a stable partition of textes sharing the same partie.
// Textes without a partie form their own implicit group (empty Partie).
type PartieGroup struct {
	Partie  string
	Marches []MarcheGroup
}

// GroupByPartie partitions textes by partie, then by marche, preserving
// first-seen order at both levels and stored order within a marche.
func GroupByPartie(textes []Texte) []PartieGroup {
	var groups []PartieGroup
	partieIdx := make(map[string]int)

	for _, t := range textes {
		gi, ok := partieIdx[t.Partie]
		if !ok {
			gi = len(groups)
			partieIdx[t.Partie] = gi
			groups = append(groups, PartieGroup{Partie: t.Partie})
		}

		g := &groups[gi]
		mi := -1
		for i := range g.Marches {
			if g.Marches[i].MarcheID == t.MarcheID {
				mi = i
				break
			}
		}
		if mi < 0 {
			g.Marches = append(g.Marches, MarcheGroup{MarcheID: t.MarcheID, MarcheNom: t.MarcheNom})
			mi = len(g.Marches) - 1
		}
		g.Marches[mi].Textes = append(g.Marches[mi].Textes, t)
	}

	return groups
}

// BuildPages converts textes plus structural options into the ordered page
// sequence: cover, table of contents, then per partie a divider page followed
// by its textes grouped by marche, then the two indexes. Page numbers are
// assigned 1-based during this single traversal.
func BuildPages(textes []Texte, opts Options) []Page {
	var pages []Page
	push := func(p Page) {
		p.PageNumber = len(pages) + 1
		pages = append(pages, p)
	}

	if opts.IncludeCover {
		push(Page{
			ID:    "cover",
			Type:  PageCover,
			Titre: opts.Titre,
			Data:  CoverData{Titre: opts.Titre, SousTitre: opts.SousTitre, Auteur: opts.Auteur},
		})
	}

	tocIdx := -1
	if opts.IncludeTOC {
		push(Page{
			ID:    "toc",
			Type:  PageTOC,
			Titre: "Table des matières",
			Data:  TOCData{},
		})
		tocIdx = len(pages) - 1
	}

	for _, group := range GroupByPartie(textes) {
		if opts.IncludeParties && group.Partie != "" {
			n := 0
			for _, m := range group.Marches {
				n += len(m.Textes)
			}
			push(Page{
				ID:    "partie-" + group.Partie,
				Type:  PagePartie,
				Titre: group.Partie,
				Data:  PartieData{Nom: group.Partie, NbTextes: n},
			})
		}
		for _, marche := range group.Marches {
			for _, t := range marche.Textes {
				push(Page{
					ID:    "texte-" + t.ID,
					Type:  PageTexte,
					Titre: t.Titre,
					Data:  TexteData{Texte: t},
				})
			}
		}
	}

	if opts.IncludeIndexes {
		push(Page{
			ID:    "index-lieu",
			Type:  PageIndexLieu,
			Titre: "Index des lieux",
			Data:  IndexLieuData{Entries: buildIndex(pages, indexByLieu)},
		})
		push(Page{
			ID:    "index-genre",
			Type:  PageIndexGenre,
			Titre: "Index des genres",
			Data:  IndexGenreData{Entries: buildIndex(pages, indexByGenre)},
		})
	}

	if tocIdx >= 0 {
		pages[tocIdx].Data = TOCData{Entries: buildTOC(pages[tocIdx+1:])}
	}

	return pages
}

func buildTOC(pages []Page) []TOCEntry {
	var entries []TOCEntry
	for _, p := range pages {
		switch d := p.Data.(type) {
		case PartieData:
			entries = append(entries, TOCEntry{Titre: d.Nom, Type: PagePartie, PageNumber: p.PageNumber})
		case TexteData:
			entries = append(entries, TOCEntry{
				Titre:      d.Texte.Titre,
				Type:       PageTexte,
				Genre:      string(d.Texte.Type),
				PageNumber: p.PageNumber,
			})
		}
	}
	return entries
}

func indexByLieu(t Texte) string  { return t.Lieu }
func indexByGenre(t Texte) string { return string(t.Type) }

// buildIndex collects texte pages under the label selected by key, sorted
// alphabetically for deterministic output. Textes with an empty label are
// omitted.
func buildIndex(pages []Page, key func(Texte) string) []IndexEntry {
	byLabel := make(map[string][]int)
	for _, p := range pages {
		d, ok := p.Data.(TexteData)
		if !ok {
			continue
		}
		label := key(d.Texte)
		if label == "" {
			continue
		}
		byLabel[label] = append(byLabel[label], p.PageNumber)
	}

	labels := make([]string, 0, len(byLabel))
	for l := range byLabel {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	entries := make([]IndexEntry, 0, len(labels))
	for _, l := range labels {
		entries = append(entries, IndexEntry{Label: l, PageNumbers: byLabel[l]})
	}
	return entries
}

// Validate reports whether the page sequence upholds the numbering invariant.
// Used by tests and as a cheap guard before handing pages to a session.
func Validate(pages []Page) error {
	for i, p := range pages {
		if p.PageNumber != i+1 {
			return fmt.Errorf("page %d has number %d", i, p.PageNumber)
		}
	}
	return nil
}
