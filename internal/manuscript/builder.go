// Package manuscript builds the submission-ready DOCX export of an
// exploration's textes.
package manuscript

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/berge-project/berge/internal/docx"
	"github.com/berge-project/berge/internal/livre"
	"github.com/berge-project/berge/internal/typo"
)

// Validation errors raised before any document work starts.
var (
	ErrNoTextes = errors.New("aucun texte à exporter")
	ErrNoTitle  = errors.New("titre du manuscrit requis")
	ErrNoAuthor = errors.New("auteur du manuscrit requis")
)

// Options configure a manuscript export.
type Options struct {
	Titre     string `json:"titre"`
	SousTitre string `json:"sousTitre,omitempty"`
	Auteur    string `json:"auteur"`
	Adresse   string `json:"adresse,omitempty"`
	Email     string `json:"email,omitempty"`
	Telephone string `json:"telephone,omitempty"`

	IncludeCover          bool `json:"includeCover"`
	IncludeTOC            bool `json:"includeTableOfContents"`
	PageBreakBetweenTexts bool `json:"pageBreakBetweenTexts"`
	ShowLocationDate      bool `json:"showLocationDate"`

	Typo typo.Options `json:"typo"`
}

// Result is a completed manuscript export: the document bytes, the aggregate
// sanitization report (identical to what Preview returns for the same
// inputs), and the conventional filename.
type Result struct {
	DOCX     []byte      `json:"-"`
	Report   typo.Report `json:"report"`
	Filename string      `json:"filename"`
}

// Preview runs the sanitizer over every title and body without building a
// document. It shares the exact sanitization code path with Build, so the
// previewed counts are bit-identical to the export report.
func Preview(textes []livre.Texte, opts typo.Options) typo.Report {
	var report typo.Report
	for _, t := range textes {
		_, r := typo.Sanitize(t.Titre, opts)
		report.Add(r)
		_, r = typo.Sanitize(t.Contenu, opts)
		report.Add(r)
	}
	return report
}

// Build assembles the manuscript document. Validation failures surface
// before any assembly; assembly errors propagate and no partial file is
// returned.
func Build(textes []livre.Texte, opts Options) (*Result, error) {
	if len(textes) == 0 {
		return nil, ErrNoTextes
	}
	if strings.TrimSpace(opts.Titre) == "" {
		return nil, ErrNoTitle
	}
	if strings.TrimSpace(opts.Auteur) == "" {
		return nil, ErrNoAuthor
	}

	// Sanitize everything once so the TOC, the headings, and the bodies
	// all render the same corrected text, in the same order Preview
	// accumulates its report.
	var report typo.Report
	titres := make([]string, len(textes))
	contenus := make([]string, len(textes))
	for i, t := range textes {
		var r typo.Report
		titres[i], r = typo.Sanitize(t.Titre, opts.Typo)
		report.Add(r)
		contenus[i], r = typo.Sanitize(t.Contenu, opts.Typo)
		report.Add(r)
	}

	builder := docx.NewBuilder(docx.Properties{
		Title:   opts.Titre,
		Creator: opts.Auteur,
	})
	body := builder.AddSection(false)

	if opts.IncludeCover {
		writeCover(body, opts)
		body.AddPageBreak()
	}

	if opts.IncludeTOC {
		writeTOC(body, textes, titres)
		body.AddPageBreak()
	}

	for i, t := range textes {
		if i > 0 && opts.PageBreakBetweenTexts {
			body.AddPageBreak()
		}

		body.AddText("Heading1", docx.AlignLeft, titres[i])
		if opts.ShowLocationDate && (t.Lieu != "" || t.Date != "") {
			body.AddParagraph(docx.Paragraph{
				Style: "Quote",
				Runs:  []docx.Run{{Text: locationLine(t), Italic: true}},
			})
		}
		writeContenu(body, contenus[i], t.Type)
		body.AddEmptyLine()
	}

	data, err := builder.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to assemble manuscript: %w", err)
	}

	return &Result{
		DOCX:     data,
		Report:   report,
		Filename: Filename(opts.Titre, time.Now()),
	}, nil
}

func writeCover(s *docx.Section, opts Options) {
	s.AddText("Title", docx.AlignCenter, opts.Titre)
	if opts.SousTitre != "" {
		s.AddText("Subtitle", docx.AlignCenter, opts.SousTitre)
	}
	s.AddText("", docx.AlignCenter, opts.Auteur)

	var contact []string
	for _, line := range []string{opts.Adresse, opts.Email, opts.Telephone} {
		if line != "" {
			contact = append(contact, line)
		}
	}
	if len(contact) > 0 {
		s.AddEmptyLine()
		for _, line := range contact {
			s.AddText("", docx.AlignRight, line)
		}
	}
}

func writeTOC(s *docx.Section, textes []livre.Texte, titres []string) {
	s.AddText("Heading1", docx.AlignLeft, "Table des matières")
	for i, t := range textes {
		label := titres[i]
		if t.Type != "" {
			label = fmt.Sprintf("%s (%s)", titres[i], t.Type)
		}
		s.AddText("", docx.AlignLeft, label)
	}
}

// writeContenu lays out a texte body. Stanza breaks (blank lines) become
// paragraph boundaries; single newlines become soft line breaks so verse
// keeps its shape.
func writeContenu(s *docx.Section, contenu string, forme livre.TexteType) {
	align := docx.AlignJustify
	if forme == livre.TexteFormePoeme || forme == livre.TexteFormeHaiku || forme == livre.TexteFormeChanson {
		align = docx.AlignLeft
	}

	for _, stanza := range strings.Split(contenu, "\n\n") {
		lines := strings.Split(strings.TrimRight(stanza, "\n"), "\n")
		var runs []docx.Run
		for i, line := range lines {
			runs = append(runs, docx.Run{Text: line, Break: i < len(lines)-1})
		}
		s.AddParagraph(docx.Paragraph{Align: align, Runs: runs})
	}
}

func locationLine(t livre.Texte) string {
	switch {
	case t.Lieu != "" && t.Date != "":
		return t.Lieu + ", " + t.Date
	case t.Lieu != "":
		return t.Lieu
	default:
		return t.Date
	}
}

// Filename builds the conventional manuscript filename:
// MANUSCRIT_<title truncated to 20 chars, spaces underscored>_<ISO date>.docx
func Filename(titre string, now time.Time) string {
	name := strings.TrimSpace(titre)
	if len([]rune(name)) > 20 {
		name = string([]rune(name)[:20])
	}
	name = strings.ReplaceAll(name, " ", "_")
	return fmt.Sprintf("MANUSCRIT_%s_%s.docx", name, now.Format("2006-01-02"))
}
