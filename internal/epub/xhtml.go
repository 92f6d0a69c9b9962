package epub

import (
	"fmt"
	"strings"

	"github.com/berge-project/berge/internal/livre"
)

// generatePageXHTML renders one Livre Vivant page as an XHTML document.
func (b *Builder) generatePageXHTML(p livre.Page) string {
	var sb strings.Builder

	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml" xml:lang="fr">
<head>
  <title>`)
	sb.WriteString(escapeXML(navTitle(p)))
	sb.WriteString(`</title>
  <link rel="stylesheet" type="text/css" href="../styles/style.css"/>
</head>
<body>
`)

	switch d := p.Data.(type) {
	case livre.CoverData:
		writeCover(&sb, d)
	case livre.TOCData:
		writeTOC(&sb, d)
	case livre.PartieData:
		writePartie(&sb, d)
	case livre.TexteData:
		writeTexte(&sb, d.Texte)
	case livre.IndexLieuData:
		writeIndex(&sb, "Index des lieux", d.Entries)
	case livre.IndexGenreData:
		writeIndex(&sb, "Index des genres", d.Entries)
	}

	sb.WriteString("</body>\n</html>\n")
	return sb.String()
}

func writeCover(sb *strings.Builder, d livre.CoverData) {
	sb.WriteString("<div class=\"cover\">\n")
	sb.WriteString(fmt.Sprintf("  <h1>%s</h1>\n", escapeXML(d.Titre)))
	if d.SousTitre != "" {
		sb.WriteString(fmt.Sprintf("  <h2>%s</h2>\n", escapeXML(d.SousTitre)))
	}
	if d.Auteur != "" {
		sb.WriteString(fmt.Sprintf("  <p class=\"auteur\">%s</p>\n", escapeXML(d.Auteur)))
	}
	sb.WriteString("</div>\n")
}

func writeTOC(sb *strings.Builder, d livre.TOCData) {
	sb.WriteString("<h1>Sommaire</h1>\n<ol>\n")
	for _, e := range d.Entries {
		label := e.Titre
		if e.Genre != "" {
			label = fmt.Sprintf("%s (%s)", e.Titre, e.Genre)
		}
		sb.WriteString(fmt.Sprintf("  <li>%s</li>\n", escapeXML(label)))
	}
	sb.WriteString("</ol>\n")
}

func writePartie(sb *strings.Builder, d livre.PartieData) {
	sb.WriteString("<div class=\"partie\">\n")
	sb.WriteString(fmt.Sprintf("  <h1>%s</h1>\n", escapeXML(d.Nom)))
	sb.WriteString(fmt.Sprintf("  <p>%d textes</p>\n", d.NbTextes))
	sb.WriteString("</div>\n")
}

func writeTexte(sb *strings.Builder, t livre.Texte) {
	sb.WriteString(fmt.Sprintf("<h1>%s</h1>\n", escapeXML(t.Titre)))

	if t.Lieu != "" || t.Date != "" {
		parts := []string{}
		if t.Lieu != "" {
			parts = append(parts, t.Lieu)
		}
		if t.Date != "" {
			parts = append(parts, t.Date)
		}
		sb.WriteString(fmt.Sprintf("<p class=\"lieu-date\">%s</p>\n",
			escapeXML(strings.Join(parts, ", "))))
	}

	class := "prose"
	if isVerse(t.Type) {
		class = "verse"
	}

	for _, stanza := range strings.Split(t.Contenu, "\n\n") {
		stanza = strings.TrimSpace(stanza)
		if stanza == "" {
			continue
		}
		sb.WriteString(fmt.Sprintf("<div class=\"%s\">\n", class))
		if class == "verse" {
			for _, line := range strings.Split(stanza, "\n") {
				sb.WriteString(fmt.Sprintf("  <p>%s</p>\n", escapeXML(line)))
			}
		} else {
			sb.WriteString(fmt.Sprintf("  <p>%s</p>\n",
				escapeXML(strings.ReplaceAll(stanza, "\n", " "))))
		}
		sb.WriteString("</div>\n")
	}
}

func isVerse(t livre.TexteType) bool {
	switch t {
	case livre.TexteFormePoeme, livre.TexteFormeHaiku, livre.TexteFormeChanson:
		return true
	}
	return false
}

func writeIndex(sb *strings.Builder, title string, entries []livre.IndexEntry) {
	sb.WriteString(fmt.Sprintf("<h1>%s</h1>\n<dl class=\"index\">\n", escapeXML(title)))
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("  <dt>%s</dt>\n", escapeXML(e.Label)))
		pages := make([]string, len(e.PageNumbers))
		for i, n := range e.PageNumbers {
			pages[i] = fmt.Sprintf("%d", n)
		}
		sb.WriteString(fmt.Sprintf("  <dd>p. %s</dd>\n", strings.Join(pages, ", ")))
	}
	sb.WriteString("</dl>\n")
}
