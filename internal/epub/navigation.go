package epub

import (
	"fmt"
	"strings"

	"github.com/berge-project/berge/internal/livre"
)

// generateNavigation creates the nav.xhtml navigation document. Texte pages
// nest under their partie when parties are present.
func (b *Builder) generateNavigation() string {
	var sb strings.Builder

	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops">
<head>
  <title>Sommaire</title>
  <link rel="stylesheet" type="text/css" href="styles/style.css"/>
</head>
<body>
  <nav epub:type="toc" id="toc">
    <h1>Sommaire</h1>
    <ol>
`)

	var i int
	for i < len(b.pages) {
		p := b.pages[i]
		if p.Type == livre.PagePartie {
			sb.WriteString(fmt.Sprintf("      <li>\n        <a href=\"pages/%s.xhtml\">%s</a>\n",
				p.ID, escapeXML(navTitle(p))))
			var nested []livre.Page
			j := i + 1
			for j < len(b.pages) && b.pages[j].Type == livre.PageTexte {
				nested = append(nested, b.pages[j])
				j++
			}
			if len(nested) > 0 {
				sb.WriteString("        <ol>\n")
				for _, np := range nested {
					sb.WriteString("          ")
					sb.WriteString(navEntry(np))
				}
				sb.WriteString("        </ol>\n")
			}
			sb.WriteString("      </li>\n")
			i = j
			continue
		}
		sb.WriteString(navEntry(p))
		i++
	}

	sb.WriteString(`    </ol>
  </nav>
</body>
</html>
`)
	return sb.String()
}

func navEntry(p livre.Page) string {
	return fmt.Sprintf("      <li><a href=\"pages/%s.xhtml\">%s</a></li>\n",
		p.ID, escapeXML(navTitle(p)))
}

func navTitle(p livre.Page) string {
	if p.Titre != "" {
		return p.Titre
	}
	switch p.Type {
	case livre.PageCover:
		return "Couverture"
	case livre.PageTOC:
		return "Sommaire"
	case livre.PageIndexLieu:
		return "Index des lieux"
	case livre.PageIndexGenre:
		return "Index des genres"
	}
	return string(p.Type)
}

// generateNCX creates the toc.ncx for EPUB 2 readers.
func (b *Builder) generateNCX() string {
	var sb strings.Builder

	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<ncx xmlns="http://www.daisy.org/z3986/2005/ncx/" version="2005-1">
  <head>
    <meta name="dtb:uid" content="`)
	sb.WriteString(b.opts.Identifier)
	sb.WriteString(`"/>
    <meta name="dtb:depth" content="2"/>
    <meta name="dtb:totalPageCount" content="0"/>
    <meta name="dtb:maxPageNumber" content="0"/>
  </head>
  <docTitle>
    <text>`)
	sb.WriteString(escapeXML(b.opts.Titre))
	sb.WriteString(`</text>
  </docTitle>
  <navMap>
`)

	for i, p := range b.pages {
		sb.WriteString(fmt.Sprintf("    <navPoint id=\"navpoint-%d\" playOrder=\"%d\">\n", i+1, i+1))
		sb.WriteString(fmt.Sprintf("      <navLabel><text>%s</text></navLabel>\n", escapeXML(navTitle(p))))
		sb.WriteString(fmt.Sprintf("      <content src=\"pages/%s.xhtml\"/>\n", p.ID))
		sb.WriteString("    </navPoint>\n")
	}

	sb.WriteString(`  </navMap>
</ncx>
`)
	return sb.String()
}
