package docx

import (
	"fmt"
	"strings"
)

// xmlWriter is a thin wrapper over strings.Builder for generated markup.
type xmlWriter struct {
	strings.Builder
}

func (w *xmlWriter) writef(format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}

// A4 page geometry in twentieths of a point, 2cm margins.
const (
	pageWidthPortrait  = 11906
	pageHeightPortrait = 16838
	pageMargin         = 1134
)

// generateDocument renders word/document.xml. Each section's blocks are
// followed by its sectPr: embedded in a trailing paragraph for intermediate
// sections, directly in the body for the last one.
func (b *Builder) generateDocument() string {
	var w xmlWriter
	w.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
`)

	for i, sec := range b.sections {
		for _, blk := range sec.blocks {
			blk.render(&w)
		}
		if i < len(b.sections)-1 {
			w.WriteString("<w:p><w:pPr>")
			writeSectPr(&w, sec.landscape)
			w.WriteString("</w:pPr></w:p>\n")
		} else {
			writeSectPr(&w, sec.landscape)
			w.WriteString("\n")
		}
	}

	w.WriteString("</w:body>\n</w:document>\n")
	return w.String()
}

func writeSectPr(w *xmlWriter, landscape bool) {
	width, height := pageWidthPortrait, pageHeightPortrait
	orient := ""
	if landscape {
		width, height = height, width
		orient = ` w:orient="landscape"`
	}
	w.writef(`<w:sectPr><w:pgSz w:w="%d" w:h="%d"%s/><w:pgMar w:top="%d" w:right="%d" w:bottom="%d" w:left="%d"/></w:sectPr>`,
		width, height, orient, pageMargin, pageMargin, pageMargin, pageMargin)
}

func (p Paragraph) render(w *xmlWriter) {
	w.WriteString("<w:p>")

	hasPr := p.Style != "" || p.Align != AlignLeft || p.PageBreakBefore
	if hasPr {
		w.WriteString("<w:pPr>")
		if p.Style != "" {
			w.writef(`<w:pStyle w:val="%s"/>`, escapeXML(p.Style))
		}
		if p.PageBreakBefore {
			w.WriteString("<w:pageBreakBefore/>")
		}
		if p.Align != AlignLeft {
			w.writef(`<w:jc w:val="%s"/>`, p.Align)
		}
		w.WriteString("</w:pPr>")
	}

	for _, r := range p.Runs {
		r.render(w)
	}

	w.WriteString("</w:p>\n")
}

func (r Run) render(w *xmlWriter) {
	w.WriteString("<w:r>")
	if r.Bold || r.Italic {
		w.WriteString("<w:rPr>")
		if r.Bold {
			w.WriteString("<w:b/>")
		}
		if r.Italic {
			w.WriteString("<w:i/>")
		}
		w.WriteString("</w:rPr>")
	}
	if r.Text != "" {
		w.writef(`<w:t xml:space="preserve">%s</w:t>`, escapeXML(r.Text))
	}
	if r.Break {
		w.WriteString("<w:br/>")
	}
	w.WriteString("</w:r>")
}

func (pageBreak) render(w *xmlWriter) {
	w.WriteString("<w:p><w:r><w:br w:type=\"page\"/></w:r></w:p>\n")
}

func (t Table) render(w *xmlWriter) {
	w.WriteString(`<w:tbl><w:tblPr><w:tblW w:w="5000" w:type="pct"/><w:tblBorders>` +
		`<w:top w:val="single" w:sz="4"/><w:left w:val="single" w:sz="4"/>` +
		`<w:bottom w:val="single" w:sz="4"/><w:right w:val="single" w:sz="4"/>` +
		`<w:insideH w:val="single" w:sz="4"/><w:insideV w:val="single" w:sz="4"/>` +
		`</w:tblBorders></w:tblPr>`)

	w.WriteString("<w:tblGrid>")
	for i := range t.Headers {
		width := 0
		if i < len(t.Widths) {
			width = t.Widths[i]
		}
		if width > 0 {
			w.writef(`<w:gridCol w:w="%d"/>`, width)
		} else {
			w.WriteString("<w:gridCol/>")
		}
	}
	w.WriteString("</w:tblGrid>\n")

	if len(t.Headers) > 0 {
		w.WriteString("<w:tr>")
		for _, h := range t.Headers {
			renderCell(w, h, true)
		}
		w.WriteString("</w:tr>\n")
	}

	for _, row := range t.Rows {
		w.WriteString("<w:tr>")
		for i := range t.Headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			renderCell(w, cell, false)
		}
		w.WriteString("</w:tr>\n")
	}

	w.WriteString("</w:tbl>\n")
}

func renderCell(w *xmlWriter, text string, header bool) {
	w.WriteString("<w:tc><w:p>")
	w.WriteString("<w:r>")
	if header {
		w.WriteString("<w:rPr><w:b/></w:rPr>")
	}
	w.writef(`<w:t xml:space="preserve">%s</w:t>`, escapeXML(text))
	w.WriteString("</w:r></w:p></w:tc>")
}

// escapeXML escapes special XML characters.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
