package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
	"time"
)

func readPart(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("not a zip: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			t.Fatal(err)
		}
		return string(content)
	}
	t.Fatalf("part %s not found", name)
	return ""
}

func TestBuilder_ContainerParts(t *testing.T) {
	b := NewBuilder(Properties{Title: "Essai", Creator: "Autrice", Created: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)})
	b.AddSection(false).AddText("Title", AlignCenter, "Essai")

	data, err := b.Bytes()
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"word/document.xml",
		"word/styles.xml",
		"word/_rels/document.xml.rels",
		"docProps/core.xml",
		"docProps/app.xml",
	} {
		readPart(t, data, name)
	}

	core := readPart(t, data, "docProps/core.xml")
	if !strings.Contains(core, "<dc:title>Essai</dc:title>") {
		t.Fatalf("missing title in core props: %s", core)
	}
	if !strings.Contains(core, "2026-03-01T00:00:00Z") {
		t.Fatalf("missing created date: %s", core)
	}
}

func TestBuilder_EscapesUserText(t *testing.T) {
	b := NewBuilder(Properties{Title: "x"})
	b.AddSection(false).AddText("", AlignLeft, `Rive <gauche> & "droite"`)

	data, err := b.Bytes()
	if err != nil {
		t.Fatal(err)
	}

	doc := readPart(t, data, "word/document.xml")
	if strings.Contains(doc, "<gauche>") {
		t.Fatal("unescaped angle brackets in document.xml")
	}
	if !strings.Contains(doc, "Rive &lt;gauche&gt; &amp; &quot;droite&quot;") {
		t.Fatalf("expected escaped text, got: %s", doc)
	}
}

func TestBuilder_SectionsAndOrientation(t *testing.T) {
	b := NewBuilder(Properties{Title: "x"})
	b.AddSection(false).AddText("", AlignLeft, "portrait")
	landscape := b.AddSection(true)
	landscape.AddTable(Table{
		Headers: []string{"Nom", "Commune"},
		Rows:    [][]string{{"Gué de Brives", "Brives"}},
	})

	data, err := b.Bytes()
	if err != nil {
		t.Fatal(err)
	}

	doc := readPart(t, data, "word/document.xml")
	if !strings.Contains(doc, `w:orient="landscape"`) {
		t.Fatal("landscape section not marked")
	}
	if !strings.Contains(doc, `<w:pgSz w:w="16838" w:h="11906"`) {
		t.Fatal("landscape page size not swapped")
	}
	if !strings.Contains(doc, "Gué de Brives") {
		t.Fatal("table row missing")
	}
	// Two sections produce one embedded sectPr paragraph plus the final one.
	if got := strings.Count(doc, "<w:sectPr>"); got != 2 {
		t.Fatalf("expected 2 sectPr, got %d", got)
	}
}

func TestBuilder_PageBreakAndRuns(t *testing.T) {
	b := NewBuilder(Properties{Title: "x"})
	s := b.AddSection(false)
	s.AddParagraph(Paragraph{Runs: []Run{
		{Text: "ligne une", Break: true},
		{Text: "ligne deux", Italic: true},
	}})
	s.AddPageBreak()
	s.AddText("Heading1", AlignLeft, "Chapitre")

	data, err := b.Bytes()
	if err != nil {
		t.Fatal(err)
	}

	doc := readPart(t, data, "word/document.xml")
	if !strings.Contains(doc, `<w:br w:type="page"/>`) {
		t.Fatal("page break missing")
	}
	if !strings.Contains(doc, "<w:i/>") {
		t.Fatal("italic run property missing")
	}
	if !strings.Contains(doc, `<w:pStyle w:val="Heading1"/>`) {
		t.Fatal("heading style missing")
	}
}

func TestBuilder_NoSections(t *testing.T) {
	b := NewBuilder(Properties{})
	if _, err := b.Bytes(); err == nil {
		t.Fatal("expected error for empty document")
	}
}
