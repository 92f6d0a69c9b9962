package manuscript

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/berge-project/berge/internal/livre"
	"github.com/berge-project/berge/internal/typo"
)

func testTextes() []livre.Texte {
	return []livre.Texte{
		{ID: "t1", Titre: `L'aube sur le "gué"`, Contenu: "Premier vers\nsecond vers\n\nNouvelle strophe!", Type: livre.TexteFormePoeme, MarcheID: "m1", Lieu: "Brives", Date: "2025-06-01"},
		{ID: "t2", Titre: "Le passeur", Contenu: `Il dit: "j'attends la crue."`, Type: livre.TexteFormeProse, MarcheID: "m2"},
	}
}

func documentXML(t *testing.T, data []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("export is not a zip: %v", err)
	}
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
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
	}
	t.Fatal("word/document.xml missing")
	return ""
}

func TestBuild_ValidatesBeforeAssembly(t *testing.T) {
	_, err := Build(nil, Options{Titre: "T", Auteur: "A"})
	if !errors.Is(err, ErrNoTextes) {
		t.Fatalf("expected ErrNoTextes, got %v", err)
	}

	_, err = Build(testTextes(), Options{Auteur: "A"})
	if !errors.Is(err, ErrNoTitle) {
		t.Fatalf("expected ErrNoTitle, got %v", err)
	}

	_, err = Build(testTextes(), Options{Titre: "T", Auteur: "  "})
	if !errors.Is(err, ErrNoAuthor) {
		t.Fatalf("expected ErrNoAuthor, got %v", err)
	}
}

func TestBuild_ProducesDocumentWithSanitizedText(t *testing.T) {
	opts := Options{
		Titre:            "Rives du matin",
		Auteur:           "Collectif",
		IncludeCover:     true,
		IncludeTOC:       true,
		ShowLocationDate: true,
		Typo:             typo.AllRules(),
	}

	res, err := Build(testTextes(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.DOCX) == 0 {
		t.Fatal("empty document")
	}

	doc := documentXML(t, res.DOCX)
	if !strings.Contains(doc, "Rives du matin") {
		t.Fatal("cover title missing")
	}
	if !strings.Contains(doc, "Table des matières") {
		t.Fatal("TOC missing")
	}
	if !strings.Contains(doc, "j’attends") {
		t.Fatal("apostrophes not normalized in body")
	}
	if strings.Contains(doc, "j&apos;attends") {
		t.Fatal("straight apostrophe survived sanitization")
	}
	if !strings.Contains(doc, "«") {
		t.Fatal("guillemets missing from sanitized body")
	}
	if !strings.Contains(doc, "Brives, 2025-06-01") {
		t.Fatal("location/date line missing")
	}

	if res.Report.QuotesNormalized < 1 || res.Report.ApostrophesNormalized < 1 {
		t.Fatalf("sanitization report incomplete: %+v", res.Report)
	}
}

func TestBuild_TOCUsesSanitizedTitles(t *testing.T) {
	res, err := Build(testTextes(), Options{
		Titre:      "Rives du matin",
		Auteur:     "Collectif",
		IncludeTOC: true,
		Typo:       typo.AllRules(),
	})
	if err != nil {
		t.Fatal(err)
	}

	doc := documentXML(t, res.DOCX)
	if !strings.Contains(doc, "L’aube sur le «") || !strings.Contains(doc, "» (poeme)") {
		t.Fatal("TOC entry not sanitized")
	}
	if strings.Contains(doc, "L&apos;aube") {
		t.Fatal("straight apostrophe survived in TOC")
	}
}

func TestBuild_ReportMatchesPreview(t *testing.T) {
	rules := typo.AllRules()
	textes := testTextes()

	preview := Preview(textes, rules)
	res, err := Build(textes, Options{Titre: "T", Auteur: "A", Typo: rules})
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(preview, res.Report) {
		t.Fatalf("preview and export reports differ:\npreview: %+v\nexport:  %+v", preview, res.Report)
	}
}

func TestBuild_PageBreaksBetweenTexts(t *testing.T) {
	res, err := Build(testTextes(), Options{Titre: "T", Auteur: "A", PageBreakBetweenTexts: true})
	if err != nil {
		t.Fatal(err)
	}
	doc := documentXML(t, res.DOCX)
	if got := strings.Count(doc, `<w:br w:type="page"/>`); got != 1 {
		t.Fatalf("expected 1 page break between 2 texts, got %d", got)
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC)

	got := Filename("Rives du matin clair et long", now)
	want := "MANUSCRIT_Rives_du_matin_clair_2026-02-14.docx"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	if got := Filename("Court", now); got != "MANUSCRIT_Court_2026-02-14.docx" {
		t.Fatalf("short title: %q", got)
	}
}
