// Package epub renders the Livre Vivant page sequence as an EPUB 3 file.
package epub

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/berge-project/berge/internal/livre"
)

// Options carry the book metadata.
type Options struct {
	Titre      string
	SousTitre  string
	Auteur     string
	Editeur    string
	Identifier string // defaults to a fresh urn:uuid
	Modified   time.Time
}

// Builder creates EPUB 3 files from Livre Vivant pages.
type Builder struct {
	opts  Options
	pages []livre.Page
}

// NewBuilder creates a builder over an already generated page sequence.
func NewBuilder(opts Options, pages []livre.Page) *Builder {
	if opts.Identifier == "" {
		opts.Identifier = "urn:uuid:" + uuid.New().String()
	}
	if opts.Modified.IsZero() {
		opts.Modified = time.Now().UTC()
	}
	return &Builder{opts: opts, pages: pages}
}

// WriteTo writes the EPUB container to w. The mimetype entry comes first
// and uncompressed, as the format requires.
func (b *Builder) WriteTo(w io.Writer) error {
	if len(b.pages) == 0 {
		return fmt.Errorf("no pages to render")
	}

	zw := zip.NewWriter(w)
	defer zw.Close()

	if err := b.writeMimetype(zw); err != nil {
		return err
	}
	if err := writeEntry(zw, "META-INF/container.xml", containerXML); err != nil {
		return err
	}
	if err := writeEntry(zw, "OEBPS/content.opf", b.generatePackage()); err != nil {
		return err
	}
	if err := writeEntry(zw, "OEBPS/nav.xhtml", b.generateNavigation()); err != nil {
		return err
	}
	if err := writeEntry(zw, "OEBPS/toc.ncx", b.generateNCX()); err != nil {
		return err
	}
	if err := writeEntry(zw, "OEBPS/styles/style.css", stylesheet); err != nil {
		return err
	}
	for _, p := range b.pages {
		if err := writeEntry(zw, "OEBPS/pages/"+p.ID+".xhtml", b.generatePageXHTML(p)); err != nil {
			return fmt.Errorf("failed to write page %s: %w", p.ID, err)
		}
	}
	return nil
}

// Bytes generates the EPUB and returns it as a byte slice.
func (b *Builder) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := b.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (b *Builder) writeMimetype(zw *zip.Writer) error {
	header := &zip.FileHeader{
		Name:   "mimetype",
		Method: zip.Store,
	}
	w, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to create mimetype: %w", err)
	}
	_, err = w.Write([]byte("application/epub+zip"))
	return err
}

func writeEntry(zw *zip.Writer, name, content string) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	_, err = w.Write([]byte(content))
	return err
}

const containerXML = `<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`

// Filename builds the export file name from the exploration name, keeping
// letters, digits, spaces and hyphens.
func Filename(nom string, now time.Time) string {
	var b strings.Builder
	for _, r := range nom {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' {
			b.WriteRune(r)
		}
	}
	return fmt.Sprintf("%s_livre_vivant_%s.epub",
		strings.TrimSpace(b.String()), now.Format("2006-01-02"))
}

const stylesheet = `/* Livre Vivant */

body {
  font-family: Garamond, Georgia, serif;
  font-size: 1em;
  line-height: 1.7;
  margin: 1em;
}

h1, h2 {
  font-weight: normal;
  text-align: center;
  margin-top: 2em;
  margin-bottom: 1em;
}

p {
  margin: 0.4em 0;
}

.cover {
  text-align: center;
  margin-top: 5em;
}

.cover .auteur {
  margin-top: 3em;
  font-variant: small-caps;
}

.partie {
  text-align: center;
  margin-top: 8em;
  font-size: 1.3em;
}

.verse p {
  text-align: center;
  margin: 0;
}

.prose p {
  text-align: justify;
  text-indent: 1.5em;
}

.lieu-date {
  font-style: italic;
  text-align: right;
  font-size: 0.9em;
  margin-bottom: 2em;
}

.index dt {
  font-weight: bold;
  margin-top: 0.8em;
}
`
