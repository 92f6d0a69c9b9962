// Package docx generates Office Open XML word-processing documents.
//
// The container is an ordinary zip with hand-written XML parts, the same
// approach used for ePub generation: no external DOCX dependency, just
// archive/zip and generated WordprocessingML.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"time"
)

// Properties populate docProps/core.xml.
type Properties struct {
	Title       string
	Creator     string
	Description string
	Created     time.Time
}

// Align is a paragraph justification value.
type Align string

const (
	AlignLeft    Align = ""
	AlignCenter  Align = "center"
	AlignRight   Align = "right"
	AlignJustify Align = "both"
)

// Run is a styled span of text. Break emits a soft line break after the run,
// which keeps verse lines inside a single paragraph.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
	Break  bool
}

// Paragraph is one block of text with an optional named style.
// Valid styles are those defined in word/styles.xml: Title, Subtitle,
// Heading1, Heading2, Quote, or empty for body text.
type Paragraph struct {
	Style           string
	Align           Align
	Runs            []Run
	PageBreakBefore bool
}

// Table renders a bordered grid with a bold header row. Widths are column
// widths in twentieths of a point; when empty, columns share the page width.
type Table struct {
	Headers []string
	Rows    [][]string
	Widths  []int
}

// block is a body-level element of a section.
type block interface {
	render(sb *xmlWriter)
}

// Section is a run of blocks sharing page geometry. A landscape section
// swaps the A4 page dimensions.
type Section struct {
	landscape bool
	blocks    []block
}

// AddParagraph appends a paragraph block.
func (s *Section) AddParagraph(p Paragraph) {
	s.blocks = append(s.blocks, p)
}

// AddText appends a single-run paragraph.
func (s *Section) AddText(style string, align Align, text string) {
	s.AddParagraph(Paragraph{Style: style, Align: align, Runs: []Run{{Text: text}}})
}

// AddEmptyLine appends an empty paragraph.
func (s *Section) AddEmptyLine() {
	s.AddParagraph(Paragraph{})
}

// AddPageBreak appends an explicit page break.
func (s *Section) AddPageBreak() {
	s.blocks = append(s.blocks, pageBreak{})
}

// AddTable appends a table block.
func (s *Section) AddTable(t Table) {
	s.blocks = append(s.blocks, t)
}

type pageBreak struct{}

// Builder assembles a DOCX file from sections.
type Builder struct {
	props    Properties
	sections []*Section
}

// NewBuilder creates a builder with the given document properties.
func NewBuilder(props Properties) *Builder {
	if props.Created.IsZero() {
		props.Created = time.Now().UTC()
	}
	return &Builder{props: props}
}

// AddSection starts a new section and returns it for block appends.
func (b *Builder) AddSection(landscape bool) *Section {
	s := &Section{landscape: landscape}
	b.sections = append(b.sections, s)
	return s
}

// WriteTo writes the complete DOCX container to w.
func (b *Builder) WriteTo(w io.Writer) error {
	if len(b.sections) == 0 {
		return fmt.Errorf("document has no sections")
	}

	zw := zip.NewWriter(w)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", rootRelsXML},
		{"word/document.xml", b.generateDocument()},
		{"word/styles.xml", stylesXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"docProps/core.xml", b.generateCoreProps()},
		{"docProps/app.xml", appPropsXML},
	}

	for _, part := range parts {
		fw, err := zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", part.name, err)
		}
		if _, err := fw.Write([]byte(part.content)); err != nil {
			return fmt.Errorf("failed to write %s: %w", part.name, err)
		}
	}

	return zw.Close()
}

// Bytes generates the DOCX and returns it as a byte slice.
func (b *Builder) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := b.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
