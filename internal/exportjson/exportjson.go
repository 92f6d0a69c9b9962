// Package exportjson serializes exploration content to the interchange
// JSON format consumed by external tools.
package exportjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrNoItems is returned when there is nothing to export.
var ErrNoItems = errors.New("no items to export")

// Metadata describes one export file.
type Metadata struct {
	ExportDate    string         `json:"exportDate"`
	Type          string         `json:"type"`
	Scope         string         `json:"scope"`
	TotalItems    int            `json:"totalItems"`
	ExportOptions map[string]any `json:"exportOptions,omitempty"`
}

// Document is the top-level export payload.
type Document struct {
	Metadata Metadata `json:"metadata"`
	Items    []any    `json:"items"`
}

// Options controls an export.
type Options struct {
	// Type labels the exported records, e.g. "textes" or "marches".
	Type string
	// Selection is true when the export covers a hand-picked subset
	// rather than a whole exploration.
	Selection bool
	// Scope names what the export covers, e.g. an exploration name.
	Scope string
	// ExportOptions is echoed verbatim into the metadata block.
	ExportOptions map[string]any
}

// Result is a finished export.
type Result struct {
	JSON     []byte
	Filename string
}

// Export serializes items with their metadata envelope, indented with two
// spaces so the files diff cleanly under version control.
func Export(items []any, opts Options, now time.Time) (*Result, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	if opts.Type == "" {
		return nil, fmt.Errorf("export type is required")
	}

	scope := opts.Scope
	if scope == "" {
		scope = "all"
	}

	doc := Document{
		Metadata: Metadata{
			ExportDate:    now.UTC().Format(time.RFC3339),
			Type:          opts.Type,
			Scope:         scope,
			TotalItems:    len(items),
			ExportOptions: opts.ExportOptions,
		},
		Items: items,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}

	return &Result{
		JSON:     append(data, '\n'),
		Filename: Filename(opts.Type, opts.Selection, now),
	}, nil
}

// Filename builds the export file name: `<type>_export_<date>.json`, with
// a `_selection` marker for subset exports.
func Filename(typ string, selection bool, now time.Time) string {
	if selection {
		return fmt.Sprintf("%s_export_selection_%s.json", typ, now.Format("2006-01-02"))
	}
	return fmt.Sprintf("%s_export_%s.json", typ, now.Format("2006-01-02"))
}
