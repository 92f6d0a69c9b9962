package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/berge-project/berge/internal/api"
	"github.com/berge-project/berge/internal/datastore"
	"github.com/berge-project/berge/internal/exportjson"
	"github.com/berge-project/berge/internal/svcctx"
)

// JSONExportRequest selects what to export as JSON.
type JSONExportRequest struct {
	// Type is "textes" or "marches".
	Type string `json:"type"`
	// TexteIDs restricts a textes export to a hand-picked selection.
	TexteIDs []string `json:"texte_ids,omitempty"`
	// ExportOptions is echoed into the document metadata.
	ExportOptions map[string]any `json:"export_options,omitempty"`
}

// JSONExportResponse is returned when a JSON export is generated.
type JSONExportResponse struct {
	ExplorationID string `json:"exploration_id"`
	Type          string `json:"type"`
	Filename      string `json:"filename"`
	FilePath      string `json:"file_path"`
	FileSize      int64  `json:"file_size"`
	TotalItems    int    `json:"total_items"`
	DownloadURL   string `json:"download_url"`
	CreatedAt     string `json:"created_at"`
}

// ExportJSONEndpoint handles POST /api/explorations/{exploration_id}/export/json.
type ExportJSONEndpoint struct{}

func (e *ExportJSONEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/explorations/{exploration_id}/export/json", e.handler
}

func (e *ExportJSONEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Export textes or marches as JSON
//	@Description	Serialize the exploration's textes or marches into a metadata-wrapped JSON document
//	@Tags			export
//	@Accept			json
//	@Produce		json
//	@Param			exploration_id	path		string				true	"Exploration ID"
//	@Param			request			body		JSONExportRequest	true	"Export selection"
//	@Success		200				{object}	JSONExportResponse
//	@Failure		400				{object}	ErrorResponse
//	@Failure		500				{object}	ErrorResponse
//	@Router			/api/explorations/{exploration_id}/export/json [post]
func (e *ExportJSONEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	explorationID := r.PathValue("exploration_id")
	if explorationID == "" {
		writeError(w, http.StatusBadRequest, "exploration_id is required")
		return
	}

	var req JSONExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.Type != "textes" && req.Type != "marches" {
		writeError(w, http.StatusBadRequest, "type must be \"textes\" or \"marches\"")
		return
	}

	ctx := r.Context()
	store := svcctx.StoreFrom(ctx)
	homeDir := svcctx.HomeFrom(ctx)
	if store == nil || homeDir == nil {
		writeError(w, http.StatusServiceUnavailable, "services not configured")
		return
	}

	expl, err := store.GetExploration(ctx, explorationID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, datastore.ErrNotFound) {
			status = http.StatusNotFound
		}
		writeError(w, status, fmt.Sprintf("failed to load exploration: %v", err))
		return
	}

	items, selection, err := collectExportItems(r, store, explorationID, req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := exportjson.Export(items, exportjson.Options{
		Type:          req.Type,
		Selection:     selection,
		Scope:         expl.Nom,
		ExportOptions: req.ExportOptions,
	}, time.Now().UTC())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, exportjson.ErrNoItems) {
			status = http.StatusBadRequest
		}
		writeError(w, status, fmt.Sprintf("failed to build export: %v", err))
		return
	}

	outputPath, size, err := writeExport(homeDir.ExportsDir(), explorationID, result.Filename, result.JSON)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, JSONExportResponse{
		ExplorationID: explorationID,
		Type:          req.Type,
		Filename:      result.Filename,
		FilePath:      outputPath,
		FileSize:      size,
		TotalItems:    len(items),
		DownloadURL:   fmt.Sprintf("/api/explorations/%s/export/json/download", explorationID),
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	})
}

// collectExportItems loads the records a JSON export covers. A textes export
// with TexteIDs keeps only the selected textes, in datastore order.
func collectExportItems(r *http.Request, store *datastore.Client, explorationID string, req JSONExportRequest) ([]any, bool, error) {
	ctx := r.Context()

	if req.Type == "marches" {
		marches, err := store.ListMarches(ctx, datastore.Filter{ExplorationID: explorationID})
		if err != nil {
			return nil, false, fmt.Errorf("failed to load marches: %v", err)
		}
		items := make([]any, 0, len(marches))
		for _, m := range marches {
			items = append(items, m)
		}
		return items, false, nil
	}

	textes, err := fetchExplorationTextes(ctx, store, explorationID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load textes: %v", err)
	}

	selection := len(req.TexteIDs) > 0
	if selection {
		wanted := make(map[string]bool, len(req.TexteIDs))
		for _, id := range req.TexteIDs {
			wanted[id] = true
		}
		kept := textes[:0]
		for _, t := range textes {
			if wanted[t.ID] {
				kept = append(kept, t)
			}
		}
		textes = kept
	}

	items := make([]any, 0, len(textes))
	for _, t := range textes {
		items = append(items, t)
	}
	return items, selection, nil
}

func (e *ExportJSONEndpoint) Command(getServerURL func() string) *cobra.Command {
	var exportType string
	cmd := &cobra.Command{
		Use:   "export-json <exploration_id>",
		Short: "Export textes or marches as a JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp JSONExportResponse
			path := fmt.Sprintf("/api/explorations/%s/export/json", args[0])
			if err := client.Post(cmd.Context(), path, JSONExportRequest{Type: exportType}, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&exportType, "type", "textes", "Export type (textes or marches)")
	return cmd
}

// DownloadJSONEndpoint handles GET /api/explorations/{exploration_id}/export/json/download.
type DownloadJSONEndpoint struct{}

func (e *DownloadJSONEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/explorations/{exploration_id}/export/json/download", e.handler
}

func (e *DownloadJSONEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Download the latest JSON export
//	@Tags			export
//	@Produce		json
//	@Param			exploration_id	path		string	true	"Exploration ID"
//	@Success		200				{file}		file
//	@Failure		404				{object}	ErrorResponse
//	@Router			/api/explorations/{exploration_id}/export/json/download [get]
func (e *DownloadJSONEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	serveExport(w, r, func(name string) bool {
		return strings.Contains(name, "_export") && strings.HasSuffix(name, ".json")
	}, "application/json")
}

func (e *DownloadJSONEndpoint) Command(getServerURL func() string) *cobra.Command {
	var outputPath string
	cmd := &cobra.Command{
		Use:   "download-json <exploration_id>",
		Short: "Download the latest JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			path := fmt.Sprintf("/api/explorations/%s/export/json/download", args[0])
			data, err := client.GetRaw(cmd.Context(), path)
			if err != nil {
				return err
			}
			if outputPath == "" {
				outputPath = fmt.Sprintf("export_%s.json", args[0])
			}
			if err := os.WriteFile(outputPath, data, 0o644); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			fmt.Printf("Downloaded to: %s\n", outputPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path")
	return cmd
}
