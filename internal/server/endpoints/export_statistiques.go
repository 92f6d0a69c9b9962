package endpoints

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/berge-project/berge/internal/api"
	"github.com/berge-project/berge/internal/datastore"
	"github.com/berge-project/berge/internal/stats"
	"github.com/berge-project/berge/internal/svcctx"
)

// StatistiquesResponse is returned when a statistics document is generated.
type StatistiquesResponse struct {
	ExplorationID string `json:"exploration_id"`
	Filename      string `json:"filename"`
	FilePath      string `json:"file_path"`
	FileSize      int64  `json:"file_size"`
	NbMarches     int    `json:"nb_marches"`
	DownloadURL   string `json:"download_url"`
	CreatedAt     string `json:"created_at"`
}

// ExportStatistiquesEndpoint handles POST /api/explorations/{exploration_id}/export/statistiques.
type ExportStatistiquesEndpoint struct{}

func (e *ExportStatistiquesEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/explorations/{exploration_id}/export/statistiques", e.handler
}

func (e *ExportStatistiquesEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Export the statistics document
//	@Description	Generate the DOCX statistics report of an exploration, including AI-generated summaries per marche
//	@Tags			export
//	@Produce		json
//	@Param			exploration_id	path		string	true	"Exploration ID"
//	@Success		200				{object}	StatistiquesResponse
//	@Failure		400				{object}	ErrorResponse
//	@Failure		404				{object}	ErrorResponse
//	@Failure		500				{object}	ErrorResponse
//	@Router			/api/explorations/{exploration_id}/export/statistiques [post]
func (e *ExportStatistiquesEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	explorationID := r.PathValue("exploration_id")
	if explorationID == "" {
		writeError(w, http.StatusBadRequest, "exploration_id is required")
		return
	}

	ctx := r.Context()
	store := svcctx.StoreFrom(ctx)
	orch := svcctx.OrchestratorFrom(ctx)
	homeDir := svcctx.HomeFrom(ctx)
	logger := svcctx.LoggerFrom(ctx)
	if store == nil || homeDir == nil {
		writeError(w, http.StatusServiceUnavailable, "services not configured")
		return
	}

	builder := stats.NewBuilder(store, orch, logger)
	result, err := builder.Build(ctx, explorationID, func(current, total int, marcheNom string) {
		if logger != nil {
			logger.Info("summarizing marche", "current", current, "total", total, "marche", marcheNom)
		}
	})
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, datastore.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, stats.ErrNoMarches):
			status = http.StatusBadRequest
		}
		writeError(w, status, fmt.Sprintf("failed to build statistics: %v", err))
		return
	}

	outputPath, size, err := writeExport(homeDir.ExportsDir(), explorationID, result.Filename, result.DOCX)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, StatistiquesResponse{
		ExplorationID: explorationID,
		Filename:      result.Filename,
		FilePath:      outputPath,
		FileSize:      size,
		NbMarches:     result.NbMarches,
		DownloadURL:   fmt.Sprintf("/api/explorations/%s/export/statistiques/download", explorationID),
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	})
}

func (e *ExportStatistiquesEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "export-statistiques <exploration_id>",
		Short: "Export the statistics document of an exploration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp StatistiquesResponse
			path := fmt.Sprintf("/api/explorations/%s/export/statistiques", args[0])
			if err := client.Post(cmd.Context(), path, nil, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// DownloadStatistiquesEndpoint handles GET /api/explorations/{exploration_id}/export/statistiques/download.
type DownloadStatistiquesEndpoint struct{}

func (e *DownloadStatistiquesEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/explorations/{exploration_id}/export/statistiques/download", e.handler
}

func (e *DownloadStatistiquesEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Download the statistics document
//	@Tags			export
//	@Produce		application/vnd.openxmlformats-officedocument.wordprocessingml.document
//	@Param			exploration_id	path		string	true	"Exploration ID"
//	@Success		200				{file}		file
//	@Failure		404				{object}	ErrorResponse
//	@Router			/api/explorations/{exploration_id}/export/statistiques/download [get]
func (e *DownloadStatistiquesEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	serveExport(w, r, func(name string) bool {
		return strings.Contains(name, "_statistiques_") && strings.HasSuffix(name, ".docx")
	}, docxContentType)
}

func (e *DownloadStatistiquesEndpoint) Command(getServerURL func() string) *cobra.Command {
	var outputPath string
	cmd := &cobra.Command{
		Use:   "download-statistiques <exploration_id>",
		Short: "Download the statistics document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			path := fmt.Sprintf("/api/explorations/%s/export/statistiques/download", args[0])
			data, err := client.GetRaw(cmd.Context(), path)
			if err != nil {
				return err
			}
			if outputPath == "" {
				outputPath = fmt.Sprintf("statistiques_%s.docx", args[0])
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
