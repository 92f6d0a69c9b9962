package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/berge-project/berge/internal/api"
	"github.com/berge-project/berge/internal/manuscript"
	"github.com/berge-project/berge/internal/svcctx"
	"github.com/berge-project/berge/internal/typo"
)

// ManuscritRequest carries manuscript options for an export.
type ManuscritRequest struct {
	Titre     string `json:"titre"`
	SousTitre string `json:"sousTitre,omitempty"`
	Auteur    string `json:"auteur"`
	Adresse   string `json:"adresse,omitempty"`
	Email     string `json:"email,omitempty"`
	Telephone string `json:"telephone,omitempty"`

	IncludeCover          bool `json:"includeCover"`
	IncludeTOC            bool `json:"includeTableOfContents"`
	PageBreakBetweenTexts bool `json:"pageBreakBetweenTexts"`
	ShowLocationDate      bool `json:"showLocationDate"`

	Rules *typo.Options `json:"rules,omitempty"`
}

// ManuscritResponse is returned when a manuscript is generated.
type ManuscritResponse struct {
	ExplorationID string      `json:"exploration_id"`
	Filename      string      `json:"filename"`
	FilePath      string      `json:"file_path"`
	FileSize      int64       `json:"file_size"`
	NbTextes      int         `json:"nb_textes"`
	Report        typo.Report `json:"report"`
	DownloadURL   string      `json:"download_url"`
	CreatedAt     string      `json:"created_at"`
}

// ExportManuscritEndpoint handles POST /api/explorations/{exploration_id}/export/manuscrit.
type ExportManuscritEndpoint struct{}

func (e *ExportManuscritEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/explorations/{exploration_id}/export/manuscrit", e.handler
}

func (e *ExportManuscritEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Export the manuscript document
//	@Description	Generate the DOCX manuscript of an exploration with French typographic sanitization
//	@Tags			export
//	@Accept			json
//	@Produce		json
//	@Param			exploration_id	path		string				true	"Exploration ID"
//	@Param			request			body		ManuscritRequest	true	"Manuscript options"
//	@Success		200				{object}	ManuscritResponse
//	@Failure		400				{object}	ErrorResponse
//	@Failure		500				{object}	ErrorResponse
//	@Router			/api/explorations/{exploration_id}/export/manuscrit [post]
func (e *ExportManuscritEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	explorationID := r.PathValue("exploration_id")
	if explorationID == "" {
		writeError(w, http.StatusBadRequest, "exploration_id is required")
		return
	}

	var req ManuscritRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	ctx := r.Context()
	store := svcctx.StoreFrom(ctx)
	homeDir := svcctx.HomeFrom(ctx)
	if store == nil || homeDir == nil {
		writeError(w, http.StatusServiceUnavailable, "services not configured")
		return
	}

	textes, err := fetchExplorationTextes(ctx, store, explorationID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to load textes: %v", err))
		return
	}

	typoOpts := typo.AllRules()
	if req.Rules != nil {
		typoOpts = *req.Rules
	}
	if len(typoOpts.ProtectedNouns) == 0 {
		typoOpts.ProtectedNouns = protectedNouns(ctx)
	}

	result, err := manuscript.Build(textes, manuscript.Options{
		Titre:                 req.Titre,
		SousTitre:             req.SousTitre,
		Auteur:                req.Auteur,
		Adresse:               req.Adresse,
		Email:                 req.Email,
		Telephone:             req.Telephone,
		IncludeCover:          req.IncludeCover,
		IncludeTOC:            req.IncludeTOC,
		PageBreakBetweenTexts: req.PageBreakBetweenTexts,
		ShowLocationDate:      req.ShowLocationDate,
		Typo:                  typoOpts,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, manuscript.ErrNoTextes) ||
			errors.Is(err, manuscript.ErrNoTitle) ||
			errors.Is(err, manuscript.ErrNoAuthor) {
			status = http.StatusBadRequest
		}
		writeError(w, status, fmt.Sprintf("failed to build manuscript: %v", err))
		return
	}

	outputPath, size, err := writeExport(homeDir.ExportsDir(), explorationID, result.Filename, result.DOCX)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ManuscritResponse{
		ExplorationID: explorationID,
		Filename:      result.Filename,
		FilePath:      outputPath,
		FileSize:      size,
		NbTextes:      len(textes),
		Report:        result.Report,
		DownloadURL:   fmt.Sprintf("/api/explorations/%s/export/manuscrit/download", explorationID),
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	})
}

func (e *ExportManuscritEndpoint) Command(getServerURL func() string) *cobra.Command {
	var titre, auteur string
	cmd := &cobra.Command{
		Use:   "export-manuscrit <exploration_id>",
		Short: "Export the manuscript document of an exploration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			req := ManuscritRequest{
				Titre:                 titre,
				Auteur:                auteur,
				IncludeCover:          true,
				IncludeTOC:            true,
				PageBreakBetweenTexts: true,
				ShowLocationDate:      true,
			}
			var resp ManuscritResponse
			path := fmt.Sprintf("/api/explorations/%s/export/manuscrit", args[0])
			if err := client.Post(cmd.Context(), path, req, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&titre, "titre", "", "Manuscript title")
	cmd.Flags().StringVar(&auteur, "auteur", "", "Author name")
	cmd.MarkFlagRequired("titre")
	cmd.MarkFlagRequired("auteur")
	return cmd
}

// DownloadManuscritEndpoint handles GET /api/explorations/{exploration_id}/export/manuscrit/download.
type DownloadManuscritEndpoint struct{}

func (e *DownloadManuscritEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/explorations/{exploration_id}/export/manuscrit/download", e.handler
}

func (e *DownloadManuscritEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Download the manuscript document
//	@Tags			export
//	@Produce		application/vnd.openxmlformats-officedocument.wordprocessingml.document
//	@Param			exploration_id	path		string	true	"Exploration ID"
//	@Success		200				{file}		file
//	@Failure		404				{object}	ErrorResponse
//	@Router			/api/explorations/{exploration_id}/export/manuscrit/download [get]
func (e *DownloadManuscritEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	serveExport(w, r, func(name string) bool {
		return strings.HasPrefix(name, "MANUSCRIT_") && strings.HasSuffix(name, ".docx")
	}, docxContentType)
}

func (e *DownloadManuscritEndpoint) Command(getServerURL func() string) *cobra.Command {
	var outputPath string
	cmd := &cobra.Command{
		Use:   "download-manuscrit <exploration_id>",
		Short: "Download the manuscript document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			path := fmt.Sprintf("/api/explorations/%s/export/manuscrit/download", args[0])
			data, err := client.GetRaw(cmd.Context(), path)
			if err != nil {
				return err
			}
			if outputPath == "" {
				outputPath = fmt.Sprintf("manuscrit_%s.docx", args[0])
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

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// writeExport writes a generated document under the exploration's export
// directory and returns its path and size.
func writeExport(exportsRoot, explorationID, filename string, data []byte) (string, int64, error) {
	dir := filepath.Join(exportsRoot, explorationID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("failed to create export directory: %v", err)
	}
	outputPath := filepath.Join(dir, filename)
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return "", 0, fmt.Errorf("failed to write export: %v", err)
	}
	return outputPath, int64(len(data)), nil
}

// serveExport streams the newest export matching the predicate for the
// exploration in the request path.
func serveExport(w http.ResponseWriter, r *http.Request, match func(string) bool, contentType string) {
	explorationID := r.PathValue("exploration_id")
	if explorationID == "" {
		writeError(w, http.StatusBadRequest, "exploration_id is required")
		return
	}

	homeDir := svcctx.HomeFrom(r.Context())
	if homeDir == nil {
		writeError(w, http.StatusServiceUnavailable, "home directory not configured")
		return
	}

	dir := filepath.Join(homeDir.ExportsDir(), explorationID)
	entries, err := os.ReadDir(dir)
	if err != nil {
		writeError(w, http.StatusNotFound, "no export found - run export first")
		return
	}

	var newest string
	var newestTime time.Time
	for _, entry := range entries {
		if !match(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestTime) {
			newest = entry.Name()
			newestTime = info.ModTime()
		}
	}
	if newest == "" {
		writeError(w, http.StatusNotFound, "no matching export file found")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, newest))
	http.ServeFile(w, r, filepath.Join(dir, newest))
}
