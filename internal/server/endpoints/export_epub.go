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
	"github.com/berge-project/berge/internal/epub"
	"github.com/berge-project/berge/internal/livre"
	"github.com/berge-project/berge/internal/svcctx"
	"github.com/berge-project/berge/internal/typo"
)

// EPUBRequest carries the book options for an EPUB export.
type EPUBRequest struct {
	Titre     string `json:"titre,omitempty"`
	SousTitre string `json:"sousTitre,omitempty"`
	Auteur    string `json:"auteur,omitempty"`
	Editeur   string `json:"editeur,omitempty"`

	IncludeCover   bool `json:"includeCover"`
	IncludeTOC     bool `json:"includeTableOfContents"`
	IncludeParties bool `json:"includeParties"`
	IncludeIndexes bool `json:"includeIndexes"`

	Rules *typo.Options `json:"rules,omitempty"`
}

// EPUBResponse is returned when an EPUB is generated.
type EPUBResponse struct {
	ExplorationID string `json:"exploration_id"`
	Filename      string `json:"filename"`
	FilePath      string `json:"file_path"`
	FileSize      int64  `json:"file_size"`
	NbPages       int    `json:"nb_pages"`
	DownloadURL   string `json:"download_url"`
	CreatedAt     string `json:"created_at"`
}

// ExportEPUBEndpoint handles POST /api/explorations/{exploration_id}/export/epub.
type ExportEPUBEndpoint struct{}

func (e *ExportEPUBEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/explorations/{exploration_id}/export/epub", e.handler
}

func (e *ExportEPUBEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Export the Livre Vivant as EPUB
//	@Description	Paginate the exploration's textes and package the result as an EPUB 3 book
//	@Tags			export
//	@Accept			json
//	@Produce		json
//	@Param			exploration_id	path		string		true	"Exploration ID"
//	@Param			request			body		EPUBRequest	true	"Book options"
//	@Success		200				{object}	EPUBResponse
//	@Failure		400				{object}	ErrorResponse
//	@Failure		500				{object}	ErrorResponse
//	@Router			/api/explorations/{exploration_id}/export/epub [post]
func (e *ExportEPUBEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	explorationID := r.PathValue("exploration_id")
	if explorationID == "" {
		writeError(w, http.StatusBadRequest, "exploration_id is required")
		return
	}

	var req EPUBRequest
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

	expl, err := store.GetExploration(ctx, explorationID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, datastore.ErrNotFound) {
			status = http.StatusNotFound
		}
		writeError(w, status, fmt.Sprintf("failed to load exploration: %v", err))
		return
	}

	textes, err := fetchExplorationTextes(ctx, store, explorationID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to load textes: %v", err))
		return
	}
	if len(textes) == 0 {
		writeError(w, http.StatusBadRequest, "exploration has no textes to export")
		return
	}

	typoOpts := typo.AllRules()
	if req.Rules != nil {
		typoOpts = *req.Rules
	}
	if len(typoOpts.ProtectedNouns) == 0 {
		typoOpts.ProtectedNouns = protectedNouns(ctx)
	}
	for i := range textes {
		textes[i].Titre, _ = typo.Sanitize(textes[i].Titre, typoOpts)
		textes[i].Contenu, _ = typo.Sanitize(textes[i].Contenu, typoOpts)
	}

	titre := req.Titre
	if titre == "" {
		titre = expl.Nom
	}
	pages := livre.BuildPages(textes, livre.Options{
		Titre:          titre,
		SousTitre:      req.SousTitre,
		Auteur:         req.Auteur,
		IncludeCover:   req.IncludeCover,
		IncludeTOC:     req.IncludeTOC,
		IncludeParties: req.IncludeParties,
		IncludeIndexes: req.IncludeIndexes,
	})

	builder := epub.NewBuilder(epub.Options{
		Titre:     titre,
		SousTitre: req.SousTitre,
		Auteur:    req.Auteur,
		Editeur:   req.Editeur,
	}, pages)
	data, err := builder.Bytes()
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to build epub: %v", err))
		return
	}

	filename := epub.Filename(expl.Nom, time.Now().UTC())
	outputPath, size, err := writeExport(homeDir.ExportsDir(), explorationID, filename, data)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, EPUBResponse{
		ExplorationID: explorationID,
		Filename:      filename,
		FilePath:      outputPath,
		FileSize:      size,
		NbPages:       len(pages),
		DownloadURL:   fmt.Sprintf("/api/explorations/%s/export/epub/download", explorationID),
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	})
}

func (e *ExportEPUBEndpoint) Command(getServerURL func() string) *cobra.Command {
	var titre, auteur string
	cmd := &cobra.Command{
		Use:   "export-epub <exploration_id>",
		Short: "Export the Livre Vivant of an exploration as EPUB",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			req := EPUBRequest{
				Titre:          titre,
				Auteur:         auteur,
				IncludeCover:   true,
				IncludeTOC:     true,
				IncludeParties: true,
				IncludeIndexes: true,
			}
			var resp EPUBResponse
			path := fmt.Sprintf("/api/explorations/%s/export/epub", args[0])
			if err := client.Post(cmd.Context(), path, req, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&titre, "titre", "", "Book title (defaults to the exploration name)")
	cmd.Flags().StringVar(&auteur, "auteur", "", "Author name")
	return cmd
}

// DownloadEPUBEndpoint handles GET /api/explorations/{exploration_id}/export/epub/download.
type DownloadEPUBEndpoint struct{}

func (e *DownloadEPUBEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/explorations/{exploration_id}/export/epub/download", e.handler
}

func (e *DownloadEPUBEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Download the EPUB book
//	@Tags			export
//	@Produce		application/epub+zip
//	@Param			exploration_id	path		string	true	"Exploration ID"
//	@Success		200				{file}		file
//	@Failure		404				{object}	ErrorResponse
//	@Router			/api/explorations/{exploration_id}/export/epub/download [get]
func (e *DownloadEPUBEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	serveExport(w, r, func(name string) bool {
		return strings.HasSuffix(name, ".epub")
	}, "application/epub+zip")
}

func (e *DownloadEPUBEndpoint) Command(getServerURL func() string) *cobra.Command {
	var outputPath string
	cmd := &cobra.Command{
		Use:   "download-epub <exploration_id>",
		Short: "Download the EPUB book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			path := fmt.Sprintf("/api/explorations/%s/export/epub/download", args[0])
			data, err := client.GetRaw(cmd.Context(), path)
			if err != nil {
				return err
			}
			if outputPath == "" {
				outputPath = fmt.Sprintf("livre_%s.epub", args[0])
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
