package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/berge-project/berge/internal/api"
	"github.com/berge-project/berge/internal/typo"
)

// PreviewTypoRequest carries texts and rule selection for a dry run.
type PreviewTypoRequest struct {
	Texts []string      `json:"texts"`
	Rules *typo.Options `json:"rules,omitempty"`
}

// PreviewTypoResponse returns the sanitized texts and the aggregate report.
type PreviewTypoResponse struct {
	Texts   []string    `json:"texts"`
	Report  typo.Report `json:"report"`
	Summary string      `json:"summary"`
}

// PreviewTypoEndpoint handles POST /api/preview/typo. It runs the exact
// sanitizer used by manuscript export, so previewed counts match the
// export report.
type PreviewTypoEndpoint struct{}

func (e *PreviewTypoEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/preview/typo", e.handler
}

func (e *PreviewTypoEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Preview typographic corrections
//	@Description	Sanitize texts without exporting anything and report the corrections
//	@Tags			typo
//	@Accept			json
//	@Produce		json
//	@Param			request	body		PreviewTypoRequest	true	"Texts and rules"
//	@Success		200		{object}	PreviewTypoResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/api/preview/typo [post]
func (e *PreviewTypoEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req PreviewTypoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if len(req.Texts) == 0 {
		writeError(w, http.StatusBadRequest, "texts is required")
		return
	}

	opts := typo.AllRules()
	if req.Rules != nil {
		opts = *req.Rules
	}
	if len(opts.ProtectedNouns) == 0 {
		opts.ProtectedNouns = protectedNouns(r.Context())
	}

	resp := PreviewTypoResponse{Texts: make([]string, len(req.Texts))}
	for i, text := range req.Texts {
		sanitized, report := typo.Sanitize(text, opts)
		resp.Texts[i] = sanitized
		resp.Report.Add(report)
	}
	resp.Summary = typo.Describe(resp.Report)

	writeJSON(w, http.StatusOK, resp)
}

func (e *PreviewTypoEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "preview-typo <text>...",
		Short: "Preview typographic corrections on texts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp PreviewTypoResponse
			if err := client.Post(cmd.Context(), "/api/preview/typo",
				PreviewTypoRequest{Texts: args}, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
