package endpoints

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/berge-project/berge/internal/api"
	"github.com/berge-project/berge/internal/datastore"
	"github.com/berge-project/berge/internal/svcctx"
)

// ListMarchesEndpoint handles GET /api/explorations/{exploration_id}/marches.
type ListMarchesEndpoint struct{}

func (e *ListMarchesEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/explorations/{exploration_id}/marches", e.handler
}

func (e *ListMarchesEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		List the marches of an exploration
//	@Description	Marches are returned date-ascending. Optional region and date filters.
//	@Tags			marches
//	@Produce		json
//	@Param			exploration_id	path		string	true	"Exploration ID"
//	@Param			region			query		string	false	"Filter by region"
//	@Param			from			query		string	false	"Earliest date (YYYY-MM-DD)"
//	@Param			to				query		string	false	"Latest date (YYYY-MM-DD)"
//	@Success		200				{array}		datastore.Marche
//	@Failure		500				{object}	ErrorResponse
//	@Router			/api/explorations/{exploration_id}/marches [get]
func (e *ListMarchesEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("exploration_id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "exploration_id is required")
		return
	}

	q := r.URL.Query()
	filter := datastore.Filter{
		ExplorationID: id,
		Region:        q.Get("region"),
		DateFrom:      q.Get("from"),
		DateTo:        q.Get("to"),
	}

	store := svcctx.StoreFrom(r.Context())
	marches, err := store.ListMarches(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to list marches: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, marches)
}

func (e *ListMarchesEndpoint) Command(getServerURL func() string) *cobra.Command {
	var region string
	cmd := &cobra.Command{
		Use:   "marches <exploration_id>",
		Short: "List the marches of an exploration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			path := fmt.Sprintf("/api/explorations/%s/marches", args[0])
			if region != "" {
				path += "?region=" + region
			}
			var resp []datastore.Marche
			if err := client.Get(cmd.Context(), path, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&region, "region", "", "Filter by region")
	return cmd
}

// ListTextesEndpoint handles GET /api/marches/{marche_id}/textes.
type ListTextesEndpoint struct{}

func (e *ListTextesEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/marches/{marche_id}/textes", e.handler
}

func (e *ListTextesEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		List the textes of a marche
//	@Tags			textes
//	@Produce		json
//	@Param			marche_id	path		string	true	"Marche ID"
//	@Success		200			{array}		datastore.TexteRow
//	@Failure		500			{object}	ErrorResponse
//	@Router			/api/marches/{marche_id}/textes [get]
func (e *ListTextesEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("marche_id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "marche_id is required")
		return
	}

	store := svcctx.StoreFrom(r.Context())
	textes, err := store.ListTextes(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to list textes: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, textes)
}

func (e *ListTextesEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "textes <marche_id>",
		Short: "List the textes of a marche",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp []datastore.TexteRow
			if err := client.Get(cmd.Context(), fmt.Sprintf("/api/marches/%s/textes", args[0]), &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
