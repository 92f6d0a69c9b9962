package endpoints

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/berge-project/berge/internal/api"
	"github.com/berge-project/berge/internal/datastore"
	"github.com/berge-project/berge/internal/svcctx"
)

// ListExplorationsEndpoint handles GET /api/explorations.
type ListExplorationsEndpoint struct{}

func (e *ListExplorationsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/explorations", e.handler
}

func (e *ListExplorationsEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		List explorations
//	@Description	List every exploration known to the data collaborator
//	@Tags			explorations
//	@Produce		json
//	@Success		200	{array}		datastore.Exploration
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/explorations [get]
func (e *ListExplorationsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	store := svcctx.StoreFrom(r.Context())
	explorations, err := store.ListExplorations(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to list explorations: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, explorations)
}

func (e *ListExplorationsEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "explorations",
		Short: "List explorations",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp []datastore.Exploration
			if err := client.Get(cmd.Context(), "/api/explorations", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// GetExplorationEndpoint handles GET /api/explorations/{exploration_id}.
type GetExplorationEndpoint struct{}

func (e *GetExplorationEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/explorations/{exploration_id}", e.handler
}

func (e *GetExplorationEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Get an exploration
//	@Tags			explorations
//	@Produce		json
//	@Param			exploration_id	path		string	true	"Exploration ID"
//	@Success		200				{object}	datastore.Exploration
//	@Failure		404				{object}	ErrorResponse
//	@Router			/api/explorations/{exploration_id} [get]
func (e *GetExplorationEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("exploration_id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "exploration_id is required")
		return
	}

	store := svcctx.StoreFrom(r.Context())
	expl, err := store.GetExploration(r.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, datastore.ErrNotFound) {
			status = http.StatusNotFound
		}
		writeError(w, status, fmt.Sprintf("failed to get exploration: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, expl)
}

func (e *GetExplorationEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "exploration <exploration_id>",
		Short: "Get an exploration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp datastore.Exploration
			if err := client.Get(cmd.Context(), "/api/explorations/"+args[0], &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
