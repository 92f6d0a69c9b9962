package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/berge-project/berge/internal/api"
	"github.com/berge-project/berge/internal/livre"
	"github.com/berge-project/berge/internal/svcctx"
)

// CreateSessionRequest opens a Livre Vivant viewer over an exploration.
type CreateSessionRequest struct {
	ExplorationID string        `json:"exploration_id"`
	Options       livre.Options `json:"options"`
}

// SessionResponse carries a session snapshot plus the page under the cursor.
type SessionResponse struct {
	State       livre.State `json:"state"`
	CurrentPage *livre.Page `json:"current_page,omitempty"`
}

// NavRequest is a navigation step: either a named action or a keyboard event.
type NavRequest struct {
	Action string `json:"action,omitempty"`
	Page   int    `json:"page,omitempty"`

	Key       string `json:"key,omitempty"`
	FromInput bool   `json:"fromInput,omitempty"`
}

// NavResponse reports the session state after a navigation step.
type NavResponse struct {
	Handled     bool        `json:"handled"`
	State       livre.State `json:"state"`
	CurrentPage *livre.Page `json:"current_page,omitempty"`
}

// CreateSessionEndpoint handles POST /api/livre/sessions.
type CreateSessionEndpoint struct{}

func (e *CreateSessionEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/livre/sessions", e.handler
}

func (e *CreateSessionEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Open a Livre Vivant viewer session
//	@Description	Paginate the exploration's textes and start a server-side viewer session over the result
//	@Tags			livre
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateSessionRequest	true	"Session options"
//	@Success		201		{object}	SessionResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/api/livre/sessions [post]
func (e *CreateSessionEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.ExplorationID == "" {
		writeError(w, http.StatusBadRequest, "exploration_id is required")
		return
	}

	ctx := r.Context()
	store := svcctx.StoreFrom(ctx)
	sessions := svcctx.SessionsFrom(ctx)
	if store == nil || sessions == nil {
		writeError(w, http.StatusServiceUnavailable, "services not configured")
		return
	}

	textes, err := fetchExplorationTextes(ctx, store, req.ExplorationID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to load textes: %v", err))
		return
	}

	pages := livre.BuildPages(textes, req.Options)
	if len(pages) == 0 {
		writeError(w, http.StatusBadRequest, "no pages to display - check the options and the exploration's textes")
		return
	}

	session := sessions.Create(req.ExplorationID, pages)
	writeJSON(w, http.StatusCreated, sessionResponse(session))
}

func (e *CreateSessionEndpoint) Command(getServerURL func() string) *cobra.Command {
	var titre string
	cmd := &cobra.Command{
		Use:   "open-livre <exploration_id>",
		Short: "Open a Livre Vivant viewer session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			req := CreateSessionRequest{
				ExplorationID: args[0],
				Options: livre.Options{
					Titre:          titre,
					IncludeCover:   true,
					IncludeTOC:     true,
					IncludeParties: true,
					IncludeIndexes: true,
				},
			}
			var resp SessionResponse
			if err := client.Post(cmd.Context(), "/api/livre/sessions", req, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&titre, "titre", "", "Book title")
	return cmd
}

// GetSessionEndpoint handles GET /api/livre/sessions/{session_id}.
type GetSessionEndpoint struct{}

func (e *GetSessionEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/livre/sessions/{session_id}", e.handler
}

func (e *GetSessionEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Get a viewer session
//	@Description	Return the session state and the page under the cursor
//	@Tags			livre
//	@Produce		json
//	@Param			session_id	path		string	true	"Session ID"
//	@Success		200			{object}	SessionResponse
//	@Failure		404			{object}	ErrorResponse
//	@Router			/api/livre/sessions/{session_id} [get]
func (e *GetSessionEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromPath(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(session))
}

func (e *GetSessionEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "livre-state <session_id>",
		Short: "Show the state of a viewer session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp SessionResponse
			path := fmt.Sprintf("/api/livre/sessions/%s", args[0])
			if err := client.Get(cmd.Context(), path, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// NavigateSessionEndpoint handles POST /api/livre/sessions/{session_id}/nav.
type NavigateSessionEndpoint struct{}

func (e *NavigateSessionEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/livre/sessions/{session_id}/nav", e.handler
}

func (e *NavigateSessionEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Navigate a viewer session
//	@Description	Apply a named action (next, previous, first, last, goto, close) or a keyboard event to the session
//	@Tags			livre
//	@Accept			json
//	@Produce		json
//	@Param			session_id	path		string		true	"Session ID"
//	@Param			request		body		NavRequest	true	"Navigation step"
//	@Success		200			{object}	NavResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Router			/api/livre/sessions/{session_id}/nav [post]
func (e *NavigateSessionEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromPath(w, r)
	if !ok {
		return
	}

	var req NavRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	handled := true
	switch {
	case req.Action != "":
		if err := session.Apply(req.Action, req.Page); err != nil {
			if errors.Is(err, livre.ErrUnknownAction) {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown action %q", req.Action))
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	case req.Key != "":
		handled = session.HandleKey(livre.KeyEvent{Key: req.Key, FromInput: req.FromInput})
	default:
		writeError(w, http.StatusBadRequest, "either action or key is required")
		return
	}

	resp := NavResponse{Handled: handled, State: session.Snapshot()}
	if page, ok := session.CurrentPage(); ok {
		resp.CurrentPage = &page
	}
	writeJSON(w, http.StatusOK, resp)
}

func (e *NavigateSessionEndpoint) Command(getServerURL func() string) *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "livre-nav <session_id> <action>",
		Short: "Navigate a viewer session (next, previous, first, last, goto, close)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp NavResponse
			path := fmt.Sprintf("/api/livre/sessions/%s/nav", args[0])
			if err := client.Post(cmd.Context(), path, NavRequest{Action: args[1], Page: page}, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().IntVar(&page, "page", 0, "Target page index for the goto action")
	return cmd
}

// CloseSessionEndpoint handles DELETE /api/livre/sessions/{session_id}.
type CloseSessionEndpoint struct{}

func (e *CloseSessionEndpoint) Route() (string, string, http.HandlerFunc) {
	return "DELETE", "/api/livre/sessions/{session_id}", e.handler
}

func (e *CloseSessionEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Close and remove a viewer session
//	@Tags			livre
//	@Produce		json
//	@Param			session_id	path		string	true	"Session ID"
//	@Success		200			{object}	map[string]string
//	@Failure		404			{object}	ErrorResponse
//	@Router			/api/livre/sessions/{session_id} [delete]
func (e *CloseSessionEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromPath(w, r)
	if !ok {
		return
	}

	sessions := svcctx.SessionsFrom(r.Context())
	session.Apply("close", 0)
	sessions.Delete(session.ID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "closed", "id": session.ID})
}

func (e *CloseSessionEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "close-livre <session_id>",
		Short: "Close a viewer session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			path := fmt.Sprintf("/api/livre/sessions/%s", args[0])
			if err := client.Delete(cmd.Context(), path); err != nil {
				return err
			}
			fmt.Printf("Session %s closed\n", args[0])
			return nil
		},
	}
}

// sessionFromPath resolves the session in the request path, writing the
// error response itself when the lookup fails.
func sessionFromPath(w http.ResponseWriter, r *http.Request) (*livre.Session, bool) {
	sessionID := r.PathValue("session_id")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "session_id is required")
		return nil, false
	}
	sessions := svcctx.SessionsFrom(r.Context())
	if sessions == nil {
		writeError(w, http.StatusServiceUnavailable, "session store not configured")
		return nil, false
	}
	session, ok := sessions.Get(sessionID)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("session %s not found", sessionID))
		return nil, false
	}
	return session, true
}

func sessionResponse(s *livre.Session) SessionResponse {
	resp := SessionResponse{State: s.Snapshot()}
	if page, ok := s.CurrentPage(); ok {
		resp.CurrentPage = &page
	}
	return resp
}
