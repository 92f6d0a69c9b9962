package livre

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrUnknownAction is returned for navigation actions the session does not
// understand.
var ErrUnknownAction = errors.New("unknown navigation action")

// Session is a server-side Livre Vivant viewer: one page sequence plus a
// navigator, shared between HTTP requests. The mutex makes the single-owner
// navigator safe behind the API boundary.
type Session struct {
	ID            string
	ExplorationID string
	CreatedAt     time.Time

	mu     sync.Mutex
	nav    *Navigator
	closed bool
}

// State is a point-in-time snapshot of a session for API responses.
type State struct {
	ID            string  `json:"id"`
	ExplorationID string  `json:"explorationId"`
	Cursor        int     `json:"cursor"`
	TotalPages    int     `json:"totalPages"`
	Progress      float64 `json:"progress"`
	CanGoNext     bool    `json:"canGoNext"`
	CanGoPrevious bool    `json:"canGoPrevious"`
	Closed        bool    `json:"closed"`
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		ID:            s.ID,
		ExplorationID: s.ExplorationID,
		Cursor:        s.nav.Cursor(),
		TotalPages:    s.nav.Len(),
		Progress:      s.nav.Progress(),
		CanGoNext:     s.nav.CanGoNext(),
		CanGoPrevious: s.nav.CanGoPrevious(),
		Closed:        s.closed,
	}
}

// CurrentPage returns the page under the cursor.
func (s *Session) CurrentPage() (Page, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.Current()
}

// Apply runs a named navigation action. "goto" uses the page argument.
func (s *Session) Apply(action string, page int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch action {
	case "next":
		s.nav.GoToNext()
	case "previous":
		s.nav.GoToPrevious()
	case "first":
		s.nav.GoToFirst()
	case "last":
		s.nav.GoToLast()
	case "goto":
		s.nav.GoToPage(page)
	case "close":
		s.closed = true
	default:
		return ErrUnknownAction
	}
	return nil
}

// HandleKey forwards a keyboard event to the navigator.
func (s *Session) HandleKey(ev KeyEvent) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.HandleKey(ev)
}

// Closed reports whether the viewer was closed (Escape or explicit action).
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// SessionStore holds active viewer sessions keyed by ID.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Create builds a session over an immutable page sequence.
func (st *SessionStore) Create(explorationID string, pages []Page) *Session {
	s := &Session{
		ID:            uuid.New().String(),
		ExplorationID: explorationID,
		CreatedAt:     time.Now().UTC(),
		nav:           NewNavigator(pages),
	}
	s.nav.SetCloseFunc(func() { s.closed = true })

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get returns the session with the given ID.
func (st *SessionStore) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Delete removes a session.
func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Len returns the number of active sessions.
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
