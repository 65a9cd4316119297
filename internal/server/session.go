package server

import (
	"net/http"
	"sync"

	"github.com/google/uuid"

	"drumcharter/internal/chart"
)

const sessionCookie = "charter_session"

// analysis is the per-session state: the last result the user can edit and
// re-download. Nothing is persisted; restarting the server forgets it.
type analysis struct {
	Title    string          `json:"title"`
	Sections []chart.Section `json:"sections"`
}

type sessionStore struct {
	mu      sync.Mutex
	entries map[string]analysis
}

func newSessionStore() *sessionStore {
	return &sessionStore{entries: make(map[string]analysis)}
}

func (st *sessionStore) put(id string, a analysis) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.entries[id] = a
}

func (st *sessionStore) get(id string) (analysis, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	a, ok := st.entries[id]
	return a, ok
}

// sessionID returns the caller's session, creating one and setting the
// cookie when the request carries none.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
	})
	return id
}
