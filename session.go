package main

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"player-timeline/roster"
)

const (
	sessionCookie  = "timeline_session"
	sessionIdleTTL = 24 * time.Hour
)

type session struct {
	view     *roster.View
	lastSeen time.Time
}

// sessionStore holds one roster.View per browser. All sessions start from
// the same ranked roster; players are shared and never mutated.
type sessionStore struct {
	mu       sync.Mutex
	base     *roster.View
	sessions map[string]*session
	now      func() time.Time
}

func newSessionStore(players []*roster.Player) *sessionStore {
	return &sessionStore{
		base:     roster.NewView(players),
		sessions: make(map[string]*session),
		now:      time.Now,
	}
}

// resolve returns the caller's session id and view, issuing a new cookie
// when the request has none or an unknown one.
func (s *sessionStore) resolve(w http.ResponseWriter, r *http.Request) (string, *roster.View) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, err := r.Cookie(sessionCookie); err == nil {
		if sess, ok := s.sessions[c.Value]; ok {
			sess.lastSeen = s.now()
			return c.Value, sess.view
		}
	}

	s.pruneLocked()
	id := uuid.NewString()
	s.sessions[id] = &session{view: s.base, lastSeen: s.now()}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id, s.base
}

// update applies fn to the session's view and stores the result.
func (s *sessionStore) update(id string, fn func(*roster.View) *roster.View) *roster.View {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		sess = &session{view: s.base}
		s.sessions[id] = sess
	}
	sess.view = fn(sess.view)
	sess.lastSeen = s.now()
	return sess.view
}

func (s *sessionStore) pruneLocked() {
	cutoff := s.now().Add(-sessionIdleTTL)
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}

func (s *sessionStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
