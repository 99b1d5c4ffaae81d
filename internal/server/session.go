package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/shelfview/pkg/errors"
	"github.com/matzehuels/shelfview/pkg/layout"
	"github.com/matzehuels/shelfview/pkg/scene"
	"github.com/matzehuels/shelfview/pkg/transition"
)

// DefaultSessionTTL is how long an unused session lives.
const DefaultSessionTTL = 30 * time.Minute

// Session is one client's scene and transition engine. Its lock serializes
// calls into the engine, which is not safe for concurrent use.
type Session struct {
	ID        string
	Scene     *scene.Scene
	CreatedAt time.Time
	ExpiresAt time.Time

	mu      sync.Mutex
	engine  *transition.Engine
	layouts map[layout.Policy]*layout.Layout
}

// IsExpired reports whether the session outlived its TTL at now.
func (s *Session) IsExpired(now time.Time) bool { return now.After(s.ExpiresAt) }

// Do runs fn with exclusive access to the engine.
func (s *Session) Do(fn func(e *transition.Engine) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.engine)
}

// layoutFor returns the session's layout for p, building it on first use.
// Callers hold s.mu.
func (s *Session) layoutFor(p layout.Policy) *layout.Layout {
	if l, ok := s.layouts[p]; ok {
		return l
	}
	l := s.Scene.Layout(p)
	s.layouts[p] = l
	return l
}

// Store keeps sessions in memory, keyed by uuid.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewStore returns an empty store. A ttl <= 0 selects DefaultSessionTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Store{sessions: make(map[string]*Session), ttl: ttl, now: time.Now}
}

// Create starts a session showing initial.
func (st *Store) Create(sc *scene.Scene, initial layout.Policy) *Session {
	now := st.now()
	s := &Session{
		ID:        uuid.NewString(),
		Scene:     sc,
		CreatedAt: now,
		ExpiresAt: now.Add(st.ttl),
		layouts:   make(map[layout.Policy]*layout.Layout),
	}
	s.engine = transition.New(s.layoutFor(initial), transition.WithOptions(sc.Transition))

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get returns a live session and extends its lifetime.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	now := st.now()
	if !ok || s.IsExpired(now) {
		if ok {
			delete(st.sessions, id)
		}
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %s not found", id)
	}
	s.ExpiresAt = now.Add(st.ttl)
	return s, nil
}

// Delete removes a session.
func (st *Store) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return errors.New(errors.ErrCodeSessionNotFound, "session %s not found", id)
	}
	delete(st.sessions, id)
	return nil
}

// Cleanup drops expired sessions and returns how many were removed.
func (st *Store) Cleanup() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	now := st.now()
	n := 0
	for id, s := range st.sessions {
		if s.IsExpired(now) {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}

// Len returns the number of stored sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
