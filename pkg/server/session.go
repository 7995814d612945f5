package server

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/bigpicture/pkg/errors"
	"github.com/matzehuels/bigpicture/pkg/geometry"
	"github.com/matzehuels/bigpicture/pkg/render/box/layout"
)

// DefaultSessionTTL is how long an idle session is kept.
const DefaultSessionTTL = 2 * time.Hour

// Session is one viewer's layout state.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	layout   *layout.Layout
	lastSeen time.Time
}

// With runs fn with exclusive access to the session's layout.
func (s *Session) With(fn func(l *layout.Layout) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.layout)
}

// Store keeps sessions in memory. Each session starts from a copy of the
// same base geometry.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	base     geometry.Layout
	ttl      time.Duration
	now      func() time.Time
}

// NewStore creates a store whose sessions start from base.
func NewStore(base geometry.Layout, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Store{
		sessions: make(map[string]*Session),
		base:     base,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create starts a session with a fresh copy of the base layout.
func (st *Store) Create() (*Session, error) {
	l, err := layout.Parse(st.base)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "copy base layout")
	}
	now := st.now()
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		layout:    l,
		lastSeen:  now,
	}

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s, nil
}

// Get returns a live session and marks it as used. Malformed, unknown and
// expired IDs all yield SESSION_NOT_FOUND.
func (st *Store) Get(id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id)
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id)
	}
	now := st.now()
	if now.Sub(s.lastSeen) > st.ttl {
		delete(st.sessions, id)
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %q expired", id)
	}
	s.lastSeen = now
	return s, nil
}

// Delete drops a session. Unknown IDs are ignored.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Len returns the number of sessions held.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Cleanup removes idle sessions and returns how many were removed.
func (st *Store) Cleanup() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	now := st.now()
	n := 0
	for id, s := range st.sessions {
		if now.Sub(s.lastSeen) > st.ttl {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}

// RunCleanup calls Cleanup every interval until ctx is done.
func (st *Store) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.Cleanup()
		}
	}
}
