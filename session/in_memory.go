// Package session provides SessionStore implementations.
package session

import (
	"sync"

	"github.com/hupe1980/consultmesh/core"
)

// InMemoryStore is a volatile SessionStore keeping sessions in a process
// local map keyed by (app, user, session). It is safe for concurrent access
// and best suited for tests or single-process deployments. Each returned
// session is cloned to prevent external mutation of internal state.
//
// Concurrent requests for the same key are not serialized beyond map access;
// interleaving of appends across simultaneous runs of one session is caller
// responsibility.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[core.SessionKey]*core.Session
}

// NewInMemoryStore constructs an empty in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[core.SessionKey]*core.Session)}
}

// Get returns an existing session (clone) or creates one lazily.
func (s *InMemoryStore) Get(key core.SessionKey) (*core.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[key]; ok {
		return sess.Clone(), nil
	}
	return s.createLocked(key).Clone(), nil
}

// Create forces the creation (or resetting) of a session for the given key.
func (s *InMemoryStore) Create(key core.SessionKey) (*core.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createLocked(key).Clone(), nil
}

// AppendEvent adds an event to an existing or lazily created session.
func (s *InMemoryStore) AppendEvent(key core.SessionKey, ev core.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[key]
	if !ok {
		sess = s.createLocked(key)
	}
	sess.AddEvent(ev)
	return nil
}

// createLocked allocates and stores a new session; caller must hold the
// write lock.
func (s *InMemoryStore) createLocked(key core.SessionKey) *core.Session {
	sess := core.NewSession(key)
	s.sessions[key] = sess
	return sess
}
