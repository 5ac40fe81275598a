package core

import (
	"fmt"
	"sync"
	"time"
)

// SessionKey identifies a conversation scope. Sessions are namespaced by the
// application, the user on whose behalf requests run, and the caller-visible
// session identifier, mirroring the (app_name, user_id, session_id) triple of
// the model runtime.
type SessionKey struct {
	App  string `json:"app"`
	User string `json:"user"`
	ID   string `json:"id"`
}

// String renders the key as "app/user/id" for logging and map indexing.
func (k SessionKey) String() string { return fmt.Sprintf("%s/%s/%s", k.App, k.User, k.ID) }

// Session is a conversational container tracking an ordered event history
// plus mutable key/value state. It is safe for concurrent access.
//
// Contract:
//   - Event appends update the Updated timestamp
//   - GetEvents returns a defensive copy to avoid external mutation
//   - History filters events to non-partial user/model turns
//   - Clone performs deep copies for safe divergence.
type Session struct {
	Key     SessionKey     `json:"key"`
	State   map[string]any `json:"state"`
	Events  []Event        `json:"events"`
	Created time.Time      `json:"created"`
	Updated time.Time      `json:"updated"`
	mu      sync.RWMutex
}

// NewSession creates an empty session for the given key.
func NewSession(key SessionKey) *Session {
	now := time.Now()
	return &Session{Key: key, State: map[string]any{}, Events: []Event{}, Created: now, Updated: now}
}

// GetState returns the value and existence flag for a state key.
func (s *Session) GetState(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.State[key]
	return v, ok
}

// SetState sets a key/value pair in session state updating the Updated timestamp.
func (s *Session) SetState(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.State[key] = value
	s.Updated = time.Now()
}

// AddEvent appends an event to the history updating the Updated timestamp.
func (s *Session) AddEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Events = append(s.Events, ev)
	s.Updated = time.Now()
}

// GetEvents returns a defensive copy of the full event slice.
func (s *Session) GetEvents() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := make([]Event, len(s.Events))
	copy(events, s.Events)
	return events
}

// History returns the non-partial user/model events in order, suitable for
// reconstructing a conversation transcript.
func (s *Session) History() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]Event, 0, len(s.Events))
	for _, ev := range s.Events {
		if ev.Content == nil || ev.IsPartial() {
			continue
		}
		if ev.Content.Role != RoleUser && ev.Content.Role != RoleModel {
			continue
		}
		res = append(res, ev)
	}
	return res
}

// Clone returns a deep copy of the session safe for independent mutation.
func (s *Session) Clone() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clone := &Session{Key: s.Key, State: make(map[string]any, len(s.State)), Events: make([]Event, len(s.Events)), Created: s.Created, Updated: s.Updated}
	for k, v := range s.State {
		clone.State[k] = v
	}
	copy(clone.Events, s.Events)
	return clone
}

// SessionStore persists sessions and their evolving event history. Requests
// for distinct keys must never block one another.
type SessionStore interface {
	// Create allocates (or resets) the session for key.
	Create(key SessionKey) (*Session, error)
	// Get returns the session for key, creating it lazily when absent.
	Get(key SessionKey) (*Session, error)
	// AppendEvent adds an event to the session's history.
	AppendEvent(key SessionKey, event Event) error
}
