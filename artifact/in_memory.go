// Package artifact provides ArtifactStore implementations. Consultation
// deliverables (generated action plans, analysis summaries) are stored here
// per session so callers can download them after the conversation ends.
package artifact

import (
	"sync"

	"github.com/hupe1980/consultmesh/core"
)

// InMemoryStore is a trivial in-process ArtifactStore implementation useful
// for tests and single-process deployments. It keeps all artifacts in a
// nested map guarded by an RWMutex. Data is copied on save / retrieval to
// avoid accidental external mutation of internal buffers.
//
// Layout: session key -> artifact id -> raw bytes (plus insertion order)
//
// It does not enforce retention limits, size quotas, or eviction; artifacts
// live no longer than the process.
type InMemoryStore struct {
	mu        sync.RWMutex
	artifacts map[core.SessionKey]map[string][]byte
	order     map[core.SessionKey][]string
}

// NewInMemoryStore returns an empty in-memory artifact store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		artifacts: make(map[core.SessionKey]map[string][]byte),
		order:     make(map[core.SessionKey][]string),
	}
}

// Save stores (or overwrites) the artifact bytes for the given session and id.
// The input slice is copied before storage.
func (a *InMemoryStore) Save(key core.SessionKey, artifactID string, data []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	m, exists := a.artifacts[key]
	if !exists {
		m = make(map[string][]byte)
		a.artifacts[key] = m
	}
	if _, exists := m[artifactID]; !exists {
		a.order[key] = append(a.order[key], artifactID)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	m[artifactID] = cp
	return nil
}

// Get returns a copy of the stored artifact bytes or ErrNotFound.
func (a *InMemoryStore) Get(key core.SessionKey, artifactID string) ([]byte, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	m, ok := a.artifacts[key]
	if !ok {
		return nil, ErrNotFound
	}
	data, ok := m[artifactID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

// List returns the artifact ids stored for the session in insertion order.
// The slice is a snapshot and safe for caller mutation.
func (a *InMemoryStore) List(key core.SessionKey) ([]string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	ids := make([]string, len(a.order[key]))
	copy(ids, a.order[key])
	return ids, nil
}
