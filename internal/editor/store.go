package editor

import (
	"fmt"
	"sort"
	"sync"

	"clipdeck/internal/domain"
)

// Store keeps the open scenes in memory, keyed by scene ID.
// Scenes do not survive a restart.
type Store struct {
	mu     sync.RWMutex
	scenes map[string]*Scene
}

// NewStore creates an empty scene store
func NewStore() *Store {
	return &Store{scenes: make(map[string]*Scene)}
}

// Create opens a new empty scene
func (st *Store) Create(projectID string, size Size) *Scene {
	s := NewScene(projectID, size)
	st.mu.Lock()
	st.scenes[s.ID()] = s
	st.mu.Unlock()
	return s
}

// Put stores a loaded scene, replacing any scene with the same ID
func (st *Store) Put(s *Scene) {
	st.mu.Lock()
	st.scenes[s.ID()] = s
	st.mu.Unlock()
}

// Get returns the scene or domain.ErrNotFound
func (st *Store) Get(id string) (*Scene, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.scenes[id]
	if !ok {
		return nil, fmt.Errorf("scene %s: %w", id, domain.ErrNotFound)
	}
	return s, nil
}

// Delete closes a scene
func (st *Store) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.scenes[id]; !ok {
		return fmt.Errorf("scene %s: %w", id, domain.ErrNotFound)
	}
	delete(st.scenes, id)
	return nil
}

// IDs lists open scene IDs in sorted order
func (st *Store) IDs() []string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	ids := make([]string, 0, len(st.scenes))
	for id := range st.scenes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
