// Package memory provides in-memory implementations of the driven ports.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/custodia-labs/fragments-cli/internal/core/domain"
	"github.com/custodia-labs/fragments-cli/internal/core/ports/driven"
)

// Ensure FragmentStore implements the interface.
var _ driven.FragmentStore = (*FragmentStore)(nil)

// FragmentStore is an in-memory implementation of driven.FragmentStore.
// Fragments are held in insertion order with an ID index into the slice.
type FragmentStore struct {
	mu        sync.RWMutex
	fragments []domain.Fragment
	index     map[string]int
}

// NewFragmentStore creates a new empty in-memory fragment store.
func NewFragmentStore() *FragmentStore {
	return &FragmentStore{
		index: make(map[string]int),
	}
}

// Insert appends a fragment.
func (s *FragmentStore) Insert(_ context.Context, fragment domain.Fragment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.index[fragment.ID]; ok {
		return domain.ErrAlreadyExists
	}
	s.index[fragment.ID] = len(s.fragments)
	s.fragments = append(s.fragments, fragment.Clone())
	return nil
}

// Replace overwrites a fragment in place.
func (s *FragmentStore) Replace(_ context.Context, fragment domain.Fragment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[fragment.ID]
	if !ok {
		return domain.ErrNotFound
	}
	s.fragments[i] = fragment.Clone()
	return nil
}

// Delete removes a fragment and shifts the index of later fragments.
func (s *FragmentStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.fragments = slices.Delete(s.fragments, i, i+1)
	delete(s.index, id)
	for j := i; j < len(s.fragments); j++ {
		s.index[s.fragments[j].ID] = j
	}
	return nil
}

// Get retrieves a fragment by ID.
func (s *FragmentStore) Get(_ context.Context, id string) (*domain.Fragment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	f := s.fragments[i].Clone()
	return &f, nil
}

// List returns a snapshot of every fragment in insertion order.
func (s *FragmentStore) List(_ context.Context) ([]domain.Fragment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Fragment, len(s.fragments))
	for i := range s.fragments {
		out[i] = s.fragments[i].Clone()
	}
	return out, nil
}

// Reset replaces the collection.
func (s *FragmentStore) Reset(_ context.Context, fragments []domain.Fragment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	index := make(map[string]int, len(fragments))
	stored := make([]domain.Fragment, 0, len(fragments))
	for _, f := range fragments {
		if _, dup := index[f.ID]; dup {
			return domain.ErrAlreadyExists
		}
		index[f.ID] = len(stored)
		stored = append(stored, f.Clone())
	}
	s.fragments = stored
	s.index = index
	return nil
}
