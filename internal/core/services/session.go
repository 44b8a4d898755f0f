package services

import (
	"context"
	"slices"
	"sync"

	"github.com/custodia-labs/fragments-cli/internal/core/domain"
	"github.com/custodia-labs/fragments-cli/internal/core/ports/driving"
)

// Ensure SessionService implements the interface.
var _ driving.SessionService = (*SessionService)(nil)

// SessionService holds the Search/Filter State for one session.
type SessionService struct {
	mu     sync.RWMutex
	state  domain.FilterState
	search driving.SearchService
}

// NewSessionService creates a session with an empty filter state.
func NewSessionService(search driving.SearchService) *SessionService {
	return &SessionService{search: search}
}

// State returns a copy of the current filter state.
func (s *SessionService) State() domain.FilterState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// SetQuery replaces the free-text query. The raw text is kept so the
// input shows exactly what was typed.
func (s *SessionService) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Query = query
}

// ClearQuery empties the free-text query.
func (s *SessionService) ClearQuery() {
	s.SetQuery("")
}

// AddTag selects a tag filter.
func (s *SessionService) AddTag(tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addTag(tag)
}

// RemoveTag deselects a tag filter.
func (s *SessionService) RemoveTag(tag string) {
	tag = domain.NormaliseTag(tag)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Tags = slices.DeleteFunc(s.state.Tags, func(t string) bool { return t == tag })
}

// ToggleTag selects the tag if it is not selected, otherwise deselects it.
func (s *SessionService) ToggleTag(tag string) {
	n := domain.NormaliseTag(tag)
	if s.State().HasTag(n) {
		s.RemoveTag(n)
		return
	}
	s.AddTag(n)
}

// ClearTags deselects every tag filter.
func (s *SessionService) ClearTags() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Tags = nil
}

// SelectTag clears the query, then selects the tag.
func (s *SessionService) SelectTag(tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Query = ""
	s.addTag(tag)
}

// Results filters the current collection with the current state.
func (s *SessionService) Results(ctx context.Context) ([]domain.Fragment, error) {
	return s.search.Search(ctx, s.State())
}

// addTag appends a normalised tag once. Caller must hold s.mu.
func (s *SessionService) addTag(tag string) {
	n := domain.NormaliseTag(tag)
	if n == "" || slices.Contains(s.state.Tags, n) {
		return
	}
	s.state.Tags = append(s.state.Tags, n)
}
