package services

import (
	"context"
	"strings"

	"github.com/custodia-labs/fragments-cli/internal/core/domain"
	"github.com/custodia-labs/fragments-cli/internal/core/ports/driving"
	"github.com/custodia-labs/fragments-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// Filter returns the fragments that match the query and carry every
// selected tag, in their input order.
//
// An empty (or whitespace-only) query with no selected tags returns the
// input unchanged. Tags are compared exactly against the stored, already
// normalised tags. A non-empty query matches when a tag equals it, or when
// the lowercased title or content contains it.
func Filter(fragments []domain.Fragment, query string, selectedTags []string) []domain.Fragment {
	q := domain.NormaliseQuery(query)
	if q == "" && len(selectedTags) == 0 {
		return fragments
	}

	results := make([]domain.Fragment, 0, len(fragments))
	for i := range fragments {
		f := &fragments[i]
		if !f.HasAllTags(selectedTags) {
			continue
		}
		if q != "" && !matchesQuery(f, q) {
			continue
		}
		results = append(results, *f)
	}
	return results
}

// matchesQuery checks a normalised query against one fragment.
func matchesQuery(f *domain.Fragment, q string) bool {
	if f.HasTag(q) {
		return true
	}
	return strings.Contains(strings.ToLower(f.Title), q) ||
		strings.Contains(strings.ToLower(f.Content), q)
}

// SearchService filters the live collection.
type SearchService struct {
	fragments driving.FragmentService
}

// NewSearchService creates a new search service reading from the
// fragment service's committed collection.
func NewSearchService(fragments driving.FragmentService) *SearchService {
	return &SearchService{fragments: fragments}
}

// Filter applies the query and tag selection to the given fragments.
func (s *SearchService) Filter(fragments []domain.Fragment, query string, selectedTags []string) []domain.Fragment {
	return Filter(fragments, query, selectedTags)
}

// Search filters a snapshot of the current collection.
func (s *SearchService) Search(ctx context.Context, state domain.FilterState) ([]domain.Fragment, error) {
	logger.Section("Search Execution")

	fragments, err := s.fragments.List(ctx)
	if err != nil {
		return nil, err
	}

	results := Filter(fragments, state.Query, state.Tags)
	logger.Debug("Search query=%q tags=%v: %d of %d fragments", state.Query, state.Tags, len(results), len(fragments))
	return results, nil
}
