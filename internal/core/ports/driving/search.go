package driving

import (
	"context"

	"github.com/custodia-labs/fragments-cli/internal/core/domain"
)

// SearchService filters fragments against a query and tag selection.
// It never mutates the collection.
type SearchService interface {
	// Filter applies the query and tag selection to the given fragments.
	// The relative order of the input is preserved.
	Filter(fragments []domain.Fragment, query string, selectedTags []string) []domain.Fragment

	// Search filters a snapshot of the current collection.
	Search(ctx context.Context, state domain.FilterState) ([]domain.Fragment, error)
}
