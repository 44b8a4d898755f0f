package driving

import (
	"context"

	"github.com/custodia-labs/fragments-cli/internal/core/domain"
)

// SessionService owns the session's Search/Filter State and produces the
// result set shown to the user.
type SessionService interface {
	// State returns a copy of the current filter state.
	State() domain.FilterState

	// SetQuery replaces the free-text query.
	SetQuery(query string)

	// ClearQuery empties the free-text query.
	ClearQuery()

	// AddTag selects a tag filter. Selecting an already selected tag is a no-op.
	AddTag(tag string)

	// RemoveTag deselects a tag filter.
	RemoveTag(tag string)

	// ToggleTag selects the tag if it is not selected, otherwise deselects it.
	ToggleTag(tag string)

	// ClearTags deselects every tag filter.
	ClearTags()

	// SelectTag clears the query, then selects the tag. Used when a tag is
	// picked from a fragment's detail view.
	SelectTag(tag string)

	// Results filters the current collection with the current state.
	Results(ctx context.Context) ([]domain.Fragment, error)
}
