package driving

import (
	"context"

	"github.com/custodia-labs/fragments-cli/internal/core/domain"
)

// FragmentService is the authoritative owner of the session's fragments.
// It is the only writer of the collection and derives the tag index.
//
// Callers are responsible for validating drafts (non-empty title and
// content after trimming) before calling Create or Update; the service
// trusts its input.
type FragmentService interface {
	// Init replaces the collection with the given initial fragments.
	// Fragments without an ID are assigned one. Duplicate IDs are rejected.
	Init(ctx context.Context, initial []domain.Fragment) error

	// Create inserts a new fragment with a fresh ID and timestamps.
	Create(ctx context.Context, draft domain.Draft) (*domain.Fragment, error)

	// Update fully replaces the mutable fields of an existing fragment.
	// Returns ErrNotFound if the ID does not exist.
	Update(ctx context.Context, fragment domain.Fragment) (*domain.Fragment, error)

	// Delete removes a fragment. Returns ErrNotFound if the ID does not exist.
	Delete(ctx context.Context, id string) error

	// Get retrieves a fragment by ID.
	Get(ctx context.Context, id string) (*domain.Fragment, error)

	// List returns every fragment in insertion order.
	List(ctx context.Context) ([]domain.Fragment, error)

	// Tags returns the sorted, deduplicated set of tags in use.
	Tags(ctx context.Context) ([]string, error)
}
