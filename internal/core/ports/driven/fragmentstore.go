package driven

import (
	"context"

	"github.com/custodia-labs/fragments-cli/internal/core/domain"
)

// FragmentStore holds the session's fragment collection in insertion order.
// Implementations are process-local; nothing is expected to survive a restart.
// Every method must be safe for concurrent use and each call must be atomic,
// so readers always observe a fully committed collection.
type FragmentStore interface {
	// Insert appends a fragment. Returns ErrAlreadyExists if the ID is taken.
	Insert(ctx context.Context, fragment domain.Fragment) error

	// Replace overwrites the fragment with the same ID in place,
	// keeping its position. Returns ErrNotFound if the ID is absent.
	Replace(ctx context.Context, fragment domain.Fragment) error

	// Delete removes a fragment. Returns ErrNotFound if the ID is absent.
	Delete(ctx context.Context, id string) error

	// Get retrieves a fragment by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*domain.Fragment, error)

	// List returns a snapshot of every fragment in insertion order.
	List(ctx context.Context) ([]domain.Fragment, error)

	// Reset replaces the whole collection with the given fragments, in order.
	Reset(ctx context.Context, fragments []domain.Fragment) error
}
