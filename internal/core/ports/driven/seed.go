package driven

import (
	"context"

	"github.com/custodia-labs/fragments-cli/internal/core/domain"
)

// SeedSource provides the initial fragment collection for a session.
type SeedSource interface {
	// Load returns the initial fragments in display order.
	Load(ctx context.Context) ([]domain.Fragment, error)
}
