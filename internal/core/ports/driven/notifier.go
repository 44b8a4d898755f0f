package driven

import "github.com/custodia-labs/fragments-cli/internal/core/domain"

// Notifier receives change events after successful store mutations.
// Implementations must not call back into the fragment service.
type Notifier interface {
	Notify(event domain.ChangeEvent)
}
