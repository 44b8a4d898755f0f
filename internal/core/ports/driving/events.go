package driving

import "github.com/custodia-labs/fragments-cli/internal/core/domain"

// ChangeFeed lets presentation adapters observe fragment mutations,
// e.g. to show a toast after a create, update or delete.
type ChangeFeed interface {
	// Subscribe registers a handler and returns a function that removes it.
	Subscribe(handler func(domain.ChangeEvent)) (unsubscribe func())
}
