// Package tui provides an interactive terminal user interface for browsing
// and editing fragments. It implements a driving adapter following hexagonal
// architecture principles.
package tui

import (
	"github.com/custodia-labs/fragments-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// Fragments owns the collection.
	Fragments driving.FragmentService

	// Filter holds the search query and tag selection.
	Filter driving.SessionService

	// Changes feeds the toast line. Optional.
	Changes driving.ChangeFeed
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Fragments == nil {
		return ErrMissingFragmentService
	}
	if p.Filter == nil {
		return ErrMissingFilterService
	}
	return nil
}
