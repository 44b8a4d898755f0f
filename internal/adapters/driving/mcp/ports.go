package mcp

import (
	"github.com/custodia-labs/fragments-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Fragments owns the collection.
	Fragments driving.FragmentService

	// Search filters the collection.
	Search driving.SearchService

	// Changes feeds mutation counters. Optional.
	Changes driving.ChangeFeed
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Fragments == nil {
		return ErrMissingFragmentService
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
