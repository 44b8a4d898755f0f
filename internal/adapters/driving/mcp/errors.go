// Package mcp provides an MCP (Model Context Protocol) server adapter.
// It lets AI assistants search, read and edit the session's fragments.
package mcp

import "errors"

var (
	// ErrMissingFragmentService is returned when the fragment service is not provided.
	ErrMissingFragmentService = errors.New("mcp: fragment service is required")

	// ErrMissingSearchService is returned when the search service is not provided.
	ErrMissingSearchService = errors.New("mcp: search service is required")
)
