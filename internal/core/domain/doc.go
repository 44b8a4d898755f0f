// Package domain defines the core business entities for the fragments manager.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Fragment: A stored piece of knowledge (note, link, snippet, song)
//   - Draft: The caller-supplied fields of a fragment before creation
//   - FilterState: The session's free-text query and selected tags
//   - ChangeEvent: A created/updated/deleted notification
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
