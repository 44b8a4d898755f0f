package domain

import (
	"slices"
	"strings"
)

// FilterState is the session's transient search state: the free-text query
// and the set of selected tag filters. It is never persisted.
type FilterState struct {
	// Query is the raw free-text query as typed.
	Query string

	// Tags are the selected tag filters, in selection order.
	Tags []string
}

// NormalisedQuery returns the query trimmed and lowercased.
func (s FilterState) NormalisedQuery() string {
	return NormaliseQuery(s.Query)
}

// IsEmpty reports whether neither a query nor any tag is set.
// A whitespace-only query counts as empty.
func (s FilterState) IsEmpty() bool {
	return s.NormalisedQuery() == "" && len(s.Tags) == 0
}

// HasTag reports whether the tag is currently selected.
func (s FilterState) HasTag(tag string) bool {
	return slices.Contains(s.Tags, tag)
}

// Clone returns a copy that shares no mutable state with s.
func (s FilterState) Clone() FilterState {
	if s.Tags != nil {
		s.Tags = slices.Clone(s.Tags)
	}
	return s
}

// NormaliseQuery trims and lowercases a free-text query.
func NormaliseQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Segment is a piece of display text, flagged when it matches the query.
type Segment struct {
	// Text is the original text of the segment, case preserved.
	Text string

	// Match is true when the segment equals the query, ignoring case.
	Match bool
}
