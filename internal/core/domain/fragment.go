package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// FragmentType determines how a fragment's content is interpreted and rendered.
// The set of types is closed; see FragmentTypes.
type FragmentType string

// Available fragment types.
const (
	// FragmentTypeText is free-form text, possibly markdown.
	FragmentTypeText FragmentType = "text"

	// FragmentTypeVideo is a video URL.
	FragmentTypeVideo FragmentType = "video"

	// FragmentTypeWebsite is a website URL.
	FragmentTypeWebsite FragmentType = "website"

	// FragmentTypeCode is a fenced code block.
	FragmentTypeCode FragmentType = "code"

	// FragmentTypeSong is a song URL or embed string.
	FragmentTypeSong FragmentType = "song"
)

// FragmentTypes returns every fragment type in display order.
func FragmentTypes() []FragmentType {
	return []FragmentType{
		FragmentTypeText,
		FragmentTypeVideo,
		FragmentTypeWebsite,
		FragmentTypeCode,
		FragmentTypeSong,
	}
}

// IsValid returns true if the fragment type is recognised.
func (t FragmentType) IsValid() bool {
	switch t {
	case FragmentTypeText, FragmentTypeVideo, FragmentTypeWebsite, FragmentTypeCode, FragmentTypeSong:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t FragmentType) String() string {
	return string(t)
}

// Label returns the human-readable name of the type.
func (t FragmentType) Label() string {
	switch t {
	case FragmentTypeText:
		return "Text"
	case FragmentTypeVideo:
		return "Video"
	case FragmentTypeWebsite:
		return "Website"
	case FragmentTypeCode:
		return "Code"
	case FragmentTypeSong:
		return "Song"
	default:
		return "Unknown"
	}
}

// ParseFragmentType converts a string to a FragmentType, ignoring case and
// surrounding whitespace.
func ParseFragmentType(s string) (FragmentType, error) {
	t := FragmentType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: fragment type %q", ErrUnsupportedType, s)
	}
	return t, nil
}

// Fragment is the unit of stored knowledge.
type Fragment struct {
	// ID is the unique identifier, immutable after creation.
	ID string

	// Title is the display name.
	Title string

	// Content is interpreted according to Type.
	Content string

	// Type determines how Content is rendered.
	Type FragmentType

	// Tags are lowercase labels. Order is kept for display only.
	Tags []string

	// CreatedAt is fixed when the fragment is created.
	CreatedAt time.Time

	// UpdatedAt is refreshed on every successful mutation.
	UpdatedAt time.Time
}

// HasTag reports whether the fragment carries the given tag.
// The comparison is exact; stored tags are already normalised.
func (f *Fragment) HasTag(tag string) bool {
	return slices.Contains(f.Tags, tag)
}

// HasAllTags reports whether every given tag is present on the fragment.
func (f *Fragment) HasAllTags(tags []string) bool {
	for _, tag := range tags {
		if !f.HasTag(tag) {
			return false
		}
	}
	return true
}

// Clone returns a copy that shares no mutable state with f.
func (f Fragment) Clone() Fragment {
	if f.Tags != nil {
		f.Tags = slices.Clone(f.Tags)
	}
	return f
}

// Draft holds the caller-supplied fields of a fragment before creation.
// The store assigns ID and timestamps.
type Draft struct {
	Title   string
	Content string
	Type    FragmentType
	Tags    []string
}

// NormaliseTag trims and lowercases a single tag.
func NormaliseTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// NormaliseTags normalises every tag, drops empty ones and removes duplicates
// while keeping the first occurrence's position.
func NormaliseTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		n := NormaliseTag(tag)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
