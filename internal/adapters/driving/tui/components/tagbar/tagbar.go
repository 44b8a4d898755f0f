// Package tagbar provides the tag filter selector of the browse view.
package tagbar

import (
	"strings"

	"github.com/custodia-labs/fragments-cli/internal/adapters/driving/tui/styles"
)

// TagBar lists every tag in use with a cursor. Selected tags are the
// active filters; the bar only displays them, the session owns the set.
type TagBar struct {
	styles   *styles.Styles
	tags     []string
	selected []string
	cursor   int
	focused  bool
	width    int
}

// New creates an empty tag bar.
func New(s *styles.Styles) *TagBar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &TagBar{styles: s, width: 80}
}

// SetTags replaces the available and selected tags, keeping the cursor
// on the same tag when possible.
func (b *TagBar) SetTags(tags, selected []string) {
	current := b.Current()

	b.tags = tags
	b.selected = selected
	b.cursor = 0
	for i, tag := range tags {
		if tag == current {
			b.cursor = i
			break
		}
	}
}

// Current returns the tag under the cursor, or "" when there are no tags.
func (b *TagBar) Current() string {
	if b.cursor < 0 || b.cursor >= len(b.tags) {
		return ""
	}
	return b.tags[b.cursor]
}

// Left moves the cursor left.
func (b *TagBar) Left() {
	if b.cursor > 0 {
		b.cursor--
	}
}

// Right moves the cursor right.
func (b *TagBar) Right() {
	if b.cursor < len(b.tags)-1 {
		b.cursor++
	}
}

// SetFocused shows or hides the cursor.
func (b *TagBar) SetFocused(focused bool) {
	b.focused = focused
}

// SetWidth sets the wrap width.
func (b *TagBar) SetWidth(width int) {
	b.width = width
}

func (b *TagBar) isSelected(tag string) bool {
	for _, s := range b.selected {
		if s == tag {
			return true
		}
	}
	return false
}

// View renders the tags, wrapping at the bar width.
func (b *TagBar) View() string {
	if len(b.tags) == 0 {
		return b.styles.Muted.Render("No tags")
	}

	var lines []string
	var line strings.Builder
	lineWidth := 0
	for i, tag := range b.tags {
		label := "#" + tag
		style := b.styles.Tag
		if b.isSelected(tag) {
			style = b.styles.TagSelected
		}
		if b.focused && i == b.cursor {
			style = style.Inherit(b.styles.TagCursor)
		}

		if lineWidth > 0 && lineWidth+len(label)+1 > b.width {
			lines = append(lines, line.String())
			line.Reset()
			lineWidth = 0
		}
		if lineWidth > 0 {
			line.WriteString(" ")
			lineWidth++
		}
		line.WriteString(style.Render(label))
		lineWidth += len(label)
	}
	lines = append(lines, line.String())

	return b.styles.Subtitle.Render("Tags") + "\n" + strings.Join(lines, "\n")
}
