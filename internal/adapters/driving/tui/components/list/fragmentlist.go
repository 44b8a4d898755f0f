// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/fragments-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/fragments-cli/internal/core/domain"
	"github.com/custodia-labs/fragments-cli/internal/core/services"
)

// linesPerCard is the height of one rendered fragment.
const linesPerCard = 3

// DefaultTruncate is the preview length used until SetTruncate is called.
const DefaultTruncate = 100

// FragmentList displays filter results as cards: title, tags and a
// truncated preview, with query matches highlighted.
type FragmentList struct {
	fragments []domain.Fragment
	query     string
	selected  int
	truncate  int
	focused   bool
	styles    *styles.Styles
	width     int
	height    int
}

// NewFragmentList creates an empty list.
func NewFragmentList(s *styles.Styles) *FragmentList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &FragmentList{
		truncate: DefaultTruncate,
		styles:   s,
		width:    80,
		height:   12,
	}
}

// SetResults replaces the list contents. The selection stays on the
// same fragment when it is still present.
func (l *FragmentList) SetResults(fragments []domain.Fragment, query string) {
	var current string
	if f := l.SelectedFragment(); f != nil {
		current = f.ID
	}

	l.fragments = fragments
	l.query = query
	l.selected = 0
	for i := range fragments {
		if fragments[i].ID == current {
			l.selected = i
			break
		}
	}
}

// View renders the visible window of cards.
func (l *FragmentList) View() string {
	if len(l.fragments) == 0 {
		return l.styles.Muted.Render("No fragments found.")
	}

	lines := make([]string, 0, len(l.fragments)*linesPerCard+2)
	lines = append(lines, l.styles.Subtitle.Render(fmt.Sprintf("Fragments (%d)", len(l.fragments))), "")

	visible := max((l.height-2)/linesPerCard, 1)
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := min(start+visible, len(l.fragments))

	for i := start; i < end; i++ {
		lines = append(lines, l.renderCard(i))
	}
	return strings.Join(lines, "\n")
}

func (l *FragmentList) renderCard(index int) string {
	f := &l.fragments[index]

	indicator := "  "
	titleStyle := l.styles.Normal
	if index == l.selected {
		indicator = "> "
		if l.focused {
			titleStyle = l.styles.Selected
		} else {
			titleStyle = l.styles.Subtitle
		}
	}

	title := indicator + Highlight(f.Title, l.query, titleStyle, l.styles.Match) +
		" " + l.styles.TypeBadge(f.Type)

	tags := make([]string, len(f.Tags))
	for i, tag := range f.Tags {
		tags[i] = l.styles.Tag.Render("#" + tag)
	}

	preview := strings.Join(strings.Fields(f.Content), " ")
	preview = services.Truncate(preview, l.previewLength())

	return title + "\n" +
		"    " + strings.Join(tags, " ") + "\n" +
		"    " + Highlight(preview, l.query, l.styles.Muted, l.styles.Match)
}

// previewLength caps the configured truncation at the available width.
func (l *FragmentList) previewLength() int {
	room := l.width - 4 - len("...")
	if room > 0 && room < l.truncate {
		return room
	}
	return l.truncate
}

// SetTruncate sets the preview length. Non-positive values are ignored.
func (l *FragmentList) SetTruncate(n int) {
	if n > 0 {
		l.truncate = n
	}
}

// Truncate returns the preview length.
func (l *FragmentList) Truncate() int {
	return l.truncate
}

// SetFocused marks the list as receiving keys.
func (l *FragmentList) SetFocused(focused bool) {
	l.focused = focused
}

// Fragments returns the listed fragments.
func (l *FragmentList) Fragments() []domain.Fragment {
	return l.fragments
}

// Selected returns the index of the selected fragment.
func (l *FragmentList) Selected() int {
	return l.selected
}

// SelectedFragment returns the selected fragment, or nil if the list is empty.
func (l *FragmentList) SelectedFragment() *domain.Fragment {
	if l.selected < 0 || l.selected >= len(l.fragments) {
		return nil
	}
	return &l.fragments[l.selected]
}

// MoveUp moves selection up.
func (l *FragmentList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *FragmentList) MoveDown() {
	if l.selected < len(l.fragments)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *FragmentList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}
