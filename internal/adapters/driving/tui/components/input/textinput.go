// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/fragments-cli/internal/adapters/driving/tui/styles"
)

const minWidth = 20

// SearchInput is the free-text query field of the browse view.
type SearchInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewSearchInput creates a focused search input.
func NewSearchInput(s *styles.Styles) *SearchInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Search titles, content and tags..."
	ti.Prompt = "/ "
	ti.CharLimit = 256
	ti.Width = 50
	ti.Focus()

	return &SearchInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init starts the cursor blinking.
func (s *SearchInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards messages to the text field. It reports whether the
// value changed so callers can refilter.
func (s *SearchInput) Update(msg tea.Msg) (changed bool, cmd tea.Cmd) {
	before := s.textinput.Value()
	s.textinput, cmd = s.textinput.Update(msg)
	return s.textinput.Value() != before, cmd
}

// View renders the search input.
func (s *SearchInput) View() string {
	frame := s.styles.InputBlurred
	if s.textinput.Focused() {
		frame = s.styles.InputField
	}
	label := s.styles.Title.Render("Search ")
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, frame.Render(s.textinput.View()))
}

// Value returns the current input value.
func (s *SearchInput) Value() string {
	return s.textinput.Value()
}

// SetValue sets the input value.
func (s *SearchInput) SetValue(value string) {
	s.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (s *SearchInput) Focus() tea.Cmd {
	return s.textinput.Focus()
}

// Blur removes focus from the input.
func (s *SearchInput) Blur() {
	s.textinput.Blur()
}

// Focused returns whether the input is focused.
func (s *SearchInput) Focused() bool {
	return s.textinput.Focused()
}

// SetWidth sets the width of the input, leaving room for the label.
func (s *SearchInput) SetWidth(width int) {
	s.width = width
	s.textinput.Width = max(width-14, minWidth)
}
