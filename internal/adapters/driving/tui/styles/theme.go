// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/fragments-cli/internal/core/domain"
)

// Theme defines the colour palette for the TUI.
type Theme struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Border     lipgloss.Color

	// Types colours the badge of each fragment type.
	Types map[domain.FragmentType]lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#7C3AED"), // Purple
		Secondary:  lipgloss.Color("#06B6D4"), // Cyan
		Background: lipgloss.Color("#1E1E2E"),
		Foreground: lipgloss.Color("#CDD6F4"),
		Muted:      lipgloss.Color("#6C7086"),
		Success:    lipgloss.Color("#A6E3A1"),
		Warning:    lipgloss.Color("#F9E2AF"),
		Error:      lipgloss.Color("#F38BA8"),
		Border:     lipgloss.Color("#45475A"),
		Types: map[domain.FragmentType]lipgloss.Color{
			domain.FragmentTypeText:    lipgloss.Color("#89B4FA"),
			domain.FragmentTypeVideo:   lipgloss.Color("#F38BA8"),
			domain.FragmentTypeWebsite: lipgloss.Color("#94E2D5"),
			domain.FragmentTypeCode:    lipgloss.Color("#FAB387"),
			domain.FragmentTypeSong:    lipgloss.Color("#CBA6F7"),
		},
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style

	// InputField frames a focused text input; InputBlurred an unfocused one.
	InputField   lipgloss.Style
	InputBlurred lipgloss.Style

	StatusBar lipgloss.Style

	// Tag is an unselected tag chip, TagSelected an active filter and
	// TagCursor the chip under the tag bar cursor.
	Tag         lipgloss.Style
	TagSelected lipgloss.Style
	TagCursor   lipgloss.Style

	// Match emphasises query matches inside titles and previews.
	Match lipgloss.Style

	// Toast frames notifications; ToastDestructive those about removals.
	Toast            lipgloss.Style
	ToastDestructive lipgloss.Style

	// Content frames the body of a fragment in the detail view.
	Content lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	input := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		Padding(0, 1)

	return &Styles{
		theme: theme,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Subtitle: lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary),
		Normal:   lipgloss.NewStyle().Foreground(theme.Foreground),
		Muted:    lipgloss.NewStyle().Foreground(theme.Muted),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),
		Error: lipgloss.NewStyle().Foreground(theme.Error),
		Help:  lipgloss.NewStyle().Foreground(theme.Muted),

		InputField:   input.BorderForeground(theme.Primary),
		InputBlurred: input.BorderForeground(theme.Border),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(lipgloss.Color("#181825")).
			Padding(0, 1),

		Tag: lipgloss.NewStyle().Foreground(theme.Secondary),
		TagSelected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Background).
			Background(theme.Secondary),
		TagCursor: lipgloss.NewStyle().Underline(true).Foreground(theme.Warning),

		Match: lipgloss.NewStyle().Bold(true).Foreground(theme.Warning),

		Toast: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Success).
			Foreground(theme.Success).
			Padding(0, 1),
		ToastDestructive: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Error).
			Foreground(theme.Error).
			Padding(0, 1),

		Content: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(theme.Border).
			PaddingLeft(1),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// TypeBadge renders the label of a fragment type in its colour.
func (s *Styles) TypeBadge(t domain.FragmentType) string {
	c, ok := s.theme.Types[t]
	if !ok {
		c = s.theme.Muted
	}
	return lipgloss.NewStyle().Foreground(c).Render("[" + t.Label() + "]")
}
